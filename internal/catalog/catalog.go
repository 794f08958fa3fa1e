package catalog

import (
	"errors"
	"strings"
)

var (
	// ErrBundleNotFound indicates the requested bundle identifier is not configured.
	ErrBundleNotFound = errors.New("bundle not found")
	// ErrNoRoute indicates no decision table row matches the class/subject pair.
	ErrNoRoute = errors.New("no bundle route for selection")
)

// Link is a single named destination revealed after a verified payment.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Bundle describes one purchasable study-material package. Immutable after load.
type Bundle struct {
	ID       string
	Name     string
	Class    string
	Badge    string
	Price    int64
	Subjects []string
	Links    []Link
}

// route is one row of the class/subject decision table. Subject "*" matches
// any subject of that class not covered by an earlier row.
type route struct {
	Class    string
	Subject  string
	BundleID string
}

// Catalog is the static lookup table mapping bundle identifiers to link sets
// and (class, subject) pairs to bundle identifiers. Loaded once at process
// start; safe for concurrent reads.
type Catalog struct {
	bundles map[string]Bundle
	order   []string
	routes  []route
}

// newCatalog builds a catalog from bundle descriptors and decision table rows.
func newCatalog(bundles []Bundle, routes []route) *Catalog {
	byID := make(map[string]Bundle, len(bundles))
	order := make([]string, 0, len(bundles))
	for _, b := range bundles {
		byID[b.ID] = b
		order = append(order, b.ID)
	}
	return &Catalog{bundles: byID, order: order, routes: routes}
}

// Bundle returns the descriptor for the given identifier. Unknown identifiers
// fail closed: no descriptor, ErrBundleNotFound.
func (c *Catalog) Bundle(id string) (Bundle, error) {
	b, ok := c.bundles[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return Bundle{}, ErrBundleNotFound
	}
	return b, nil
}

// Resolve maps an individual-subject selection to its bundle via the decision
// table. Rows are evaluated in order; the first match wins.
func (c *Catalog) Resolve(class, subject string) (Bundle, error) {
	class = strings.TrimSpace(class)
	subject = strings.ToLower(strings.TrimSpace(subject))
	for _, row := range c.routes {
		if row.Class != class {
			continue
		}
		if row.Subject != "*" && row.Subject != subject {
			continue
		}
		return c.Bundle(row.BundleID)
	}
	return Bundle{}, ErrNoRoute
}

// List returns bundles in configuration order, optionally filtered by class.
func (c *Catalog) List(class string) []Bundle {
	class = strings.TrimSpace(class)
	out := make([]Bundle, 0, len(c.order))
	for _, id := range c.order {
		b := c.bundles[id]
		if class != "" && b.Class != class {
			continue
		}
		out = append(out, b)
	}
	return out
}

// Default returns the deploy catalog. overrides replaces a bundle's primary
// link URL, keyed by bundle identifier (from DRIVE_LINK_* environment
// variables).
func Default(overrides map[string]string) *Catalog {
	bundles := []Bundle{
		{
			ID:       "science_maths_10",
			Name:     "Science + Maths",
			Class:    "10",
			Badge:    "Complete Class 10 Package",
			Price:    39,
			Subjects: []string{"Physics", "Chemistry", "Biology", "Mathematics"},
			Links: []Link{
				{Label: "Science & Maths", URL: "https://drive.google.com/drive/folders/1_sOXS7x4878MzcbX2sTJ9s2Wxymd8iHY?usp=sharing"},
			},
		},
		{
			ID:       "pcm_12",
			Name:     "PCM Bundle",
			Class:    "12",
			Badge:    "Engineering Stream",
			Price:    49,
			Subjects: []string{"Physics", "Chemistry", "Mathematics"},
			Links: []Link{
				{Label: "PCM Bundle", URL: "https://drive.google.com/drive/folders/1ke2mlyGd2GIAAQoAePAJg4M4MyaGGb8z?usp=sharing"},
			},
		},
		{
			ID:       "pcb_12",
			Name:     "PCB Bundle",
			Class:    "12",
			Badge:    "Medical Stream",
			Price:    49,
			Subjects: []string{"Physics", "Chemistry", "Biology"},
			Links: []Link{
				{Label: "PCB Bundle", URL: "https://drive.google.com/drive/folders/1BNNknDtnbQynURaQ0DluCFKAhZEuwF0e?usp=sharing"},
			},
		},
		{
			ID:       "pcmb_12",
			Name:     "PCMB Bundle",
			Class:    "12",
			Badge:    "Complete Package",
			Price:    59,
			Subjects: []string{"Physics", "Chemistry", "Mathematics", "Biology"},
			Links: []Link{
				{Label: "PCMB Bundle", URL: "https://drive.google.com/drive/folders/11s9el_br111RWZIH5ZeELKr9bTX3Zf1H?usp=sharing"},
				{Label: "PCMB MCQ Bank", URL: "https://drive.google.com/drive/folders/1XamwJ3cwK8pVLcAEdt8cVDieGStDMDOt?usp=sharing"},
			},
		},
		{
			ID:       "mcq_10",
			Name:     "MCQ Bundle (Class 10)",
			Class:    "10",
			Badge:    "MCQ Practice",
			Price:    29,
			Subjects: []string{"Physics", "Chemistry", "Biology", "Mathematics"},
			Links: []Link{
				{Label: "MCQ Bundle (Class 10)", URL: "https://drive.google.com/drive/folders/1XamwJ3cwK8pVLcAEdt8cVDieGStDMDOt?usp=sharing"},
			},
		},
		{
			ID:       "mcq_12",
			Name:     "PCMB MCQ Bundle (Class 12)",
			Class:    "12",
			Badge:    "MCQ Practice",
			Price:    29,
			Subjects: []string{"Physics", "Chemistry", "Mathematics", "Biology"},
			Links: []Link{
				{Label: "PCMB MCQ Bundle (Class 12)", URL: "https://drive.google.com/drive/folders/1XamwJ3cwK8pVLcAEdt8cVDieGStDMDOt?usp=sharing"},
			},
		},
	}

	for i, b := range bundles {
		if url, ok := overrides[b.ID]; ok && len(b.Links) > 0 {
			links := make([]Link, len(b.Links))
			copy(links, b.Links)
			links[0].URL = url
			bundles[i].Links = links
		}
	}

	// Individual-subject routing. Every class 10 subject shares one bundle;
	// class 12 biology goes to the medical stream, everything else to the
	// engineering stream. Wildcard rows keep newly added wizard subjects from
	// falling through.
	routes := []route{
		{Class: "10", Subject: "physics", BundleID: "science_maths_10"},
		{Class: "10", Subject: "chemistry", BundleID: "science_maths_10"},
		{Class: "10", Subject: "biology", BundleID: "science_maths_10"},
		{Class: "10", Subject: "mathematics", BundleID: "science_maths_10"},
		{Class: "10", Subject: "*", BundleID: "science_maths_10"},
		{Class: "12", Subject: "biology", BundleID: "pcb_12"},
		{Class: "12", Subject: "physics", BundleID: "pcm_12"},
		{Class: "12", Subject: "chemistry", BundleID: "pcm_12"},
		{Class: "12", Subject: "mathematics", BundleID: "pcm_12"},
		{Class: "12", Subject: "*", BundleID: "pcm_12"},
	}

	return newCatalog(bundles, routes)
}
