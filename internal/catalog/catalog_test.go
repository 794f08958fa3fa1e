package catalog

import (
	"errors"
	"testing"
)

func TestBundleLookupFailsClosed(t *testing.T) {
	cat := Default(nil)
	for _, id := range []string{"xyz", "", "pcm", "pcm_11"} {
		if _, err := cat.Bundle(id); !errors.Is(err, ErrBundleNotFound) {
			t.Errorf("Bundle(%q): expected ErrBundleNotFound, got %v", id, err)
		}
	}
}

func TestBundleLookupNormalisesID(t *testing.T) {
	cat := Default(nil)
	b, err := cat.Bundle("  PCMB_12 ")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if b.ID != "pcmb_12" {
		t.Fatalf("expected pcmb_12, got %s", b.ID)
	}
	if len(b.Links) != 2 {
		t.Fatalf("expected 2 links for pcmb_12, got %d", len(b.Links))
	}
}

func TestResolveDecisionTable(t *testing.T) {
	cat := Default(nil)
	cases := []struct {
		class   string
		subject string
		want    string
	}{
		{"10", "Physics", "science_maths_10"},
		{"10", "chemistry", "science_maths_10"},
		{"10", "Sanskrit", "science_maths_10"}, // wildcard row
		{"12", "Biology", "pcb_12"},
		{"12", "biology", "pcb_12"},
		{"12", "Physics", "pcm_12"},
		{"12", "Mathematics", "pcm_12"},
		{"12", "Computer Science", "pcm_12"}, // wildcard row
	}
	for _, tc := range cases {
		b, err := cat.Resolve(tc.class, tc.subject)
		if err != nil {
			t.Errorf("Resolve(%s, %s): %v", tc.class, tc.subject, err)
			continue
		}
		if b.ID != tc.want {
			t.Errorf("Resolve(%s, %s) = %s, want %s", tc.class, tc.subject, b.ID, tc.want)
		}
	}
}

func TestResolveUnknownClass(t *testing.T) {
	cat := Default(nil)
	if _, err := cat.Resolve("11", "Physics"); !errors.Is(err, ErrNoRoute) {
		t.Fatalf("expected ErrNoRoute, got %v", err)
	}
}

func TestListFiltersByClass(t *testing.T) {
	cat := Default(nil)
	for _, class := range []string{"10", "12"} {
		for _, b := range cat.List(class) {
			if b.Class != class {
				t.Errorf("List(%s) returned bundle %s with class %s", class, b.ID, b.Class)
			}
		}
	}
	if got := len(cat.List("")); got != 6 {
		t.Fatalf("expected 6 bundles in full list, got %d", got)
	}
}

func TestDefaultAppliesLinkOverrides(t *testing.T) {
	override := "https://drive.google.com/drive/folders/override"
	cat := Default(map[string]string{"pcm_12": override})

	b, err := cat.Bundle("pcm_12")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if b.Links[0].URL != override {
		t.Fatalf("expected overridden link, got %s", b.Links[0].URL)
	}

	// Other bundles keep their configured links.
	other, err := cat.Bundle("pcb_12")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if other.Links[0].URL == override {
		t.Fatal("override leaked into a different bundle")
	}
}
