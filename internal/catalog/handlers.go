package catalog

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/noah-isme/studykart/internal/common"
)

// Handler exposes the public bundle listing endpoints that drive the wizard's
// class and pricing screens. Link URLs are never served here: links are only
// revealed through payment verification.
type Handler struct {
	Catalog *Catalog
}

// bundleView is the public projection of a Bundle.
type bundleView struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Class    string   `json:"class"`
	Badge    string   `json:"badge"`
	Price    int64    `json:"price"`
	Subjects []string `json:"subjects"`
}

// List handles GET /api/v1/bundles with an optional class filter.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Catalog == nil {
		common.JSONError(w, http.StatusInternalServerError, "catalog not configured")
		return
	}
	class := strings.TrimSpace(r.URL.Query().Get("class"))
	if class != "" && class != "10" && class != "12" {
		common.JSONError(w, http.StatusBadRequest, "class must be 10 or 12")
		return
	}
	bundles := h.Catalog.List(class)
	views := make([]bundleView, 0, len(bundles))
	for _, b := range bundles {
		views = append(views, toView(b))
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": views})
}

// Detail handles GET /api/v1/bundles/{id}.
func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Catalog == nil {
		common.JSONError(w, http.StatusInternalServerError, "catalog not configured")
		return
	}
	id := chi.URLParam(r, "id")
	b, err := h.Catalog.Bundle(id)
	if err != nil {
		if errors.Is(err, ErrBundleNotFound) {
			common.JSONError(w, http.StatusNotFound, "unknown bundle")
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "catalog lookup failed")
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": toView(b)})
}

func toView(b Bundle) bundleView {
	return bundleView{
		ID:       b.ID,
		Name:     b.Name,
		Class:    b.Class,
		Badge:    b.Badge,
		Price:    b.Price,
		Subjects: b.Subjects,
	}
}
