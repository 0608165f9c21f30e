package api

import (
	"context"
	"net/http"
)

// LookupDependencies lists the distinct values offered as filters.
type LookupDependencies interface {
	Types(ctx context.Context) []string
	Countries(ctx context.Context) []string
}

// LookupHandler handles GET /types and GET /countries.
type LookupHandler struct {
	deps LookupDependencies
}

// NewLookupHandler creates a new lookup handler.
func NewLookupHandler(deps LookupDependencies) *LookupHandler {
	return &LookupHandler{deps: deps}
}

// HandleTypes handles GET /types requests.
func (h *LookupHandler) HandleTypes(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.deps.Types)
}

// HandleCountries handles GET /countries requests.
func (h *LookupHandler) HandleCountries(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.deps.Countries)
}

func (h *LookupHandler) serve(w http.ResponseWriter, r *http.Request, list func(context.Context) []string) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	out := list(r.Context())
	if out == nil {
		out = []string{}
	}
	writeJSON(w, http.StatusOK, out)
}
