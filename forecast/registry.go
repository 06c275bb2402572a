package forecast

import (
	"fmt"
	"sort"
)

// ResolutionMode decides what Resolve does for a product without its own model.
type ResolutionMode string

const (
	// ModeStrict fails with ErrModelNotFound.
	ModeStrict ResolutionMode = "strict"
	// ModeFallbackToAny substitutes the model of the lowest product id in the
	// registry. The forecast is still reported under the requested product,
	// even though the model was fitted on an unrelated one.
	ModeFallbackToAny ResolutionMode = "fallback_to_any"
)

// ParseResolutionMode validates a configured resolution mode.
func ParseResolutionMode(s string) (ResolutionMode, error) {
	switch ResolutionMode(s) {
	case ModeStrict, ModeFallbackToAny:
		return ResolutionMode(s), nil
	}
	return "", fmt.Errorf("unknown model resolution mode %q (want %q or %q)", s, ModeStrict, ModeFallbackToAny)
}

// Handle is a resolved model. ProductID is the product that was asked for;
// SourceID is the product the model was fitted on.
type Handle struct {
	ProductID   int
	SourceID    int
	Model       Model
	Substituted bool
}

// Registry is an immutable product id -> model mapping. It is built once at
// startup and safe for concurrent reads.
type Registry struct {
	mode   ResolutionMode
	models map[int]Model
	ids    []int
}

// NewRegistry copies models into a new registry.
func NewRegistry(models map[int]Model, mode ResolutionMode) *Registry {
	r := &Registry{
		mode:   mode,
		models: make(map[int]Model, len(models)),
		ids:    make([]int, 0, len(models)),
	}
	for id, m := range models {
		r.models[id] = m
		r.ids = append(r.ids, id)
	}
	sort.Ints(r.ids)
	return r
}

// Mode reports the configured resolution mode.
func (r *Registry) Mode() ResolutionMode {
	return r.mode
}

// ProductIDs lists the products with a model, ascending.
func (r *Registry) ProductIDs() []int {
	out := make([]int, len(r.ids))
	copy(out, r.ids)
	return out
}

// Len is the number of loaded models.
func (r *Registry) Len() int {
	return len(r.ids)
}

// Resolve finds the model for productID according to the registry mode.
func (r *Registry) Resolve(productID int) (Handle, error) {
	if m, ok := r.models[productID]; ok {
		return Handle{ProductID: productID, SourceID: productID, Model: m}, nil
	}
	if r.mode == ModeFallbackToAny && len(r.ids) > 0 {
		src := r.ids[0]
		return Handle{ProductID: productID, SourceID: src, Model: r.models[src], Substituted: true}, nil
	}
	return Handle{}, &ModelNotFoundError{ProductID: productID, Available: r.ProductIDs()}
}
