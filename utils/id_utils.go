package utils

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// ParseProductID parses a product id from a path parameter or CLI argument.
// Product ids are positive integers.
func ParseProductID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid product id %q", s)
	}
	if id <= 0 {
		return 0, fmt.Errorf("product id must be positive, got %d", id)
	}
	return id, nil
}

// ProductIDFromFilename extracts the product id embedded as the last
// underscore-separated segment of a model file name, e.g. "rf_model_42.json" -> 42.
func ProductIDFromFilename(name string) (int, error) {
	base := filepath.Base(name)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if i := strings.LastIndex(stem, "_"); i >= 0 {
		stem = stem[i+1:]
	}
	id, err := ParseProductID(stem)
	if err != nil {
		return 0, fmt.Errorf("file %s has no product id suffix: %w", base, err)
	}
	return id, nil
}
