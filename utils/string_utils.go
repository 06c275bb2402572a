package utils

import "fmt"

// StringOrDefault dereferences s, falling back to def for nil or empty strings.
func StringOrDefault(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}

// DefaultProductName is the display name used when the catalog has none.
func DefaultProductName(productID int) string {
	return fmt.Sprintf("Product %d", productID)
}
