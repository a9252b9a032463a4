package usecase

import (
	"math"
	"strings"

	domainErrors "github.com/subediaakash/zomato-mcp/internal/domain/errors"
)

// DefaultQuantity applies when an order line omits its quantity.
const DefaultQuantity = 1

// MaxQuantity is the largest quantity the order_items.quantity INTEGER column holds.
const MaxQuantity = math.MaxInt32

// NormalizeName returns the catalog lookup key for a product name.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// DedupeNames trims names and drops blanks and case-insensitive repeats.
// It returns the first-seen spelling of each name and its lookup key, index-aligned.
func DedupeNames(names []string) (unique []string, keys []string) {
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, trimmed)
		keys = append(keys, key)
	}
	return unique, keys
}

// ResolveQuantity defaults a missing quantity and rejects non-positive or out-of-range ones.
func ResolveQuantity(quantity *int) (int, error) {
	if quantity == nil {
		return DefaultQuantity, nil
	}
	if *quantity < 1 {
		return 0, domainErrors.Invalid("quantity", "must be a positive integer")
	}
	if *quantity > MaxQuantity {
		return 0, domainErrors.Invalid("quantity", "must not exceed 2147483647")
	}
	return *quantity, nil
}
