package tools

import (
	"context"
	"strings"

	"github.com/subediaakash/zomato-mcp/internal/usecase"
)

// Catalog resolves product names for the availability tool.
type Catalog interface {
	CheckAvailability(ctx context.Context, names []string) ([]usecase.Availability, error)
}

const CheckProductAvailability = "checkProductAvailability"

type availabilityInput struct {
	ProductNames []string `json:"productNames" validate:"required,min=1,dive,required"`
}

func (in *availabilityInput) bind(string) error {
	for i, name := range in.ProductNames {
		in.ProductNames[i] = strings.TrimSpace(name)
	}
	return nil
}

// AvailabilityResult reports which requested names exist in the catalog.
type AvailabilityResult struct {
	TotalRequested int                `json:"totalRequested"`
	TotalAvailable int                `json:"totalAvailable"`
	Results        []NameAvailability `json:"results"`
}

type NameAvailability struct {
	Name      string         `json:"name"`
	Available bool           `json:"available"`
	Matches   []ProductMatch `json:"matches"`
}

type ProductMatch struct {
	ID          string  `json:"id"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
}

func availabilityTool(catalog Catalog) Tool {
	return newTool(
		CheckProductAvailability,
		"Check whether one or more products exist in the catalog. Matching is exact and case-insensitive.",
		"Sorry, something went wrong while checking product availability. Please try again later.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"productNames": map[string]any{
					"type":        "array",
					"description": "Product names to look up.",
					"minItems":    1,
					"items":       map[string]any{"type": "string", "minLength": 1},
				},
			},
			"required":             []string{"productNames"},
			"additionalProperties": false,
		},
		func(ctx context.Context, in *availabilityInput) (any, error) {
			entries, err := catalog.CheckAvailability(ctx, in.ProductNames)
			if err != nil {
				return nil, err
			}

			result := AvailabilityResult{TotalRequested: len(entries), Results: make([]NameAvailability, 0, len(entries))}
			for _, entry := range entries {
				row := NameAvailability{Name: entry.Name, Available: entry.Available(), Matches: make([]ProductMatch, 0, len(entry.Matches))}
				for _, p := range entry.Matches {
					row.Matches = append(row.Matches, ProductMatch{
						ID:          p.ID,
						ProductName: p.Name,
						Price:       p.Price.InexactFloat64(),
						Category:    string(p.Category),
					})
				}
				if row.Available {
					result.TotalAvailable++
				}
				result.Results = append(result.Results, row)
			}
			return result, nil
		},
	)
}
