package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

type Product struct {
	StoreID       int
	Name          string
	NumberOfUnits int
	PricePerUnit  decimal.Decimal
}

// ParseProductRow reads a (productName, numberOfUnits, pricePerUnit) row for storeID.
func ParseProductRow(storeID int, row []string) (Product, error) {
	if len(row) < 3 {
		return Product{}, fmt.Errorf("product row has %d columns, want 3", len(row))
	}
	units, err := strconv.Atoi(strings.TrimSpace(row[1]))
	if err != nil {
		return Product{}, fmt.Errorf("product %q units %q: %w", row[0], row[1], err)
	}
	price, err := decimal.NewFromString(strings.TrimSpace(row[2]))
	if err != nil {
		return Product{}, fmt.Errorf("product %q price %q: %w", row[0], row[2], err)
	}
	return Product{
		StoreID:       storeID,
		Name:          strings.TrimSpace(row[0]),
		NumberOfUnits: units,
		PricePerUnit:  price,
	}, nil
}
