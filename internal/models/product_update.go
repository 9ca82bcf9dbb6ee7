package models

import (
	"fmt"
	"strconv"
	"strings"
)

// ProductUpdate is one row of the ProductUpdates log. Rows are written by a trigger on
// Product, never by the client.
type ProductUpdate struct {
	UpdateNumber int
	ManagerID    int
	StoreID      int
	ProductName  string
	UpdatedOn    string
}

// ParseProductUpdateRow reads a ProductUpdates row by position: update number, manager id,
// store id, product name, update time.
func ParseProductUpdateRow(row []string) (ProductUpdate, error) {
	if len(row) < 5 {
		return ProductUpdate{}, fmt.Errorf("product update row has %d columns, want 5", len(row))
	}
	var ids [3]int
	for i := range ids {
		n, err := strconv.Atoi(strings.TrimSpace(row[i]))
		if err != nil {
			return ProductUpdate{}, fmt.Errorf("product update column %d %q: %w", i, row[i], err)
		}
		ids[i] = n
	}
	return ProductUpdate{
		UpdateNumber: ids[0],
		ManagerID:    ids[1],
		StoreID:      ids[2],
		ProductName:  strings.TrimSpace(row[3]),
		UpdatedOn:    strings.TrimSpace(row[4]),
	}, nil
}
