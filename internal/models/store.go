package models

import (
	"fmt"
	"strconv"
	"strings"
)

type Store struct {
	ID        int
	Latitude  float64
	Longitude float64
}

// ParseStoreRow reads a (storeID, latitude, longitude) row.
func ParseStoreRow(row []string) (Store, error) {
	if len(row) < 3 {
		return Store{}, fmt.Errorf("store row has %d columns, want 3", len(row))
	}
	id, err := strconv.Atoi(strings.TrimSpace(row[0]))
	if err != nil {
		return Store{}, fmt.Errorf("store id %q: %w", row[0], err)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
	if err != nil {
		return Store{}, fmt.Errorf("store %d latitude %q: %w", id, row[1], err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
	if err != nil {
		return Store{}, fmt.Errorf("store %d longitude %q: %w", id, row[2], err)
	}
	return Store{ID: id, Latitude: lat, Longitude: lon}, nil
}
