// Package catalog provides the listing sources the search service reads from.
package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/obinss/CoCreate-MVP/internal/domain/item"
)

// page is the paginated envelope returned by the marketplace API.
type page struct {
	Results []item.Item `json:"results"`
}

// decodeItems accepts either a bare JSON array of items or a {"results": [...]} page.
func decodeItems(data []byte) ([]item.Item, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty catalog document")
	}

	if trimmed[0] == '[' {
		var items []item.Item
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("decode item array: %w", err)
		}
		return items, nil
	}

	var p page
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return nil, fmt.Errorf("decode item page: %w", err)
	}
	return p.Results, nil
}
