package api

import "encoding/json"

// Pagination is the normalized page descriptor carried by every list
// endpoint. The server is inconsistent about the total-count field name
// (`total` on some endpoints, `totalItems` on others); decoding accepts
// both so typed services can expose one shape.
type Pagination struct {
	Page       int
	Limit      int
	Total      int
	TotalPages int
}

type paginationWire struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      *int `json:"total"`
	TotalItems *int `json:"totalItems"`
	TotalPages int  `json:"totalPages"`
}

// UnmarshalJSON normalizes the per-endpoint naming differences.
func (p *Pagination) UnmarshalJSON(b []byte) error {
	var w paginationWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	p.Page = w.Page
	p.Limit = w.Limit
	p.TotalPages = w.TotalPages
	switch {
	case w.Total != nil:
		p.Total = *w.Total
	case w.TotalItems != nil:
		p.Total = *w.TotalItems
	}
	return nil
}
