package catalog

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/techmaster-vietnam/goerrorkit"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Pagination selects one page of a listing. Zero values fall back to the
// defaults.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// NewPagination applies defaults and validates the result.
func NewPagination(page, limit int) (Pagination, error) {
	p := Pagination{Page: page, Limit: limit}
	if p.Page == 0 {
		p.Page = DefaultPage
	}
	if p.Limit == 0 {
		p.Limit = DefaultLimit
	}
	if err := p.Validate(); err != nil {
		return Pagination{}, err
	}
	return p, nil
}

func (p Pagination) Validate() error {
	err := validation.ValidateStruct(&p,
		validation.Field(&p.Page, validation.Min(1)),
		validation.Field(&p.Limit, validation.Min(1), validation.Max(MaxLimit)),
	)
	if err != nil {
		return goerrorkit.NewValidationError("Invalid pagination", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return nil
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Page is one slice of a listing plus the numbers a client needs to walk it.
type Page[T any] struct {
	Data       []T  `json:"data"`
	Total      int  `json:"total"`
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

func NewPage[T any](data []T, total int, p Pagination) Page[T] {
	if data == nil {
		data = []T{}
	}
	totalPages := 0
	if p.Limit > 0 {
		totalPages = (total + p.Limit - 1) / p.Limit
	}
	return Page[T]{
		Data:       data,
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: totalPages,
		HasNext:    p.Page*p.Limit < total,
		HasPrev:    p.Page > 1,
	}
}
