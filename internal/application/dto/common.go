package dto

import (
	"math"
	"strings"
)

// Órdenes admitidos en sort_order.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// PageRequest paginación y orden para listados (?page&limit&sort_by&sort_order).
type PageRequest struct {
	Page      int    `query:"page"`
	Limit     int    `query:"limit"`
	SortBy    string `query:"sort_by"`
	SortOrder string `query:"sort_order"`
}

// PageLimits límites configurables (PAGINATION_*).
type PageLimits struct {
	Default int
	Min     int
	Max     int
}

// Normalize aplica valores por defecto: page >= 1, limit en [Min, Max], sort_order asc|desc (desc por defecto).
// Una página fuera de rango se acota para que el offset no desborde.
func (p *PageRequest) Normalize(l PageLimits) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit == 0 {
		p.Limit = l.Default
	}
	if p.Limit < l.Min {
		p.Limit = l.Min
	}
	if l.Max > 0 && p.Limit > l.Max {
		p.Limit = l.Max
	}
	// (Page-1)*Limit debe caber en int
	if p.Limit > 0 && p.Page > math.MaxInt/p.Limit {
		p.Page = math.MaxInt / p.Limit
	}
	p.SortBy = strings.TrimSpace(p.SortBy)
	switch strings.ToLower(p.SortOrder) {
	case SortAsc:
		p.SortOrder = SortAsc
	default:
		p.SortOrder = SortDesc
	}
}

// Offset posición del primer elemento de la página.
func (p PageRequest) Offset() int {
	if p.Page < 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// PageMeta metadatos de página en respuestas.
type PageMeta struct {
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	Total       int  `json:"total"`
	TotalPages  int  `json:"total_pages"`
	HasNextPage bool `json:"has_next_page"`
	HasPrevPage bool `json:"has_prev_page"`
}

// NewPageMeta calcula los metadatos a partir de la página pedida y el total.
func NewPageMeta(page, limit, total int) PageMeta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return PageMeta{
		Page:        page,
		Limit:       limit,
		Total:       total,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}

// Paginated respuesta de listados: {data, meta}.
type Paginated[T any] struct {
	Data []T     `json:"data"`
	Meta PageMeta `json:"meta"`
}

// NewPaginated arma la respuesta; data nunca se serializa como null.
func NewPaginated[T any](data []T, page PageRequest, total int) Paginated[T] {
	if data == nil {
		data = []T{}
	}
	return Paginated[T]{Data: data, Meta: NewPageMeta(page.Page, page.Limit, total)}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
