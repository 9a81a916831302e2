package pagination

import (
	"fmt"

	"github.com/xraph/scimcore/internal/errs"
)

// Constants for pagination limits.
const (
	DefaultLimit = 10
	MaxLimit     = 10000
	MinLimit     = 1
)

// SortOrder represents the sort direction.
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// BaseRequestParams contains common request parameters for sorting, searching, and filtering
// Can be used in both paginated and non-paginated requests.
type BaseRequestParams struct {
	SortBy string    `default:"created_at" example:"created_at"    json:"sortBy" optional:"true" query:"sortBy"`
	Order  SortOrder `default:"desc"       example:"desc"          json:"order"  optional:"true" query:"order"  validate:"oneof=asc desc"`
	Search string    `default:""           example:"john"          json:"search" optional:"true" query:"search"`
	Filter string    `default:""           example:"status:active" json:"filter" optional:"true" query:"filter"`
}

// PaginationParams represents offset-based pagination request parameters, the
// only pagination style SCIM's startIndex/count semantics need.
type PaginationParams struct {
	BaseRequestParams

	Limit  int `default:"10" example:"10" json:"limit"  optional:"true" query:"limit"  validate:"min=1,max=10000"`
	Offset int `default:"0"  example:"0"  json:"offset" optional:"true" query:"offset" validate:"min=0"`
	Page   int `default:"1"  example:"1"  json:"page"   optional:"true" query:"page"   validate:"min=1"`
}

// PageResponse represents a paginated response with metadata.
type PageResponse[T any] struct {
	Data       []T       `json:"data"`
	Pagination *PageMeta `json:"pagination,omitempty"`
}

// PageMeta contains offset-based pagination metadata.
type PageMeta struct {
	Total       int64 `example:"1000"  json:"total"`
	Limit       int   `example:"10"    json:"limit"`
	Offset      int   `example:"0"     json:"offset"`
	CurrentPage int   `example:"1"     json:"currentPage"`
	TotalPages  int   `example:"100"   json:"totalPages"`
	HasNext     bool  `example:"true"  json:"hasNext"`
	HasPrev     bool  `example:"false" json:"hasPrev"`
}

// Validate validates and normalizes base request parameters.
func (b *BaseRequestParams) Validate() error {
	// Set defaults
	if b.Order == "" {
		b.Order = SortOrderDesc
	}

	if b.SortBy == "" {
		b.SortBy = "created_at"
	}

	// Validate order
	if b.Order != SortOrderAsc && b.Order != SortOrderDesc {
		return errs.InvalidInput("order", "must be 'asc' or 'desc'")
	}

	return nil
}

// GetSortBy returns the sort field with fallback.
func (b *BaseRequestParams) GetSortBy() string {
	if b.SortBy == "" {
		return "created_at"
	}

	return b.SortBy
}

// GetOrder returns the sort order with fallback.
func (b *BaseRequestParams) GetOrder() SortOrder {
	if b.Order == "" {
		return SortOrderDesc
	}

	return b.Order
}

// Validate validates and normalizes pagination parameters.
func (p *PaginationParams) Validate() error {
	// Set defaults first
	if p.Limit == 0 {
		p.Limit = DefaultLimit
	}

	if p.Page == 0 {
		p.Page = 1
	}

	// Validate base params (sorts, order, search, filter)
	if err := p.BaseRequestParams.Validate(); err != nil {
		return err
	}

	// Validate pagination-specific fields
	if p.Limit < MinLimit {
		return fmt.Errorf("limit must be at least %d", MinLimit)
	}

	if p.Limit > MaxLimit {
		return fmt.Errorf("limit cannot exceed %d", MaxLimit)
	}

	// Validate offset
	if p.Offset < 0 {
		return errs.InvalidInput("offset", "cannot be negative")
	}

	// Validate page
	if p.Page < 1 {
		return errs.InvalidInput("page", "must be at least 1")
	}

	// Calculate offset from page if offset not explicitly set
	if p.Offset == 0 && p.Page > 1 {
		p.Offset = (p.Page - 1) * p.Limit
	}

	return nil
}

// GetLimit returns the limit with fallback to default.
func (p *PaginationParams) GetLimit() int {
	if p.Limit == 0 {
		return DefaultLimit
	}

	if p.Limit > MaxLimit {
		return MaxLimit
	}

	return p.Limit
}

// GetOffset returns the calculated offset.
func (p *PaginationParams) GetOffset() int {
	if p.Offset > 0 {
		return p.Offset
	}

	if p.Page > 1 {
		return (p.Page - 1) * p.GetLimit()
	}

	return 0
}

// GetPage returns the current page number.
func (p *PaginationParams) GetPage() int {
	if p.Page > 0 {
		return p.Page
	}

	if p.Offset > 0 {
		return (p.Offset / p.GetLimit()) + 1
	}

	return 1
}

// NewPageResponse creates a new paginated response.
func NewPageResponse[T any](data []T, total int64, params *PaginationParams) *PageResponse[T] {
	limit := params.GetLimit()
	offset := params.GetOffset()
	currentPage := params.GetPage()
	totalPages := max(int((total+int64(limit)-1)/int64(limit)), 1)

	return &PageResponse[T]{
		Data: data,
		Pagination: &PageMeta{
			Total:       total,
			Limit:       limit,
			Offset:      offset,
			CurrentPage: currentPage,
			TotalPages:  totalPages,
			HasNext:     currentPage < totalPages,
			HasPrev:     currentPage > 1,
		},
	}
}
