// Package pagination provides offset-based pagination for list endpoints.
package pagination

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// OffsetRequest represents an offset-based pagination request.
type OffsetRequest struct {
	Page     int `json:"page,omitempty"`
	PageSize int `json:"page_size,omitempty"`
}

// NewOffsetRequest creates a new offset request with defaults.
func NewOffsetRequest(page, pageSize int) *OffsetRequest {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > MaxLimit {
		pageSize = DefaultLimit
	}
	return &OffsetRequest{
		Page:     page,
		PageSize: pageSize,
	}
}

// GetOffset returns the offset for a SQL query.
func (r *OffsetRequest) GetOffset() int {
	return (r.GetPage() - 1) * r.GetPageSize()
}

// GetPage returns the validated page.
func (r *OffsetRequest) GetPage() int {
	if r.Page <= 0 {
		return 1
	}
	return r.Page
}

// GetPageSize returns the validated page size.
func (r *OffsetRequest) GetPageSize() int {
	if r.PageSize <= 0 || r.PageSize > MaxLimit {
		return DefaultLimit
	}
	return r.PageSize
}

// OffsetResponse represents an offset-based pagination response.
type OffsetResponse[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// BuildOffsetResponse builds an offset response from items and total count.
func BuildOffsetResponse[T any](items []T, req *OffsetRequest, total int64) *OffsetResponse[T] {
	totalPages := int((total + int64(req.GetPageSize()) - 1) / int64(req.GetPageSize()))

	return &OffsetResponse[T]{
		Items:      items,
		Page:       req.GetPage(),
		PageSize:   req.GetPageSize(),
		TotalItems: total,
		TotalPages: totalPages,
		HasNext:    req.GetPage() < totalPages,
		HasPrev:    req.GetPage() > 1,
	}
}
