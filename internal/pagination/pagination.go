package pagination

// Bounds of the pagination contract shared by every list endpoint.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MinPageSize     = 1
	MaxPageSize     = 100
)

// Params are the raw page/page_size values from the query string. Zero
// means "not provided".
type Params struct {
	Page     int
	PageSize int
}

// Normalize clamps the parameters and derives the query window.
// page < 1 clamps to 1 so the offset is never negative; page_size clamps
// into [MinPageSize, MaxPageSize] instead of failing the request.
func (p Params) Normalize() (limit, offset int64, page, pageSize int) {
	page = p.Page
	if page < 1 {
		page = DefaultPage
	}

	pageSize = p.PageSize
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}
	if pageSize < MinPageSize {
		pageSize = MinPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	limit = int64(pageSize)
	offset = int64(page-1) * limit
	return limit, offset, page, pageSize
}

// Meta describes the full result set a page was cut from.
type Meta struct {
	TotalRecords int64 `json:"total_records"`
	CurrentPage  int   `json:"current_page"`
	PageSize     int   `json:"page_size"`
	TotalPages   int64 `json:"total_pages"`
}

// NewMeta computes total_pages as ceil(totalRecords / pageSize), with 0
// pages for an empty result set. A page beyond TotalPages is not an error;
// the caller just gets empty data alongside the true totals.
func NewMeta(totalRecords int64, page, pageSize int) Meta {
	var totalPages int64
	if totalRecords > 0 {
		totalPages = (totalRecords + int64(pageSize) - 1) / int64(pageSize)
	}
	return Meta{
		TotalRecords: totalRecords,
		CurrentPage:  page,
		PageSize:     pageSize,
		TotalPages:   totalPages,
	}
}

// Response is the {data, meta} envelope returned by list endpoints.
type Response[T any] struct {
	Data []T  `json:"data"`
	Meta Meta `json:"meta"`
}

// NewResponse assembles the envelope, guaranteeing data serializes as []
// rather than null when the page is empty.
func NewResponse[T any](data []T, totalRecords int64, page, pageSize int) Response[T] {
	if data == nil {
		data = []T{}
	}
	return Response[T]{
		Data: data,
		Meta: NewMeta(totalRecords, page, pageSize),
	}
}
