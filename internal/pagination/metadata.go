package pagination

// Meta contains metadata about the page being displayed.
type Meta struct {
	CurrentPage int  `json:"current_page" yaml:"current_page"`
	TotalPages  int  `json:"total_pages"  yaml:"total_pages"`
	PageItems   int  `json:"page_items"   yaml:"page_items"`
	HasPrevious bool `json:"has_previous" yaml:"has_previous"`
	HasNext     bool `json:"has_next"     yaml:"has_next"`
	Loading     bool `json:"-"            yaml:"-"`
}

// NewMeta builds page metadata. A total below 1 is reported as 1.
func NewMeta(page, totalPage, pageItems int, loading bool) Meta {
	if totalPage < FirstPage {
		totalPage = FirstPage
	}
	return Meta{
		CurrentPage: page,
		TotalPages:  totalPage,
		PageItems:   pageItems,
		HasPrevious: page > FirstPage,
		HasNext:     page < totalPage,
		Loading:     loading,
	}
}
