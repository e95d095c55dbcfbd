package shared

import "strconv"

const (
	ThreadsPerPage = 25
	PostsPerPage   = 10
)

// NewPageInfo resolves a requested page the way the listing pages always have: malformed input means
// the first page and anything past the end means the last page.
func NewPageInfo(requested string, totalItems, perPage int) PageInfo {
	totalPages := 1
	if totalItems > 0 {
		totalPages = (totalItems + perPage - 1) / perPage
	}

	number, err := strconv.Atoi(requested)
	if err != nil || number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	return PageInfo{
		Number:      number,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
		HasNext:     number < totalPages,
		HasPrevious: number > 1,
	}
}

func (p PageInfo) Offset(perPage int) int {
	return (p.Number - 1) * perPage
}
