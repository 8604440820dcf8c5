package pagination

import "fmt"

// State is the display-ready pagination derived from Params and the latest
// fetched collection. It is never stored on its own.
type State struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`       // Records on the current page
	Count      int `json:"count"`       // Records across all pages
	TotalPages int `json:"total_pages"` // ceil(count / page_size), at least 1
}

// Summary is the part of a fetched collection the calculator needs.
type Summary struct {
	Count         int // Grand total of matching records
	PageItemCount int // Records present in the returned page
}

// CalculateOffset calculates the zero-based index of the first record on a page.
// Page numbers are 1-based, so page 1 has offset 0.
//
// Examples:
//   - Page 1, PageSize 10 -> Offset 0
//   - Page 3, PageSize 10 -> Offset 20
func CalculateOffset(page, pageSize int) int {
	return (page - 1) * pageSize
}

// CalculateTotalPages calculates the total number of pages based on the
// record count and page size, using ceiling division.
//
// Special cases:
//   - If count is 0, returns 1 (always at least 1 page)
//   - If pageSize is not positive, returns 1
//
// Examples:
//   - Count 0, PageSize 10 -> 1 page
//   - Count 26, PageSize 10 -> 3 pages
//   - Count 30, PageSize 10 -> 3 pages
func CalculateTotalPages(count, pageSize int) int {
	if count <= 0 || pageSize < 1 {
		return 1
	}
	return (count + pageSize - 1) / pageSize
}

// Compute derives pagination state. A nil summary means nothing has been
// fetched yet and yields zero totals on a single page.
//
// The page is not clamped against TotalPages; an out-of-range page is
// reported as requested.
func Compute(p Params, s *Summary) State {
	st := State{
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: 1,
	}
	if s == nil {
		return st
	}
	st.Total = s.PageItemCount
	st.Count = s.Count
	st.TotalPages = CalculateTotalPages(s.Count, p.PageSize)
	return st
}

// Range returns the 1-based inclusive bounds of the records on the page.
// For an empty page end is start-1.
func (s State) Range() (start, end int) {
	start = CalculateOffset(s.Page, s.PageSize) + 1
	return start, start + s.Total - 1
}

// Caption renders the "Showing {start} - {end} of {count}" line.
func (s State) Caption() string {
	start, end := s.Range()
	return fmt.Sprintf("Showing %d - %d of %d", start, end, s.Count)
}
