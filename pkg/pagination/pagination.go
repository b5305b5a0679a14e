package pagination

// PageSize is the fixed window applied to catalog browsing.
const PageSize = 10

// NormalizePage clamps the requested page to a 1-based value.
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// Offset returns the row offset for the requested page.
func Offset(page int) int {
	return (NormalizePage(page) - 1) * PageSize
}

// PageCount returns how many pages are needed for total rows; 0 when empty.
func PageCount(total int64) int {
	if total <= 0 {
		return 0
	}
	return int((total + PageSize - 1) / PageSize)
}
