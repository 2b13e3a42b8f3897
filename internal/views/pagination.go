package views

// PageSize is the fixed item list page length.
const PageSize = 20

// TotalPages is ceil(count/size).
func TotalPages(count, size int) int {
	if count <= 0 || size <= 0 {
		return 0
	}
	return (count + size - 1) / size
}

// Offset is the first row of page (1-based).
func Offset(page, size int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * size
}
