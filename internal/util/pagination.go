package util

// Calculate clamps the page number and turns it into an offset/limit pair.
func Calculate(page, size int) (from, limit int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 10
	}
	from = (page - 1) * size
	return from, size
}

// TotalPages is ceil(total/size).
func TotalPages(total int64, size int) int {
	if size <= 0 {
		return 0
	}
	pages := int(total) / size
	if int(total)%size != 0 {
		pages++
	}
	return pages
}

func ClampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}
