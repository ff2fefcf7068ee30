package services

import (
	"errors"
	"strconv"
)

var ErrInvalidPage = errors.New("invalid page")

type Pagination struct {
	Page        int   `json:"page"`
	PageSize    int   `json:"page_size"`
	TotalPages  int   `json:"total_pages"`
	Count       int64 `json:"count"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

func (v Pagination) Offset() int {
	return (v.Page - 1) * v.PageSize
}

// NewPagination resolves the raw page parameter against the total count.
// An empty listing still has a first page; "last" jumps to the final page.
func NewPagination(total int64, raw string, size int) (Pagination, error) {
	if size <= 0 {
		size = 10
	}

	pages := int((total + int64(size) - 1) / int64(size))
	if pages < 1 {
		pages = 1
	}

	page := 1
	switch raw {
	case "":
	case "last":
		page = pages
	default:
		number, err := strconv.Atoi(raw)
		if err != nil || number < 1 || number > pages {
			return Pagination{}, ErrInvalidPage
		}
		page = number
	}

	return Pagination{
		Page:        page,
		PageSize:    size,
		TotalPages:  pages,
		Count:       total,
		HasNext:     page < pages,
		HasPrevious: page > 1,
	}, nil
}
