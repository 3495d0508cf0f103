package utils

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Page is a 1-based window read from the page and limit query parameters.
type Page struct {
	Number int
	Size   int
}

// PageFromQuery never fails: unparsable values fall back to defaults and
// oversized limits are clamped.
func PageFromQuery(c echo.Context) Page {
	number, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || number <= 0 {
		number = 1
	}

	size, err := strconv.Atoi(c.QueryParam("limit"))
	switch {
	case err != nil || size <= 0:
		size = DefaultPageSize
	case size > MaxPageSize:
		size = MaxPageSize
	}

	return Page{Number: number, Size: size}
}
