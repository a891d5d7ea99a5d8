package transport

import (
	"net/http"
	"strconv"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// pageRequest is an optional page window. The zero value selects everything.
type pageRequest struct {
	Page int
	Size int
}

// parsePage reads page and page_size. Without either parameter the whole list
// is returned.
func parsePage(r *http.Request) (pageRequest, bool) {
	rawPage := r.URL.Query().Get("page")
	rawSize := r.URL.Query().Get("page_size")
	if rawPage == "" && rawSize == "" {
		return pageRequest{}, true
	}

	pg := pageRequest{Page: 1, Size: defaultPageSize}
	if rawPage != "" {
		n, err := strconv.Atoi(rawPage)
		if err != nil || n < 1 {
			return pageRequest{}, false
		}
		pg.Page = n
	}
	if rawSize != "" {
		n, err := strconv.Atoi(rawSize)
		if err != nil || n < 1 {
			return pageRequest{}, false
		}
		pg.Size = min(n, maxPageSize)
	}
	return pg, true
}

// bounds returns the slice window for a list of n items. Pages past the end
// yield an empty window.
func (p pageRequest) bounds(n int) (start, end int) {
	if p.Size == 0 {
		return 0, n
	}
	if p.Page-1 > n/p.Size {
		return n, n
	}
	start = min((p.Page-1)*p.Size, n)
	end = start + min(p.Size, n-start)
	return start, end
}
