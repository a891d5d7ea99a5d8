package transport

import (
	"math"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePage(t *testing.T) {
	pg, ok := parsePage(httptest.NewRequest("GET", "/api/activities", nil))
	require.True(t, ok)
	require.Equal(t, pageRequest{}, pg)

	pg, ok = parsePage(httptest.NewRequest("GET", "/api/activities?page=3", nil))
	require.True(t, ok)
	require.Equal(t, pageRequest{Page: 3, Size: defaultPageSize}, pg)

	pg, ok = parsePage(httptest.NewRequest("GET", "/api/activities?page_size=1000", nil))
	require.True(t, ok)
	require.Equal(t, pageRequest{Page: 1, Size: maxPageSize}, pg)

	for _, query := range []string{"page=0", "page=-1", "page=x", "page_size=0", "page=99999999999999999999"} {
		_, ok = parsePage(httptest.NewRequest("GET", "/api/activities?"+query, nil))
		require.False(t, ok, query)
	}
}

func TestPageBounds(t *testing.T) {
	cases := []struct {
		name       string
		pg         pageRequest
		n          int
		start, end int
	}{
		{"unpaged", pageRequest{}, 7, 0, 7},
		{"first page", pageRequest{Page: 1, Size: 3}, 7, 0, 3},
		{"last partial page", pageRequest{Page: 3, Size: 3}, 7, 6, 7},
		{"past the end", pageRequest{Page: 4, Size: 3}, 7, 7, 7},
		{"empty list", pageRequest{Page: 1, Size: 3}, 0, 0, 0},
		{"huge page", pageRequest{Page: math.MaxInt, Size: maxPageSize}, 7, 7, 7},
		{"overflowing product", pageRequest{Page: math.MaxInt/maxPageSize + 2, Size: maxPageSize}, 7, 7, 7},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, end := tc.pg.bounds(tc.n)
			require.Equal(t, tc.start, start)
			require.Equal(t, tc.end, end)
		})
	}
}

func TestPageBounds_ParsedHugePage(t *testing.T) {
	pg, ok := parsePage(httptest.NewRequest("GET", "/?page="+strconv.Itoa(math.MaxInt), nil))
	require.True(t, ok)
	start, end := pg.bounds(5)
	require.Equal(t, 5, start)
	require.Equal(t, 5, end)
}
