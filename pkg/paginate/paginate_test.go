package paginate_test

import (
	"net/http/httptest"
	"testing"

	"github.com/foodnest/foodnest/pkg/paginate"
)

func TestFromRequestDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/products", nil)
	p := paginate.FromRequest(r)
	if p.Page != 1 || p.PageSize != paginate.DefaultPageSize {
		t.Errorf("got page=%d size=%d, want 1/%d", p.Page, p.PageSize, paginate.DefaultPageSize)
	}
}

func TestFromRequestClamps(t *testing.T) {
	cases := []struct {
		query    string
		page     int
		pageSize int
	}{
		{"page=3&page_size=25", 3, 25},
		{"page=0&page_size=0", 1, paginate.DefaultPageSize},
		{"page=-5&page_size=-1", 1, paginate.DefaultPageSize},
		{"page=2&page_size=5000", 2, paginate.MaxPageSize},
		{"page=abc&page_size=xyz", 1, paginate.DefaultPageSize},
	}

	for _, c := range cases {
		r := httptest.NewRequest("GET", "/api/v1/orders?"+c.query, nil)
		p := paginate.FromRequest(r)
		if p.Page != c.page || p.PageSize != c.pageSize {
			t.Errorf("%q: got page=%d size=%d, want %d/%d", c.query, p.Page, p.PageSize, c.page, c.pageSize)
		}
	}
}

func TestSkipLimit(t *testing.T) {
	p := paginate.Params{Page: 3, PageSize: 20}
	if p.Skip() != 40 {
		t.Errorf("Skip = %d, want 40", p.Skip())
	}
	if p.Limit() != 20 {
		t.Errorf("Limit = %d, want 20", p.Limit())
	}
}

func TestMetaFor(t *testing.T) {
	cases := []struct {
		total int64
		size  int
		pages int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{95, 10, 10},
	}

	for _, c := range cases {
		m := paginate.Params{Page: 1, PageSize: c.size}.MetaFor(c.total)
		if m.TotalPages != c.pages {
			t.Errorf("MetaFor(%d) pages = %d, want %d", c.total, m.TotalPages, c.pages)
		}
		if m.TotalCount != c.total {
			t.Errorf("MetaFor(%d) count = %d", c.total, m.TotalCount)
		}
	}
}
