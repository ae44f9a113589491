package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/abs/2101.00001v1</id>
    <title>Sample Paper One</title>
    <summary>First abstract.</summary>
    <published>2021-01-01T00:00:00Z</published>
    <author><name>Ada Lovelace</name></author>
    <author><name>Alan Turing</name></author>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/2102.99999v2</id>
    <title>Sample Paper Two</title>
    <summary>Second abstract.</summary>
    <published>2021-02-15T00:00:00Z</published>
    <author><name>Grace Hopper</name></author>
  </entry>
</feed>`

func TestArxivSearch(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/atom+xml")
		w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	client := NewArxivClient(srv.URL)
	papers, err := client.Search(context.Background(), "quantum computing", 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	q := "search_query=all%3Aquantum+computing"
	if gotQuery == "" || !containsParam(gotQuery, q) {
		t.Errorf("request query = %q, missing %q", gotQuery, q)
	}
	if !containsParam(gotQuery, "sortBy=relevance") {
		t.Errorf("request query = %q, missing relevance sort", gotQuery)
	}
	if !containsParam(gotQuery, "max_results=2") {
		t.Errorf("request query = %q, missing max_results", gotQuery)
	}

	if len(papers) != 2 {
		t.Fatalf("got %d papers, want 2", len(papers))
	}

	p := papers[0]
	if p.ID != "2101.00001v1" {
		t.Errorf("id = %q, want trailing path segment", p.ID)
	}
	if p.URL != "http://arxiv.org/abs/2101.00001v1" {
		t.Errorf("url = %q", p.URL)
	}
	if p.Title != "Sample Paper One" {
		t.Errorf("title = %q", p.Title)
	}
	if p.Abstract != "First abstract." {
		t.Errorf("abstract = %q", p.Abstract)
	}
	if len(p.Authors) != 2 || p.Authors[0] != "Ada Lovelace" {
		t.Errorf("authors = %v", p.Authors)
	}
	if p.Published != "2021-01-01T00:00:00Z" {
		t.Errorf("published = %q", p.Published)
	}
}

func containsParam(rawQuery, param string) bool {
	for _, part := range strings.Split(rawQuery, "&") {
		if part == param {
			return true
		}
	}
	return false
}

func TestArxivSearchEmptyFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<?xml version="1.0"?><feed xmlns="http://www.w3.org/2005/Atom"></feed>`))
	}))
	defer srv.Close()

	papers, err := NewArxivClient(srv.URL).Search(context.Background(), "nothing", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(papers) != 0 {
		t.Errorf("got %d papers, want 0", len(papers))
	}
}

func TestArxivSearchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewArxivClient(srv.URL).Search(context.Background(), "q", 5)
	if !errors.Is(err, ErrFetch) {
		t.Errorf("err = %v, want wrapped ErrFetch", err)
	}
}

func TestArxivSearchMalformedFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("this is not xml"))
	}))
	defer srv.Close()

	_, err := NewArxivClient(srv.URL).Search(context.Background(), "q", 5)
	if !errors.Is(err, ErrFetch) {
		t.Errorf("err = %v, want wrapped ErrFetch", err)
	}
}

func TestEntryID(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"http://arxiv.org/abs/2101.00001v1", "2101.00001v1"},
		{"2101.00001v1", "2101.00001v1"},
		{"", ""},
	}
	for _, c := range cases {
		if got := entryID(c.in); got != c.want {
			t.Errorf("entryID(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
