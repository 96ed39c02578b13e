package httpx

import (
	"net/http"
	"strconv"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Page is skip/limit pagination as read from the query string.
type Page struct {
	Skip  int
	Limit int
}

// Meta returns the pagination block for a list response of count items.
func (p Page) Meta(count int) map[string]any {
	return map[string]any{"skip": p.Skip, "limit": p.Limit, "count": count}
}

// ParsePage reads skip (default 0) and limit (default 10, at most 100).
func ParsePage(r *http.Request) (Page, []ErrorDetail) {
	q := r.URL.Query()
	p := Page{Skip: 0, Limit: DefaultLimit}
	var details []ErrorDetail

	if v := q.Get("skip"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			details = append(details, ErrorDetail{Field: "skip", Message: "skip must be a non-negative integer"})
		} else {
			p.Skip = n
		}
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > MaxLimit {
			details = append(details, ErrorDetail{Field: "limit", Message: "limit must be between 1 and 100"})
		} else {
			p.Limit = n
		}
	}
	return p, details
}

// PageOrError parses pagination and writes a 400 when it is invalid.
func PageOrError(w http.ResponseWriter, r *http.Request) (Page, bool) {
	p, details := ParsePage(r)
	if len(details) > 0 {
		JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid pagination", details)
		return Page{}, false
	}
	return p, true
}

// PathID parses a positive integer path value and writes a 400 otherwise.
func PathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid "+name, nil)
		return 0, false
	}
	return id, true
}
