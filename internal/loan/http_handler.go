package loan

import (
	"net/http"
	"strconv"

	"libraryapi/internal/httpx"
	"libraryapi/internal/reader"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type issueReq struct {
	BookID int64 `json:"book_id" validate:"required,gt=0"`
}

func actorOrUnauthorized(w http.ResponseWriter, r *http.Request) (reader.Reader, bool) {
	actor, ok := reader.FromContext(r.Context())
	if !ok {
		httpx.Unauthorized(w, r)
	}
	return actor, ok
}

// Issue handles POST /loans/
// @Summary Borrow a book
// @Tags loans
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body issueReq true "Book to borrow"
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse "No copies available or loan limit exceeded"
// @Failure 404 {object} httpx.ErrorResponse
// @Router /loans/ [post]
func (h *HTTPHandler) Issue(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}
	var req issueReq
	if !httpx.Bind(w, r, &req) {
		return
	}

	l, err := h.service.Issue(r.Context(), actor, req.BookID)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSONSuccessCreated(w, r, l)
}

// Return handles PUT /loans/{id}/return
// @Summary Return a borrowed book
// @Tags loans
// @Produce json
// @Security Bearer
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse "Already returned"
// @Failure 403 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /loans/{id}/return [put]
func (h *HTTPHandler) Return(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}
	id, ok := httpx.PathID(w, r, "id")
	if !ok {
		return
	}

	l, err := h.service.Return(r.Context(), id, actor)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, l, nil)
}

// Get handles GET /loans/{id}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}
	id, ok := httpx.PathID(w, r, "id")
	if !ok {
		return
	}

	l, err := h.service.Get(r.Context(), id, actor)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, l, nil)
}

// List handles GET /loans/
// @Summary List loans
// @Description Readers see their own loans; admins see all and may filter by reader_id.
// @Tags loans
// @Produce json
// @Security Bearer
// @Param reader_id query int false "Borrower"
// @Param active query bool false "Only unreturned (true) or returned (false) loans"
// @Param skip query int false "Offset"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} httpx.SuccessResponse
// @Router /loans/ [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}
	page, details := httpx.ParsePage(r)

	q := Query{Skip: page.Skip, Limit: page.Limit}
	if v := r.URL.Query().Get("reader_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			details = append(details, httpx.ErrorDetail{Field: "reader_id", Message: "reader_id must be a positive integer"})
		} else {
			q.ReaderID = &id
		}
	}
	if v := r.URL.Query().Get("active"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			details = append(details, httpx.ErrorDetail{Field: "active", Message: "active must be true or false"})
		} else {
			q.Active = &active
		}
	}
	if len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query", details)
		return
	}

	loans, err := h.service.List(r.Context(), actor, q)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, loans, page.Meta(len(loans)))
}
