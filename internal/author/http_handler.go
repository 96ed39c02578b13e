package author

import (
	"net/http"

	"libraryapi/internal/httpx"
	"libraryapi/internal/platform/date"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type createReq struct {
	Name        string     `json:"name" validate:"notblank,max=100"`
	Biography   string     `json:"biography" validate:"max=5000"`
	DateOfBirth *date.Date `json:"date_of_birth" validate:"required"`
}

type updateReq struct {
	Name        *string    `json:"name" validate:"omitempty,notblank,max=100"`
	Biography   *string    `json:"biography" validate:"omitempty,max=5000"`
	DateOfBirth *date.Date `json:"date_of_birth"`
}

// List handles GET /authors/
// @Summary List authors
// @Tags authors
// @Produce json
// @Param skip query int false "Offset"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} httpx.SuccessResponse
// @Router /authors/ [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	page, ok := httpx.PageOrError(w, r)
	if !ok {
		return
	}

	authors, err := h.service.List(r.Context(), page.Skip, page.Limit)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, authors, page.Meta(len(authors)))
}

// Get handles GET /authors/{id}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(w, r, "id")
	if !ok {
		return
	}

	a, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, a, nil)
}

// Create handles POST /authors/
// @Summary Create an author
// @Tags authors
// @Accept json
// @Produce json
// @Security Bearer
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Router /authors/ [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createReq
	if !httpx.Bind(w, r, &req) {
		return
	}

	a, err := h.service.Create(r.Context(), CreateCommand{
		Name:        req.Name,
		Biography:   req.Biography,
		DateOfBirth: req.DateOfBirth,
	})
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSONSuccessCreated(w, r, a)
}

// Update handles PUT /authors/{id}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(w, r, "id")
	if !ok {
		return
	}
	var req updateReq
	if !httpx.Bind(w, r, &req) {
		return
	}

	a, err := h.service.Update(r.Context(), id, UpdateCommand{
		Name:        req.Name,
		Biography:   req.Biography,
		DateOfBirth: req.DateOfBirth,
	})
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, a, nil)
}

// Delete handles DELETE /authors/{id}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}
