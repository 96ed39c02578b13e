package genre

import (
	"net/http"

	"libraryapi/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type createReq struct {
	Name string `json:"name" validate:"notblank,max=100"`
}

type updateReq struct {
	Name *string `json:"name" validate:"omitempty,notblank,max=100"`
}

// List handles GET /genres/
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	page, ok := httpx.PageOrError(w, r)
	if !ok {
		return
	}

	genres, err := h.service.List(r.Context(), page.Skip, page.Limit)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, genres, page.Meta(len(genres)))
}

// Get handles GET /genres/{id}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(w, r, "id")
	if !ok {
		return
	}

	g, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, g, nil)
}

// Create handles POST /genres/
// @Summary Create a genre
// @Tags genres
// @Accept json
// @Produce json
// @Security Bearer
// @Success 201 {object} httpx.SuccessResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Router /genres/ [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createReq
	if !httpx.Bind(w, r, &req) {
		return
	}

	g, err := h.service.Create(r.Context(), req.Name)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSONSuccessCreated(w, r, g)
}

// Update handles PUT /genres/{id}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(w, r, "id")
	if !ok {
		return
	}
	var req updateReq
	if !httpx.Bind(w, r, &req) {
		return
	}

	g, err := h.service.Update(r.Context(), id, req.Name)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, g, nil)
}

// Delete handles DELETE /genres/{id}
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
