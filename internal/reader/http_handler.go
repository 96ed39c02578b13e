package reader

import (
	"net/http"

	"libraryapi/internal/apperr"
	"libraryapi/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type updateReq struct {
	Name     *string `json:"name" validate:"omitempty,notblank,max=100"`
	Email    *string `json:"email" validate:"omitempty,email,max=254"`
	Password *string `json:"password" validate:"omitempty,min=8,maxbytes=72"`
}

// List handles GET /readers/
// @Summary List readers
// @Tags readers
// @Produce json
// @Security Bearer
// @Param skip query int false "Offset"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Router /readers/ [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	page, ok := httpx.PageOrError(w, r)
	if !ok {
		return
	}

	readers, err := h.service.List(r.Context(), page.Skip, page.Limit)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, readers, page.Meta(len(readers)))
}

// Get handles GET /readers/{id}
// @Summary Get a reader
// @Tags readers
// @Produce json
// @Security Bearer
// @Success 200 {object} httpx.SuccessResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /readers/{id} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.authorizedTarget(w, r)
	if !ok {
		return
	}

	rd, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, rd, nil)
}

// Update handles PUT /readers/{id}
// @Summary Update a reader
// @Description Replace name, email or password. Allowed for the reader themself or an admin.
// @Tags readers
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body updateReq true "Fields to replace"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Router /readers/{id} [put]
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.authorizedTarget(w, r)
	if !ok {
		return
	}

	var req updateReq
	if !httpx.Bind(w, r, &req) {
		return
	}

	rd, err := h.service.Update(r.Context(), id, UpdateCommand{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, rd, nil)
}

// authorizedTarget parses {id} and checks the caller may act on it.
func (h *HTTPHandler) authorizedTarget(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := httpx.PathID(w, r, "id")
	if !ok {
		return 0, false
	}
	actor, ok := FromContext(r.Context())
	if !ok {
		httpx.Unauthorized(w, r)
		return 0, false
	}
	if !actor.CanManage(id) {
		httpx.Error(w, r, apperr.ErrForbidden)
		return 0, false
	}
	return id, true
}
