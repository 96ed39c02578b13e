package book

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
	Title           string     `json:"title" validate:"notblank,max=255"`
	Description     string     `json:"description" validate:"max=5000"`
	PublicationDate *date.Date `json:"publication_date" validate:"required"`
	AvailableCopies *int       `json:"available_copies" validate:"omitempty,gte=0"`
	AuthorIDs       []int64    `json:"author_ids" validate:"omitempty,unique,dive,gt=0"`
	GenreIDs        []int64    `json:"genre_ids" validate:"omitempty,unique,dive,gt=0"`
}

type updateReq struct {
	Title           *string    `json:"title" validate:"omitempty,notblank,max=255"`
	Description     *string    `json:"description" validate:"omitempty,max=5000"`
	PublicationDate *date.Date `json:"publication_date"`
	AvailableCopies *int       `json:"available_copies" validate:"omitempty,gte=0"`
	AuthorIDs       []int64    `json:"author_ids" validate:"omitempty,unique,dive,gt=0"`
	GenreIDs        []int64    `json:"genre_ids" validate:"omitempty,unique,dive,gt=0"`
}

// List handles GET /books/
// @Summary List books
// @Tags books
// @Produce json
// @Param skip query int false "Offset"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Router /books/ [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	page, ok := httpx.PageOrError(w, r)
	if !ok {
		return
	}

	books, err := h.service.List(r.Context(), page.Skip, page.Limit)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, books, page.Meta(len(books)))
}

// Get handles GET /books/{id}
// @Summary Get a book
// @Tags books
// @Produce json
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{id} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(w, r, "id")
	if !ok {
		return
	}

	b, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, b, nil)
}

// Create handles POST /books/
// @Summary Create a book
// @Tags books
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body createReq true "Book"
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/ [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createReq
	if !httpx.Bind(w, r, &req) {
		return
	}

	copies := DefaultCopies
	if req.AvailableCopies != nil {
		copies = *req.AvailableCopies
	}

	b, err := h.service.Create(r.Context(), CreateCommand{
		Title:           req.Title,
		Description:     req.Description,
		PublicationDate: req.PublicationDate,
		AvailableCopies: copies,
		AuthorIDs:       req.AuthorIDs,
		GenreIDs:        req.GenreIDs,
	})
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSONSuccessCreated(w, r, b)
}

// Update handles PUT /books/{id}
// @Summary Update a book
// @Description Replaces the provided fields; author_ids and genre_ids replace the relation sets.
// @Tags books
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body updateReq true "Fields to replace"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{id} [put]
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(w, r, "id")
	if !ok {
		return
	}
	var req updateReq
	if !httpx.Bind(w, r, &req) {
		return
	}

	cmd := UpdateCommand{
		Title:           req.Title,
		Description:     req.Description,
		PublicationDate: req.PublicationDate,
		AvailableCopies: req.AvailableCopies,
	}
	if req.AuthorIDs != nil {
		cmd.AuthorIDs = &req.AuthorIDs
	}
	if req.GenreIDs != nil {
		cmd.GenreIDs = &req.GenreIDs
	}

	b, err := h.service.Update(r.Context(), id, cmd)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, b, nil)
}

// Delete handles DELETE /books/{id}
// @Summary Delete a book
// @Tags books
// @Security Bearer
// @Success 204
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Router /books/{id} [delete]
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
