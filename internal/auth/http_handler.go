package auth

import (
	"net/http"

	"libraryapi/internal/httpx"
	"libraryapi/internal/reader"
)

type HTTPHandler struct {
	service *Service
	readers *reader.Service
}

func NewHTTPHandler(service *Service, readers *reader.Service) *HTTPHandler {
	return &HTTPHandler{service: service, readers: readers}
}

type RegisterReq struct {
	Name     string `json:"name" validate:"notblank,max=100"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,maxbytes=72"`
	Role     string `json:"role" validate:"omitempty,role"`
}

type LoginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,maxbytes=72"`
}

// Register handles POST /register
// @Summary Register a reader
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterReq true "Registration request"
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Router /register [post]
func (h *HTTPHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterReq
	if !httpx.Bind(w, r, &req) {
		return
	}

	role, err := reader.ParseRole(req.Role)
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input",
			[]httpx.ErrorDetail{{Field: "role", Message: "role must be one of: reader, admin"}})
		return
	}

	rd, err := h.readers.Register(r.Context(), reader.RegisterCommand{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
	})
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSONSuccessCreated(w, r, rd)
}

// Login handles POST /login
// @Summary Log in
// @Description Verify credentials and receive a bearer access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginReq true "Login request"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /login [post]
func (h *HTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginReq
	if !httpx.Bind(w, r, &req) {
		return
	}

	token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, token, nil)
}

// UserInfo handles GET /user-info
// @Summary Current reader
// @Tags auth
// @Produce json
// @Security Bearer
// @Success 200 {object} httpx.SuccessResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /user-info [get]
func (h *HTTPHandler) UserInfo(w http.ResponseWriter, r *http.Request) {
	rd, ok := reader.FromContext(r.Context())
	if !ok {
		httpx.Unauthorized(w, r)
		return
	}
	httpx.JSONSuccess(w, r, rd, nil)
}

// AdminOnly handles GET /admin-only
// @Summary Admin check
// @Tags auth
// @Produce json
// @Security Bearer
// @Success 200 {object} httpx.SuccessResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Router /admin-only [get]
func (h *HTTPHandler) AdminOnly(w http.ResponseWriter, r *http.Request) {
	rd, _ := reader.FromContext(r.Context())
	httpx.JSONSuccess(w, r, map[string]any{
		"message": "Welcome, admin " + rd.Name,
	}, nil)
}
