package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"libraryapi/internal/auth"
	"libraryapi/internal/author"
	"libraryapi/internal/book"
	"libraryapi/internal/config"
	"libraryapi/internal/genre"
	"libraryapi/internal/httpx"
	"libraryapi/internal/loan"
	"libraryapi/internal/platform/crypto"
	"libraryapi/internal/reader"
)

// newHandler wires services and handlers on top of b and returns the root
// handler with the global middleware chain applied.
func newHandler(cfg config.Config, b *backend, logger *slog.Logger) (http.Handler, error) {
	tokens, err := crypto.NewTokenService(cfg.JWTSecret, cfg.AccessTokenTTL)
	if err != nil {
		return nil, err
	}

	readerService := reader.NewService(b.readers, cfg.AllowAdminRegistration, logger)
	authService := auth.NewService(tokens, readerService, logger)
	resolver := auth.NewResolver(tokens, readerService)

	authHandler := auth.NewHTTPHandler(authService, readerService)
	readerHandler := reader.NewHTTPHandler(readerService)
	bookHandler := book.NewHTTPHandler(book.NewService(b.books))
	authorHandler := author.NewHTTPHandler(author.NewService(b.authors))
	genreHandler := genre.NewHTTPHandler(genre.NewService(b.genres))
	loanHandler := loan.NewHTTPHandler(loan.NewService(b.loans, logger))

	authn := auth.Middleware(resolver)
	bearer := func(h http.HandlerFunc) http.Handler { return authn(h) }
	admin := func(h http.HandlerFunc) http.Handler { return authn(auth.RequireAdmin(h)) }
	limiter := httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.TrustProxyHeaders)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := b.ping(ctx); err != nil {
			http.Error(w, "storage not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	// Auth
	mux.Handle("POST /register", limiter.Middleware(http.HandlerFunc(authHandler.Register)))
	mux.Handle("POST /login", limiter.Middleware(http.HandlerFunc(authHandler.Login)))
	mux.Handle("GET /user-info", bearer(authHandler.UserInfo))
	mux.Handle("GET /admin-only", admin(authHandler.AdminOnly))

	// Catalog: reads are public, writes are admin only.
	collection(mux, "GET", "/books", http.HandlerFunc(bookHandler.List))
	collection(mux, "POST", "/books", admin(bookHandler.Create))
	mux.HandleFunc("GET /books/{id}", bookHandler.Get)
	mux.Handle("PUT /books/{id}", admin(bookHandler.Update))
	mux.Handle("DELETE /books/{id}", admin(bookHandler.Delete))

	collection(mux, "GET", "/authors", http.HandlerFunc(authorHandler.List))
	collection(mux, "POST", "/authors", admin(authorHandler.Create))
	mux.HandleFunc("GET /authors/{id}", authorHandler.Get)
	mux.Handle("PUT /authors/{id}", admin(authorHandler.Update))
	mux.Handle("DELETE /authors/{id}", admin(authorHandler.Delete))

	collection(mux, "GET", "/genres", http.HandlerFunc(genreHandler.List))
	collection(mux, "POST", "/genres", admin(genreHandler.Create))
	mux.HandleFunc("GET /genres/{id}", genreHandler.Get)
	mux.Handle("PUT /genres/{id}", admin(genreHandler.Update))
	mux.Handle("DELETE /genres/{id}", admin(genreHandler.Delete))

	// Readers
	collection(mux, "GET", "/readers", admin(readerHandler.List))
	mux.Handle("GET /readers/{id}", bearer(readerHandler.Get))
	mux.Handle("PUT /readers/{id}", bearer(readerHandler.Update))

	// Loans
	collection(mux, "GET", "/loans", bearer(loanHandler.List))
	collection(mux, "POST", "/loans", bearer(loanHandler.Issue))
	mux.Handle("GET /loans/{id}", bearer(loanHandler.Get))
	mux.Handle("PUT /loans/{id}/return", bearer(loanHandler.Return))

	return httpx.Chain(mux,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(logger),
		httpx.RecoveryMiddleware(logger),
		httpx.SecurityHeadersMiddleware(cfg.EnableHSTS),
		httpx.CORSMiddleware(cfg.CORSAllowedOrigins),
		httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes),
	), nil
}

// collection registers h for a collection path with and without the
// trailing slash. "{$}" keeps "/books/" from matching every sub-path.
func collection(mux *http.ServeMux, method, path string, h http.Handler) {
	mux.Handle(method+" "+path, h)
	mux.Handle(method+" "+path+"/{$}", h)
}
