// Package server is the composition root: it wires the database, services,
// handlers, and middleware into a router, and owns the HTTP lifecycle.
//
// DEPENDENCY FLOW:
//
//	main.go → server.New:
//	  sqlite.DB → per-entity repos → services → handlers → routes
//
// Each layer receives only what it needs. Services get repository
// interfaces, handlers get services, and nothing below this package ever
// sees the router.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/contact-manager/internal/auth"
	"github.com/sakif/contact-manager/internal/handler"
	"github.com/sakif/contact-manager/internal/middleware"
	sqliteRepo "github.com/sakif/contact-manager/internal/repository/sqlite"
	"github.com/sakif/contact-manager/internal/service"
)

// Config holds server configuration, loaded from the environment in
// cmd/server.
type Config struct {
	Port       int
	DBPath     string
	TokenTTL   time.Duration // session token validity window
	BcryptCost int           // 0 means the auth package default
}

// Server owns the router and the database connection. The connection is
// closed during graceful shutdown, after in-flight requests drain.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New assembles the full dependency chain and registers all routes.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes wires repositories, services, and handlers, then registers the
// route tree.
//
// ROUTE STRUCTURE:
//
//	POST   /api/users                                    → register (public)
//	POST   /api/auth/login                               → login (public)
//	DELETE /api/auth/logout                              → logout
//	GET    /api/users/current                            → current user
//	POST   /api/contacts                                 → create contact
//	GET    /api/contacts                                 → search contacts
//	GET    /api/contacts/{contactId}                     → get contact
//	PUT    /api/contacts/{contactId}                     → update contact
//	DELETE /api/contacts/{contactId}                     → delete contact
//	POST   /api/contacts/{contactId}/addresses           → create address
//	GET    /api/contacts/{contactId}/addresses           → list addresses
//	GET    /api/contacts/{contactId}/addresses/{addressId} → get address
//	PUT    /api/contacts/{contactId}/addresses/{addressId} → update address
//	DELETE /api/contacts/{contactId}/addresses/{addressId} → delete address
//
// Everything except register and login sits behind the token authenticator,
// so handlers on those routes always see a resolved principal.
func (s *Server) setupRoutes() error {
	// Global middleware, in order: request IDs for tracing, real client IPs
	// behind proxies, panic recovery, then our request log line.
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	userRepo := sqliteRepo.NewUserRepo(s.db)
	contactRepo := sqliteRepo.NewContactRepo(s.db)
	addressRepo := sqliteRepo.NewAddressRepo(s.db)

	passwords := auth.NewPasswordService(s.config.BcryptCost)
	tokens, err := auth.NewTokenService(s.config.TokenTTL)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}

	userService := service.NewUserService(userRepo, passwords, s.logger)
	authService := service.NewAuthService(userRepo, tokens, passwords, s.logger)
	contactService := service.NewContactService(contactRepo, s.logger)
	addressService := service.NewAddressService(contactRepo, addressRepo, s.logger)

	userHandler := handler.NewUserHandler(userService, s.logger)
	authHandler := handler.NewAuthHandler(authService, s.logger)
	contactHandler := handler.NewContactHandler(contactService, s.logger)
	addressHandler := handler.NewAddressHandler(addressService, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		// Public: the only two routes reachable without a token.
		r.Post("/users", userHandler.HandleRegister)
		r.Post("/auth/login", authHandler.HandleLogin)

		// Protected: the authenticator resolves the X-API-TOKEN header and
		// injects the user before any of these handlers run.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(userRepo, s.logger))

			r.Delete("/auth/logout", authHandler.HandleLogout)
			r.Get("/users/current", userHandler.HandleCurrent)

			r.Post("/contacts", contactHandler.HandleCreate)
			r.Get("/contacts", contactHandler.HandleSearch)
			r.Get("/contacts/{contactId}", contactHandler.HandleGet)
			r.Put("/contacts/{contactId}", contactHandler.HandleUpdate)
			r.Delete("/contacts/{contactId}", contactHandler.HandleDelete)

			r.Post("/contacts/{contactId}/addresses", addressHandler.HandleCreate)
			r.Get("/contacts/{contactId}/addresses", addressHandler.HandleList)
			r.Get("/contacts/{contactId}/addresses/{addressId}", addressHandler.HandleGet)
			r.Put("/contacts/{contactId}/addresses/{addressId}", addressHandler.HandleUpdate)
			r.Delete("/contacts/{contactId}/addresses/{addressId}", addressHandler.HandleDelete)
		})
	})

	return nil
}

// Start runs the HTTP server and blocks until shutdown.
//
// GRACEFUL SHUTDOWN:
//  1. Stop accepting new connections on SIGINT/SIGTERM
//  2. Drain in-flight requests (30s budget)
//  3. Close the database — flushes the WAL and releases the file lock
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
			slog.Duration("tokenTTL", s.config.TokenTTL),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
