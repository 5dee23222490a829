package handler_test

// The handler tests run against real services over an in-memory SQLite
// database — the full stack below the router. Authentication is injected
// directly into the request context (the middleware has its own tests), and
// path parameters are set with SetPathValue since no router is in play.

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/sakif/contact-manager/internal/auth"
	"github.com/sakif/contact-manager/internal/handler"
	"github.com/sakif/contact-manager/internal/model"
	"github.com/sakif/contact-manager/internal/repository/sqlite"
	"github.com/sakif/contact-manager/internal/service"
)

type fixture struct {
	users     *handler.UserHandler
	auth      *handler.AuthHandler
	contacts  *handler.ContactHandler
	addresses *handler.AddressHandler

	userRepo    *sqlite.UserRepo
	userService *service.UserService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	userRepo := sqlite.NewUserRepo(db)
	contactRepo := sqlite.NewContactRepo(db)
	addressRepo := sqlite.NewAddressRepo(db)

	// bcrypt at minimum cost; production cost would dominate the suite's runtime.
	passwords := auth.NewPasswordService(4)
	tokens, err := auth.NewTokenService(time.Hour)
	if err != nil {
		t.Fatalf("creating token service: %v", err)
	}

	userService := service.NewUserService(userRepo, passwords, logger)
	authService := service.NewAuthService(userRepo, tokens, passwords, logger)
	contactService := service.NewContactService(contactRepo, logger)
	addressService := service.NewAddressService(contactRepo, addressRepo, logger)

	return &fixture{
		users:       handler.NewUserHandler(userService, logger),
		auth:        handler.NewAuthHandler(authService, logger),
		contacts:    handler.NewContactHandler(contactService, logger),
		addresses:   handler.NewAddressHandler(addressService, logger),
		userRepo:    userRepo,
		userService: userService,
	}
}

// seedUser registers an account the way production does and returns the
// stored user for use as a request principal.
func (f *fixture) seedUser(t *testing.T, username, password string) *model.User {
	t.Helper()
	_, err := f.userService.Register(context.Background(), model.RegisterUserRequest{
		Username: username,
		Password: password,
		Name:     "Test " + username,
	})
	if err != nil {
		t.Fatalf("seeding user %s: %v", username, err)
	}
	user, err := f.userRepo.GetByUsername(context.Background(), username)
	if err != nil {
		t.Fatalf("loading seeded user %s: %v", username, err)
	}
	return user
}

// asUser attaches the principal the auth middleware would have injected.
func asUser(r *http.Request, user *model.User) *http.Request {
	return r.WithContext(auth.ContextWithUser(r.Context(), user))
}

// envelope is the generic response shape for decoding in assertions.
type envelope struct {
	Data   json.RawMessage `json:"data"`
	Paging *model.Paging   `json:"paging"`
	Errors string          `json:"errors"`
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.NewDecoder(rr.Body).Decode(&env); err != nil {
		t.Fatalf("decoding response envelope: %v", err)
	}
	return env
}

func dataString(t *testing.T, env envelope) string {
	t.Helper()
	var s string
	if err := json.Unmarshal(env.Data, &s); err != nil {
		t.Fatalf("data is not a string: %s", env.Data)
	}
	return s
}
