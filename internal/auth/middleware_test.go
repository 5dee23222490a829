package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/contact-manager/internal/auth"
	"github.com/sakif/contact-manager/internal/model"
)

// fakeResolver implements auth.UserResolver over a map, plus an optional
// forced error to simulate a store failure.
type fakeResolver struct {
	users map[string]*model.User
	err   error
}

func (f *fakeResolver) FindByToken(_ context.Context, token string) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.users[token], nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// protectedProbe records whether the inner handler ran and which principal
// it observed.
type protectedProbe struct {
	ran  bool
	user *model.User
}

func (p *protectedProbe) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.ran = true
		p.user, _ = auth.UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func errorsBody(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	return body["errors"]
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	probe := &protectedProbe{}
	mw := auth.RequireAuth(&fakeResolver{}, testLogger())
	srv := mw(probe.handler())

	req := httptest.NewRequest(http.MethodGet, "/api/contacts", nil)
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "UNAUTHORIZED", errorsBody(t, rr))
	assert.False(t, probe.ran, "handler must not run without a token")
}

func TestRequireAuth_UnknownToken(t *testing.T) {
	probe := &protectedProbe{}
	mw := auth.RequireAuth(&fakeResolver{users: map[string]*model.User{}}, testLogger())
	srv := mw(probe.handler())

	req := httptest.NewRequest(http.MethodGet, "/api/contacts", nil)
	req.Header.Set(auth.HeaderToken, "no-such-token")
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)

	// Same status AND same body as the missing-header case: a caller probing
	// for tokens learns nothing from the difference.
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "UNAUTHORIZED", errorsBody(t, rr))
	assert.False(t, probe.ran)
}

func TestRequireAuth_StoreFailure(t *testing.T) {
	probe := &protectedProbe{}
	mw := auth.RequireAuth(&fakeResolver{err: errors.New("db gone")}, testLogger())
	srv := mw(probe.handler())

	req := httptest.NewRequest(http.MethodGet, "/api/contacts", nil)
	req.Header.Set(auth.HeaderToken, "anything")
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, probe.ran)
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	user := &model.User{
		Username:     "alice",
		Token:        "tok-expired",
		TokenExpired: time.Now().Add(-time.Millisecond),
	}
	probe := &protectedProbe{}
	mw := auth.RequireAuth(&fakeResolver{users: map[string]*model.User{"tok-expired": user}}, testLogger())
	srv := mw(probe.handler())

	req := httptest.NewRequest(http.MethodGet, "/api/contacts", nil)
	req.Header.Set(auth.HeaderToken, "tok-expired")
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Token Expired", errorsBody(t, rr))
	assert.False(t, probe.ran)
}

func TestRequireAuth_ValidToken(t *testing.T) {
	user := &model.User{
		Username:     "alice",
		Name:         "Alice",
		Token:        "tok-valid",
		TokenExpired: time.Now().Add(time.Hour),
	}
	probe := &protectedProbe{}
	mw := auth.RequireAuth(&fakeResolver{users: map[string]*model.User{"tok-valid": user}}, testLogger())
	srv := mw(probe.handler())

	req := httptest.NewRequest(http.MethodGet, "/api/contacts", nil)
	req.Header.Set(auth.HeaderToken, "tok-valid")
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	require.True(t, probe.ran, "handler should run for a valid token")
	require.NotNil(t, probe.user)
	assert.Equal(t, "alice", probe.user.Username)
}

func TestRequireAuth_TokenValidUntilTheLastMillisecond(t *testing.T) {
	// A token expiring well in the future is accepted; one already at its
	// expiry instant is not. The boundary is exclusive on the expiry side.
	mkUser := func(expiry time.Time) *model.User {
		return &model.User{Username: "alice", Token: "tok", TokenExpired: expiry}
	}

	t.Run("just before expiry", func(t *testing.T) {
		probe := &protectedProbe{}
		mw := auth.RequireAuth(&fakeResolver{users: map[string]*model.User{
			"tok": mkUser(time.Now().Add(50 * time.Millisecond)),
		}}, testLogger())
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(auth.HeaderToken, "tok")
		rr := httptest.NewRecorder()
		mw(probe.handler()).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("at expiry", func(t *testing.T) {
		probe := &protectedProbe{}
		mw := auth.RequireAuth(&fakeResolver{users: map[string]*model.User{
			"tok": mkUser(time.Now()),
		}}, testLogger())
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(auth.HeaderToken, "tok")
		rr := httptest.NewRecorder()
		mw(probe.handler()).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "Token Expired", errorsBody(t, rr))
	})
}

func TestUserFromContext_Empty(t *testing.T) {
	user, ok := auth.UserFromContext(context.Background())
	assert.False(t, ok)
	assert.Nil(t, user)
}

func TestContextWithUser_RoundTrip(t *testing.T) {
	u := &model.User{Username: "bob"}
	ctx := auth.ContextWithUser(context.Background(), u)

	got, ok := auth.UserFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, u, got)
}
