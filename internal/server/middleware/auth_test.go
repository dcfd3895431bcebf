package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devlens/devlens/internal/identity"
)

type fakeClaims struct {
	userID uuid.UUID
}

func (c *fakeClaims) GetUserID() uuid.UUID { return c.userID }

type fakeValidator struct {
	userID uuid.UUID
	err    error
}

func (v *fakeValidator) ValidateToken(tokenString string) (UserIDGetter, error) {
	if v.err != nil {
		return nil, v.err
	}
	return &fakeClaims{userID: v.userID}, nil
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	userID := uuid.New()
	validator := &fakeValidator{userID: userID}

	var gotUserID uuid.UUID
	handler := AuthMiddleware(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := GetUserID(r)
		require.NoError(t, err)
		gotUserID = id
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, gotUserID)
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not bearer", header: "Basic abc"},
		{name: "empty token", header: "Bearer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := AuthMiddleware(&fakeValidator{userID: uuid.New()})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler must not be reached")
			}))

			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	validator := &fakeValidator{err: fmt.Errorf("token expired")}
	handler := AuthMiddleware(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestIdentityMiddleware_JWTBranch(t *testing.T) {
	userID := uuid.New()
	validator := &fakeValidator{userID: userID}

	var gotIdentity identity.Identity
	handler := IdentityMiddleware(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := GetIdentity(r)
		require.NoError(t, err)
		gotIdentity = id
	}))

	req := httptest.NewRequest("POST", "/analyses", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, gotIdentity.IsAuthenticated())
	assert.Equal(t, userID.String(), gotIdentity.ID())
}

func TestIdentityMiddleware_AnonymousBranch(t *testing.T) {
	instanceID := uuid.NewString()

	var gotIdentity identity.Identity
	handler := IdentityMiddleware(&fakeValidator{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := GetIdentity(r)
		require.NoError(t, err)
		gotIdentity = id
	}))

	req := httptest.NewRequest("POST", "/analyses", nil)
	req.Header.Set(InstanceIDHeader, instanceID)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, gotIdentity.IsAuthenticated())
	assert.Equal(t, instanceID, gotIdentity.ID())
}

func TestIdentityMiddleware_NoIdentity(t *testing.T) {
	handler := IdentityMiddleware(&fakeValidator{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	}))

	req := httptest.NewRequest("POST", "/analyses", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestIdentityMiddleware_MalformedInstanceID(t *testing.T) {
	handler := IdentityMiddleware(&fakeValidator{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	}))

	req := httptest.NewRequest("POST", "/analyses", nil)
	req.Header.Set(InstanceIDHeader, "not-a-uuid")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIdentityMiddleware_InvalidTokenWins(t *testing.T) {
	// A bad token is rejected even when a valid instance ID is present.
	validator := &fakeValidator{err: fmt.Errorf("bad token")}
	handler := IdentityMiddleware(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	}))

	req := httptest.NewRequest("POST", "/analyses", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	req.Header.Set(InstanceIDHeader, uuid.NewString())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
