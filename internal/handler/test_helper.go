package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shelfwise/catalog-api/internal/auth"
	"github.com/shelfwise/catalog-api/internal/model"
	"github.com/shelfwise/catalog-api/internal/repository"
	"gorm.io/gorm"
)

var testSecret = []byte("test-secret")

func newTestTokens() *auth.Tokens {
	return auth.NewTokens(testSecret, time.Hour)
}

func setupRouter(db *gorm.DB) (*gin.Engine, *auth.Tokens) {
	return setupRouterWith(db, auth.Forbid(), RoutePathID)
}

func setupLegacyRouter(db *gorm.DB) (*gin.Engine, *auth.Tokens) {
	return setupRouterWith(db, auth.Forbid(), RouteBodyID)
}

func setupRouterWithMode(db *gorm.DB, mode auth.FailureMode) (*gin.Engine, *auth.Tokens) {
	return setupRouterWith(db, mode, RoutePathID)
}

func setupRouterWith(db *gorm.DB, mode auth.FailureMode, style RouteStyle) (*gin.Engine, *auth.Tokens) {
	gin.SetMode(gin.TestMode)
	r := gin.Default()

	tokens := newTestTokens()
	policy := auth.RolePolicy()

	userRepo := repository.NewGormUserRepository(db)

	api := r.Group("")
	api.Use(auth.Authenticate(tokens))

	NewAccountHandler(userRepo, tokens).RegisterRoutes(api)
	NewBookHandler(repository.NewGormBookRepository(db)).RegisterRoutes(api, policy, mode, style)
	NewAuthorHandler(repository.NewGormAuthorRepository(db)).RegisterRoutes(api, policy, mode)
	NewLibraryHandler(repository.NewGormLibraryRepository(db)).RegisterRoutes(api, policy, mode)
	NewLibrarianHandler(repository.NewGormLibrarianRepository(db)).RegisterRoutes(api, policy, mode)
	NewAreaHandler(userRepo).RegisterRoutes(api, mode)

	return r, tokens
}

func issueToken(t *testing.T, tokens *auth.Tokens, user model.User) string {
	t.Helper()

	token, err := tokens.Issue(user.ID, user.Username, user.Profile.Role)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return token
}

// doJSON performs a request with an optional bearer token and JSON body.
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
