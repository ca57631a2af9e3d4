package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shelfwise/catalog-api/internal/model"
	"github.com/shelfwise/catalog-api/internal/testutil"
)

func TestRegister_CreatesProfileWithMemberRole(t *testing.T) {
	db := testutil.NewTestDB(t)
	router, _ := setupRouter(db)

	body := RegisterRequest{Username: "newuser", Password: "password123"}

	w := doJSON(t, router, http.MethodPost, "/auth/register", "", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d, body=%s", w.Code, w.Body.String())
	}

	var resp AccountResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if resp.Role != model.RoleMember {
		t.Errorf("expected default role member, got %q", resp.Role)
	}

	var profile model.UserProfile
	if err := db.First(&profile, "user_id = ?", resp.ID).Error; err != nil {
		t.Fatalf("expected profile in db, got error: %v", err)
	}
	if profile.Role != model.RoleMember {
		t.Errorf("expected stored role member, got %q", profile.Role)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	db := testutil.NewTestDB(t)
	router, _ := setupRouter(db)

	testutil.SeedUser(t, db, "taken", "password123", model.RoleMember)

	body := RegisterRequest{Username: "taken", Password: "password123"}

	w := doJSON(t, router, http.MethodPost, "/auth/register", "", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestRegister_ShortPassword(t *testing.T) {
	db := testutil.NewTestDB(t)
	router, _ := setupRouter(db)

	body := RegisterRequest{Username: "newuser", Password: "short"}

	w := doJSON(t, router, http.MethodPost, "/auth/register", "", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestLogin_TokenWorks(t *testing.T) {
	db := testutil.NewTestDB(t)
	router, _ := setupRouter(db)

	testutil.SeedUser(t, db, "ada", "password123", model.RoleLibrarian)

	w := doJSON(t, router, http.MethodPost, "/auth/login", "", LoginRequest{
		Username: "ada",
		Password: "password123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}

	var resp LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Token == "" {
		t.Fatalf("expected a token")
	}
	if resp.User.Role != model.RoleLibrarian {
		t.Errorf("expected role librarian, got %q", resp.User.Role)
	}

	// The issued token must authenticate a follow-up request.
	me := doJSON(t, router, http.MethodGet, "/auth/me", resp.Token, nil)
	if me.Code != http.StatusOK {
		t.Fatalf("expected status 200 from /auth/me, got %d, body=%s", me.Code, me.Body.String())
	}

	var meResp AccountResponse
	if err := json.Unmarshal(me.Body.Bytes(), &meResp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if meResp.Username != "ada" {
		t.Errorf("expected username ada, got %q", meResp.Username)
	}
}

func TestLogin_BadPassword(t *testing.T) {
	db := testutil.NewTestDB(t)
	router, _ := setupRouter(db)

	testutil.SeedUser(t, db, "ada", "password123", model.RoleMember)

	w := doJSON(t, router, http.MethodPost, "/auth/login", "", LoginRequest{
		Username: "ada",
		Password: "wrong-password",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", w.Code)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	router, _ := setupRouter(db)

	w := doJSON(t, router, http.MethodPost, "/auth/login", "", LoginRequest{
		Username: "ghost",
		Password: "password123",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", w.Code)
	}
}

func TestMe_Unauthenticated(t *testing.T) {
	db := testutil.NewTestDB(t)
	router, _ := setupRouter(db)

	w := doJSON(t, router, http.MethodGet, "/auth/me", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", w.Code)
	}
}
