package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shelfwise/catalog-api/internal/auth"
	"github.com/shelfwise/catalog-api/internal/model"
	"github.com/shelfwise/catalog-api/internal/testutil"
)

func TestAreas_RoleGates(t *testing.T) {
	db := testutil.NewTestDB(t)
	router, tokens := setupRouter(db)

	admin := testutil.SeedUser(t, db, "root", "password123", model.RoleAdmin)
	librarian := testutil.SeedUser(t, db, "ada", "password123", model.RoleLibrarian)
	member := testutil.SeedUser(t, db, "bob", "password123", model.RoleMember)

	adminToken := issueToken(t, tokens, admin)
	librarianToken := issueToken(t, tokens, librarian)
	memberToken := issueToken(t, tokens, member)

	tests := []struct {
		name  string
		path  string
		token string
		want  int
	}{
		{"anonymous admin area", "/admin/dashboard", "", http.StatusUnauthorized},
		{"member admin area", "/admin/dashboard", memberToken, http.StatusForbidden},
		{"librarian admin area", "/admin/dashboard", librarianToken, http.StatusForbidden},
		{"admin admin area", "/admin/dashboard", adminToken, http.StatusOK},
		{"member librarian area", "/librarian/dashboard", memberToken, http.StatusForbidden},
		{"librarian librarian area", "/librarian/dashboard", librarianToken, http.StatusOK},
		{"admin librarian area", "/librarian/dashboard", adminToken, http.StatusOK},
		{"anonymous member area", "/member/dashboard", "", http.StatusUnauthorized},
		{"member member area", "/member/dashboard", memberToken, http.StatusOK},
		{"admin member area", "/member/dashboard", adminToken, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodGet, tt.path, tt.token, nil)
			if w.Code != tt.want {
				t.Fatalf("expected status %d, got %d, body=%s", tt.want, w.Code, w.Body.String())
			}
		})
	}
}

func TestAreas_RedirectMode(t *testing.T) {
	db := testutil.NewTestDB(t)
	router, tokens := setupRouterWithMode(db, auth.RedirectTo("/login"))

	member := testutil.SeedUser(t, db, "bob", "password123", model.RoleMember)
	memberToken := issueToken(t, tokens, member)

	w := doJSON(t, router, http.MethodGet, "/admin/dashboard", memberToken, nil)
	if w.Code != http.StatusFound {
		t.Fatalf("expected status 302, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
}

func TestSetRole(t *testing.T) {
	db := testutil.NewTestDB(t)
	router, tokens := setupRouter(db)

	admin := testutil.SeedUser(t, db, "root", "password123", model.RoleAdmin)
	member := testutil.SeedUser(t, db, "bob", "password123", model.RoleMember)

	adminToken := issueToken(t, tokens, admin)

	body := SetRoleRequest{Role: model.RoleLibrarian}

	w := doJSON(t, router, http.MethodPatch, "/admin/users/"+member.ID.String()+"/role", adminToken, body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}

	var resp AccountResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Role != model.RoleLibrarian {
		t.Errorf("expected role librarian, got %q", resp.Role)
	}

	var profile model.UserProfile
	if err := db.First(&profile, "user_id = ?", member.ID).Error; err != nil {
		t.Fatalf("failed to reload profile: %v", err)
	}
	if profile.Role != model.RoleLibrarian {
		t.Errorf("expected stored role librarian, got %q", profile.Role)
	}
}

func TestSetRole_InvalidRole(t *testing.T) {
	db := testutil.NewTestDB(t)
	router, tokens := setupRouter(db)

	admin := testutil.SeedUser(t, db, "root", "password123", model.RoleAdmin)
	member := testutil.SeedUser(t, db, "bob", "password123", model.RoleMember)

	adminToken := issueToken(t, tokens, admin)

	body := SetRoleRequest{Role: model.Role("owner")}

	w := doJSON(t, router, http.MethodPatch, "/admin/users/"+member.ID.String()+"/role", adminToken, body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestSetRole_NonAdminForbidden(t *testing.T) {
	db := testutil.NewTestDB(t)
	router, tokens := setupRouter(db)

	librarian := testutil.SeedUser(t, db, "ada", "password123", model.RoleLibrarian)
	member := testutil.SeedUser(t, db, "bob", "password123", model.RoleMember)

	librarianToken := issueToken(t, tokens, librarian)

	body := SetRoleRequest{Role: model.RoleAdmin}

	w := doJSON(t, router, http.MethodPatch, "/admin/users/"+member.ID.String()+"/role", librarianToken, body)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", w.Code)
	}
}
