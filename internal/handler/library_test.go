package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shelfwise/catalog-api/internal/model"
	"github.com/shelfwise/catalog-api/internal/testutil"
)

func TestCreateLibrarian_Conflict(t *testing.T) {
	db := testutil.NewTestDB(t)
	router, tokens := setupRouter(db)

	library := testutil.SeedLibrary(t, db, "Central")
	user := testutil.SeedUser(t, db, "root", "password123", model.RoleAdmin)
	token := issueToken(t, tokens, user)

	first := CreateLibrarianRequest{Name: "Ada", LibraryID: library.ID}
	w := doJSON(t, router, http.MethodPost, "/librarians", token, first)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d, body=%s", w.Code, w.Body.String())
	}

	second := CreateLibrarianRequest{Name: "Grace", LibraryID: library.ID}
	w = doJSON(t, router, http.MethodPost, "/librarians", token, second)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestCreateLibrarian_LibraryNotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	router, tokens := setupRouter(db)

	user := testutil.SeedUser(t, db, "root", "password123", model.RoleAdmin)
	token := issueToken(t, tokens, user)

	body := CreateLibrarianRequest{Name: "Ada", LibraryID: uuid.New()}
	w := doJSON(t, router, http.MethodPost, "/librarians", token, body)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestLibrary_AttachAndDetachBook(t *testing.T) {
	db := testutil.NewTestDB(t)
	router, tokens := setupRouter(db)

	library := testutil.SeedLibrary(t, db, "Central")
	author := testutil.SeedAuthor(t, db, "Orwell")
	book := testutil.SeedBook(t, db, author, "1984", 1949)

	user := testutil.SeedUser(t, db, "ada", "password123", model.RoleLibrarian)
	token := issueToken(t, tokens, user)

	attach := AttachBookRequest{BookID: book.ID}
	w := doJSON(t, router, http.MethodPost, "/libraries/"+library.ID.String()+"/books", token, attach)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}

	var resp LibraryResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(resp.Books) != 1 || resp.Books[0].Title != "1984" {
		t.Fatalf("expected library to hold 1984, got %+v", resp.Books)
	}

	w = doJSON(t, router, http.MethodDelete, "/libraries/"+library.ID.String()+"/books/"+book.ID.String(), token, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d, body=%s", w.Code, w.Body.String())
	}

	detail := doJSON(t, router, http.MethodGet, "/libraries/"+library.ID.String(), "", nil)
	if detail.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", detail.Code)
	}

	if err := json.Unmarshal(detail.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(resp.Books) != 0 {
		t.Fatalf("expected empty library, got %d books", len(resp.Books))
	}
}

func TestLibrary_AnonymousDetailAllowed(t *testing.T) {
	db := testutil.NewTestDB(t)
	router, _ := setupRouter(db)

	library := testutil.SeedLibrary(t, db, "Central")

	w := doJSON(t, router, http.MethodGet, "/libraries/"+library.ID.String(), "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}

func TestAuthor_DeleteCascadesOverHTTP(t *testing.T) {
	db := testutil.NewTestDB(t)
	router, tokens := setupRouter(db)

	orwell, _, _ := seedCatalog(t, db)
	user := testutil.SeedUser(t, db, "root", "password123", model.RoleAdmin)
	token := issueToken(t, tokens, user)

	w := doJSON(t, router, http.MethodDelete, "/authors/"+orwell.ID.String(), token, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d, body=%s", w.Code, w.Body.String())
	}

	if got := bookCount(t, db); got != 1 {
		t.Fatalf("expected 1 book left after cascade, got %d", got)
	}
}
