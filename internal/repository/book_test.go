package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shelfwise/catalog-api/internal/model"
	"github.com/shelfwise/catalog-api/internal/testutil"
	"gorm.io/gorm"
)

func seedCatalog(t *testing.T, db *gorm.DB) (model.Author, model.Author) {
	t.Helper()

	orwell := testutil.SeedAuthor(t, db, "Orwell")
	austen := testutil.SeedAuthor(t, db, "Austen")

	testutil.SeedBook(t, db, orwell, "1984", 1949)
	testutil.SeedBook(t, db, orwell, "Animal Farm", 1945)
	testutil.SeedBook(t, db, austen, "Pride and Prejudice", 1813)

	return orwell, austen
}

func TestGormBookRepository_List_NoFilters(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)

	seedCatalog(t, db)

	books, err := repo.List(context.Background(), BookListParams{})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	if len(books) != 3 {
		t.Fatalf("expected 3 books, got %d", len(books))
	}
}

func TestGormBookRepository_List_Search(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)

	seedCatalog(t, db)

	books, err := repo.List(context.Background(), BookListParams{Search: "pride"})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	if len(books) != 1 {
		t.Fatalf("expected 1 book, got %d", len(books))
	}
	if books[0].Title != "Pride and Prejudice" {
		t.Fatalf("expected Pride and Prejudice, got %q", books[0].Title)
	}
}

func TestGormBookRepository_List_SearchMatchesAuthorName(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)

	seedCatalog(t, db)

	books, err := repo.List(context.Background(), BookListParams{Search: "orwell"})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	if len(books) != 2 {
		t.Fatalf("expected 2 books for Orwell, got %d", len(books))
	}
}

func TestGormBookRepository_List_FilterByYear(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)

	seedCatalog(t, db)

	year := 1949
	books, err := repo.List(context.Background(), BookListParams{Year: &year})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	if len(books) != 1 {
		t.Fatalf("expected 1 book, got %d", len(books))
	}
	if books[0].Title != "1984" {
		t.Fatalf("expected 1984, got %q", books[0].Title)
	}
}

func TestGormBookRepository_List_FilterByYearBounds(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)

	seedCatalog(t, db)

	min := 1900
	max := 1946
	books, err := repo.List(context.Background(), BookListParams{YearMin: &min, YearMax: &max})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	if len(books) != 1 {
		t.Fatalf("expected 1 book, got %d", len(books))
	}
	if books[0].Title != "Animal Farm" {
		t.Fatalf("expected Animal Farm, got %q", books[0].Title)
	}
}

func TestGormBookRepository_List_FilterByAuthorNameContains(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)

	seedCatalog(t, db)

	books, err := repo.List(context.Background(), BookListParams{AuthorNameContains: "aus"})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	if len(books) != 1 {
		t.Fatalf("expected 1 book, got %d", len(books))
	}
	if books[0].Author.Name != "Austen" {
		t.Fatalf("expected Austen, got %q", books[0].Author.Name)
	}
}

func TestGormBookRepository_List_FiltersAndSearchCompose(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)

	seedCatalog(t, db)

	// Search matches both Orwell titles; the year filter narrows to one.
	year := 1945
	books, err := repo.List(context.Background(), BookListParams{
		Search: "orwell",
		Year:   &year,
	})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	if len(books) != 1 {
		t.Fatalf("expected 1 book, got %d", len(books))
	}
	if books[0].Title != "Animal Farm" {
		t.Fatalf("expected Animal Farm, got %q", books[0].Title)
	}
}

func TestGormBookRepository_List_OrderByTitle(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)

	seedCatalog(t, db)

	books, err := repo.List(context.Background(), BookListParams{Ordering: "title"})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	want := []string{"1984", "Animal Farm", "Pride and Prejudice"}
	for i, title := range want {
		if books[i].Title != title {
			t.Fatalf("position %d: expected %q, got %q", i, title, books[i].Title)
		}
	}
}

func TestGormBookRepository_List_OrderByYearDescending(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)

	seedCatalog(t, db)

	books, err := repo.List(context.Background(), BookListParams{Ordering: "-publication_year"})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	want := []int{1949, 1945, 1813}
	for i, year := range want {
		if books[i].PublicationYear != year {
			t.Fatalf("position %d: expected %d, got %d", i, year, books[i].PublicationYear)
		}
	}
}

func TestGormBookRepository_List_UnknownOrderingFallsBack(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)

	seedCatalog(t, db)

	books, err := repo.List(context.Background(), BookListParams{Ordering: "nonsense"})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	if len(books) != 3 {
		t.Fatalf("expected 3 books, got %d", len(books))
	}
}

func TestGormBookRepository_List_EmptyResult(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)

	seedCatalog(t, db)

	books, err := repo.List(context.Background(), BookListParams{Search: "no such book"})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	if len(books) != 0 {
		t.Fatalf("expected empty result, got %d books", len(books))
	}
}

func TestGormBookRepository_Create_MissingAuthor(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)

	book := model.Book{
		Title:           "Ghost Book",
		PublicationYear: 2000,
		AuthorID:        uuid.UUID{1},
	}

	err := repo.Create(context.Background(), &book)
	if err == nil {
		t.Fatalf("expected error for missing author")
	}
	if err != ErrAuthorNotFound {
		t.Fatalf("expected ErrAuthorNotFound, got %v", err)
	}
}

func TestGormBookRepository_Update_MissingAuthor(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)

	orwell := testutil.SeedAuthor(t, db, "Orwell")
	book := testutil.SeedBook(t, db, orwell, "1984", 1949)

	book.AuthorID = uuid.UUID{2}
	err := repo.Update(context.Background(), &book)
	if err != ErrAuthorNotFound {
		t.Fatalf("expected ErrAuthorNotFound, got %v", err)
	}

	var stored model.Book
	if err := db.First(&stored, "id = ?", book.ID).Error; err != nil {
		t.Fatalf("failed to reload book: %v", err)
	}
	if stored.AuthorID != orwell.ID {
		t.Fatalf("expected author %s to be kept, got %s", orwell.ID, stored.AuthorID)
	}
}

func TestGormBookRepository_Delete_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)

	err := repo.Delete(context.Background(), uuid.UUID{7})
	if err != gorm.ErrRecordNotFound {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}
