package testutil

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shelfwise/catalog-api/internal/auth"
	"github.com/shelfwise/catalog-api/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewTestDB opens an in-memory sqlite database with a unique DSN per
// test and migrates every model.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:testdb_" + uuid.New().String() + "?mode=memory&cache=shared"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(
		&model.Author{},
		&model.Book{},
		&model.Library{},
		&model.Librarian{},
		&model.User{},
		&model.UserProfile{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB from gorm: %v", err)
	}

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}

func SeedAuthor(t *testing.T, db *gorm.DB, name string) model.Author {
	t.Helper()

	author := model.Author{Name: name}
	if err := db.Create(&author).Error; err != nil {
		t.Fatalf("failed to seed author %q: %v", name, err)
	}
	return author
}

func SeedBook(t *testing.T, db *gorm.DB, author model.Author, title string, year int) model.Book {
	t.Helper()

	book := model.Book{
		Title:           title,
		PublicationYear: year,
		AuthorID:        author.ID,
	}
	if err := db.Create(&book).Error; err != nil {
		t.Fatalf("failed to seed book %q: %v", title, err)
	}
	return book
}

func SeedLibrary(t *testing.T, db *gorm.DB, name string) model.Library {
	t.Helper()

	library := model.Library{Name: name}
	if err := db.Create(&library).Error; err != nil {
		t.Fatalf("failed to seed library %q: %v", name, err)
	}
	return library
}

// SeedUser creates a user with the given role and a bcrypt hash of
// password.
func SeedUser(t *testing.T, db *gorm.DB, username, password string, role model.Role) model.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := model.User{
		Username:     username,
		PasswordHash: hash,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user %q: %v", username, err)
	}

	profile := model.UserProfile{
		UserID: user.ID,
		Role:   role,
	}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("failed to seed profile for %q: %v", username, err)
	}

	user.Profile = profile
	return user
}
