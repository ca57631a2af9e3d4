package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shelfwise/catalog-api/internal/model"
	"gorm.io/gorm"
)

// ErrLibraryStaffed reports a librarian assignment to a library that
// already has one.
var ErrLibraryStaffed = errors.New("library already has a librarian")

type LibraryRepository interface {
	Create(ctx context.Context, library *model.Library) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Library, error)
	List(ctx context.Context) ([]model.Library, error)
	Update(ctx context.Context, library *model.Library) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddBook(ctx context.Context, libraryID, bookID uuid.UUID) error
	RemoveBook(ctx context.Context, libraryID, bookID uuid.UUID) error
}

type GormLibraryRepository struct {
	db *gorm.DB
}

func NewGormLibraryRepository(db *gorm.DB) *GormLibraryRepository {
	return &GormLibraryRepository{db: db}
}

func (r *GormLibraryRepository) Create(ctx context.Context, library *model.Library) error {
	return r.db.WithContext(ctx).Create(library).Error
}

func (r *GormLibraryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Library, error) {
	var library model.Library
	if err := r.db.WithContext(ctx).
		Preload("Books").
		Preload("Books.Author").
		First(&library, "id = ?", id).Error; err != nil {

		return nil, err
	}
	return &library, nil
}

func (r *GormLibraryRepository) List(ctx context.Context) ([]model.Library, error) {
	var libraries []model.Library
	if err := r.db.WithContext(ctx).
		Preload("Books").
		Order("created_at ASC").
		Find(&libraries).Error; err != nil {

		return nil, err
	}
	return libraries, nil
}

func (r *GormLibraryRepository) Update(ctx context.Context, library *model.Library) error {
	return r.db.WithContext(ctx).
		Model(&model.Library{}).
		Where("id = ?", library.ID).
		Update("name", library.Name).Error
}

func (r *GormLibraryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Library{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormLibraryRepository) AddBook(ctx context.Context, libraryID, bookID uuid.UUID) error {
	tx := r.db.WithContext(ctx)

	var library model.Library
	if err := tx.First(&library, "id = ?", libraryID).Error; err != nil {
		return err
	}

	var book model.Book
	if err := tx.First(&book, "id = ?", bookID).Error; err != nil {
		return err
	}

	return tx.Model(&library).Association("Books").Append(&book)
}

func (r *GormLibraryRepository) RemoveBook(ctx context.Context, libraryID, bookID uuid.UUID) error {
	tx := r.db.WithContext(ctx)

	var library model.Library
	if err := tx.First(&library, "id = ?", libraryID).Error; err != nil {
		return err
	}

	var book model.Book
	if err := tx.First(&book, "id = ?", bookID).Error; err != nil {
		return err
	}

	return tx.Model(&library).Association("Books").Delete(&book)
}

type LibrarianRepository interface {
	Create(ctx context.Context, librarian *model.Librarian) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Librarian, error)
	List(ctx context.Context) ([]model.Librarian, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type GormLibrarianRepository struct {
	db *gorm.DB
}

func NewGormLibrarianRepository(db *gorm.DB) *GormLibrarianRepository {
	return &GormLibrarianRepository{db: db}
}

func (r *GormLibrarianRepository) Create(ctx context.Context, librarian *model.Librarian) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var library model.Library
		if err := tx.First(&library, "id = ?", librarian.LibraryID).Error; err != nil {
			return err
		}

		var existing model.Librarian
		err := tx.First(&existing, "library_id = ?", librarian.LibraryID).Error
		if err == nil {
			return ErrLibraryStaffed
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		return tx.Create(librarian).Error
	})
}

func (r *GormLibrarianRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Librarian, error) {
	var librarian model.Librarian
	if err := r.db.WithContext(ctx).
		Preload("Library").
		First(&librarian, "id = ?", id).Error; err != nil {

		return nil, err
	}
	return &librarian, nil
}

func (r *GormLibrarianRepository) List(ctx context.Context) ([]model.Librarian, error) {
	var librarians []model.Librarian
	if err := r.db.WithContext(ctx).
		Preload("Library").
		Order("created_at ASC").
		Find(&librarians).Error; err != nil {

		return nil, err
	}
	return librarians, nil
}

func (r *GormLibrarianRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Librarian{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
