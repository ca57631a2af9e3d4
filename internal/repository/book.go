package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shelfwise/catalog-api/internal/model"
	"gorm.io/gorm"
)

// ErrAuthorNotFound reports a book write that references a missing author.
var ErrAuthorNotFound = errors.New("author not found")

// BookListParams describes the filter/search/ordering surface of the
// book listing. Zero values mean "not set"; unknown ordering keys fall
// back to insertion order.
type BookListParams struct {
	Title              string
	TitleContains      string
	AuthorName         string
	AuthorNameContains string
	Year               *int
	YearMin            *int
	YearMax            *int
	Search             string
	Ordering           string
}

type BookRepository interface {
	Create(ctx context.Context, book *model.Book) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Book, error)
	List(ctx context.Context, params BookListParams) ([]model.Book, error)
	Update(ctx context.Context, book *model.Book) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type GormBookRepository struct {
	db *gorm.DB
}

func NewGormBookRepository(db *gorm.DB) *GormBookRepository {
	return &GormBookRepository{db: db}
}

func (r *GormBookRepository) Create(ctx context.Context, book *model.Book) error {
	tx := r.db.WithContext(ctx)

	var author model.Author
	if err := tx.First(&author, "id = ?", book.AuthorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAuthorNotFound
		}
		return err
	}

	return tx.Create(book).Error
}

func (r *GormBookRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	var book model.Book
	if err := r.db.WithContext(ctx).
		Preload("Author").
		First(&book, "id = ?", id).Error; err != nil {

		return nil, err
	}
	return &book, nil
}

func (r *GormBookRepository) List(ctx context.Context, params BookListParams) ([]model.Book, error) {
	q := r.db.WithContext(ctx).
		Model(&model.Book{}).
		Select("books.*").
		Joins("JOIN authors ON authors.id = books.author_id").
		Preload("Author")

	if params.Title != "" {
		q = q.Where("books.title = ?", params.Title)
	}
	if params.TitleContains != "" {
		q = q.Where("LOWER(books.title) LIKE ?", contains(params.TitleContains))
	}
	if params.AuthorName != "" {
		q = q.Where("authors.name = ?", params.AuthorName)
	}
	if params.AuthorNameContains != "" {
		q = q.Where("LOWER(authors.name) LIKE ?", contains(params.AuthorNameContains))
	}
	if params.Year != nil {
		q = q.Where("books.publication_year = ?", *params.Year)
	}
	if params.YearMin != nil {
		q = q.Where("books.publication_year >= ?", *params.YearMin)
	}
	if params.YearMax != nil {
		q = q.Where("books.publication_year <= ?", *params.YearMax)
	}
	if params.Search != "" {
		term := contains(params.Search)
		q = q.Where("(LOWER(books.title) LIKE ? OR LOWER(authors.name) LIKE ?)", term, term)
	}

	q = q.Order(orderClause(params.Ordering))

	var books []model.Book
	if err := q.Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

func (r *GormBookRepository) Update(ctx context.Context, book *model.Book) error {
	tx := r.db.WithContext(ctx)

	var author model.Author
	if err := tx.First(&author, "id = ?", book.AuthorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAuthorNotFound
		}
		return err
	}

	return tx.
		Model(&model.Book{}).
		Where("id = ?", book.ID).
		Updates(map[string]any{
			"title":            book.Title,
			"publication_year": book.PublicationYear,
			"author_id":        book.AuthorID,
		}).Error
}

func (r *GormBookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Book{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func contains(term string) string {
	return "%" + strings.ToLower(term) + "%"
}

// orderClause maps the public ordering keys onto SQL. Anything it does
// not recognize keeps insertion order.
func orderClause(ordering string) string {
	desc := false
	if strings.HasPrefix(ordering, "-") {
		desc = true
		ordering = ordering[1:]
	}

	var col string
	switch ordering {
	case "title":
		col = "books.title"
	case "publication_year":
		col = "books.publication_year"
	default:
		return "books.created_at ASC"
	}

	if desc {
		return col + " DESC"
	}
	return col + " ASC"
}
