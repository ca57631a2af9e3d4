package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shelfwise/catalog-api/internal/auth"
	"github.com/shelfwise/catalog-api/internal/model"
	"github.com/shelfwise/catalog-api/internal/repository"
	"github.com/shelfwise/catalog-api/internal/validation"
	"gorm.io/gorm"
)

type BookHandler struct {
	repo repository.BookRepository
}

func NewBookHandler(repo repository.BookRepository) *BookHandler {
	return &BookHandler{repo: repo}
}

// RouteStyle selects where write operations take the book id from: the
// URL path (RESTful) or the request body (legacy route tables without
// an id segment). It is declared per route group, not inferred inside
// the handlers.
type RouteStyle int

const (
	RoutePathID RouteStyle = iota
	RouteBodyID
)

func (h *BookHandler) RegisterRoutes(r *gin.RouterGroup, policy auth.Policy, mode auth.FailureMode, style RouteStyle) {
	books := r.Group("/books")
	{
		books.GET("", auth.Require(policy, auth.ActionView, auth.ResourceBook, mode), h.ListBooks)
		books.GET("/:id", auth.Require(policy, auth.ActionView, auth.ResourceBook, mode), h.GetBookByID)

		switch style {
		case RouteBodyID:
			books.POST("/create", auth.Require(policy, auth.ActionCreate, auth.ResourceBook, mode), h.CreateBook)
			books.PUT("/update", auth.Require(policy, auth.ActionEdit, auth.ResourceBook, mode), h.UpdateBookByBody)
			books.DELETE("/delete", auth.Require(policy, auth.ActionDelete, auth.ResourceBook, mode), h.DeleteBookByBody)
		default:
			books.POST("", auth.Require(policy, auth.ActionCreate, auth.ResourceBook, mode), h.CreateBook)
			books.PATCH("/:id", auth.Require(policy, auth.ActionEdit, auth.ResourceBook, mode), h.UpdateBook)
			books.DELETE("/:id", auth.Require(policy, auth.ActionDelete, auth.ResourceBook, mode), h.DeleteBook)
		}
	}
}

// ListBooks godoc
// @Summary      List books
// @Description  List books with optional filters, search and ordering
// @Tags         books
// @Produce      json
// @Param        title                 query  string  false  "Exact title match"
// @Param        title_contains        query  string  false  "Substring title match"
// @Param        author_name           query  string  false  "Exact author name match"
// @Param        author_name_contains  query  string  false  "Substring author name match"
// @Param        publication_year      query  int     false  "Exact year match"
// @Param        publication_year_gte  query  int     false  "Year lower bound"
// @Param        publication_year_lte  query  int     false  "Year upper bound"
// @Param        search                query  string  false  "Case-insensitive search over title and author name"
// @Param        ordering              query  string  false  "title or publication_year, - prefix for descending"
// @Success      200  {object}  ListBooksResponse
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	params := repository.BookListParams{
		Title:              c.Query("title"),
		TitleContains:      c.Query("title_contains"),
		AuthorName:         c.Query("author_name"),
		AuthorNameContains: c.Query("author_name_contains"),
		Year:               parseIntFilter(c, "publication_year"),
		YearMin:            parseIntFilter(c, "publication_year_gte"),
		YearMax:            parseIntFilter(c, "publication_year_lte"),
		Search:             c.Query("search"),
		Ordering:           c.Query("ordering"),
	}

	books, err := h.repo.List(c.Request.Context(), params)
	if err != nil {
		writeError(c, http.StatusInternalServerError,
			"BOOK_LIST_FAILED",
			"failed to fetch books",
		)
		return
	}

	responses := make([]Book, 0, len(books))
	for _, b := range books {
		responses = append(responses, toBook(b))
	}

	c.JSON(http.StatusOK, ListBooksResponse{Data: responses})
}

// GetBookByID godoc
// @Summary      Get a book by ID
// @Tags         books
// @Produce      json
// @Param        id   path      string  true  "Book ID (UUID)"
// @Success      200  {object}  BookResponse
// @Failure      400  {object}  validation.ErrorResponse  "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse  "Book not found"
// @Router       /books/{id} [get]
func (h *BookHandler) GetBookByID(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusBadRequest,
			"INVALID_BOOK_ID",
			"invalid book id",
		)
		return
	}

	book, err := h.repo.FindByID(c.Request.Context(), bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, http.StatusNotFound,
				"BOOK_NOT_FOUND",
				"book not found",
			)
			return
		}

		writeError(c, http.StatusInternalServerError,
			"BOOK_FETCH_FAILED",
			"failed to fetch book",
		)
		return
	}

	c.JSON(http.StatusOK, toBookResponse(*book))
}

// CreateBook godoc
// @Summary      Create a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateBookRequest         true  "Book to create"
// @Success      201      {object}  BookResponse
// @Failure      400      {object}  validation.ErrorResponse  "Validation error"
// @Failure      401      {object}  validation.ErrorResponse  "Authentication required"
// @Router       /books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req CreateBookRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}
	if !validation.CheckPublicationYear(c, req.PublicationYear) {
		return
	}

	book := model.Book{
		Title:           req.Title,
		PublicationYear: req.PublicationYear,
		AuthorID:        req.AuthorID,
	}

	ctx := c.Request.Context()

	if err := h.repo.Create(ctx, &book); err != nil {
		if errors.Is(err, repository.ErrAuthorNotFound) {
			writeError(c, http.StatusBadRequest,
				"AUTHOR_NOT_FOUND",
				"author does not exist",
			)
			return
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			writeError(c, http.StatusBadRequest,
				"AUTHOR_NOT_FOUND",
				"author does not exist",
			)
			return
		}

		writeError(c, http.StatusInternalServerError,
			"BOOK_CREATE_FAILED",
			"failed to create book",
		)
		return
	}

	created, err := h.repo.FindByID(ctx, book.ID)
	if err != nil {
		writeError(c, http.StatusInternalServerError,
			"BOOK_FETCH_FAILED",
			"failed to fetch created book",
		)
		return
	}

	c.JSON(http.StatusCreated, toBookResponse(*created))
}

// UpdateBook godoc
// @Summary      Update a book
// @Description  Partially update a book addressed by its path id
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        id       path      string             true  "Book ID (UUID)"
// @Param        payload  body      UpdateBookRequest  true  "Fields to update"
// @Success      200      {object}  BookResponse
// @Failure      400      {object}  validation.ErrorResponse  "Invalid ID or payload"
// @Failure      404      {object}  validation.ErrorResponse  "Book not found"
// @Router       /books/{id} [patch]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusBadRequest,
			"INVALID_BOOK_ID",
			"invalid book id",
		)
		return
	}

	var req UpdateBookRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	h.applyUpdate(c, bookID, req.Title, req.PublicationYear, req.AuthorID)
}

// UpdateBookByBody godoc
// @Summary      Update a book (id in body)
// @Description  Legacy variant: the book id travels in the payload
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        payload  body      UpdateBookByBodyRequest  true  "Id and fields to update"
// @Success      200      {object}  BookResponse
// @Failure      400      {object}  validation.ErrorResponse  "Invalid payload"
// @Failure      404      {object}  validation.ErrorResponse  "Book not found"
// @Router       /books/update [put]
func (h *BookHandler) UpdateBookByBody(c *gin.Context) {
	var req UpdateBookByBodyRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	h.applyUpdate(c, req.ID, req.Title, req.PublicationYear, req.AuthorID)
}

func (h *BookHandler) applyUpdate(c *gin.Context, bookID uuid.UUID, title *string, year *int, authorID *uuid.UUID) {
	if title == nil && year == nil && authorID == nil {
		writeError(c, http.StatusBadRequest,
			"NO_FIELDS_TO_UPDATE",
			"at least one field must be provided to update",
		)
		return
	}

	if year != nil && !validation.CheckPublicationYear(c, *year) {
		return
	}

	ctx := c.Request.Context()

	book, err := h.repo.FindByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, http.StatusNotFound,
				"BOOK_NOT_FOUND",
				"book not found",
			)
			return
		}

		writeError(c, http.StatusInternalServerError,
			"BOOK_FETCH_FAILED",
			"failed to fetch book",
		)
		return
	}

	if title != nil {
		book.Title = *title
	}
	if year != nil {
		book.PublicationYear = *year
	}
	if authorID != nil {
		book.AuthorID = *authorID
	}

	if err := h.repo.Update(ctx, book); err != nil {
		if errors.Is(err, repository.ErrAuthorNotFound) {
			writeError(c, http.StatusBadRequest,
				"AUTHOR_NOT_FOUND",
				"author does not exist",
			)
			return
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			writeError(c, http.StatusBadRequest,
				"AUTHOR_NOT_FOUND",
				"author does not exist",
			)
			return
		}

		writeError(c, http.StatusInternalServerError,
			"BOOK_UPDATE_FAILED",
			"failed to update book",
		)
		return
	}

	updated, err := h.repo.FindByID(ctx, book.ID)
	if err != nil {
		writeError(c, http.StatusInternalServerError,
			"BOOK_FETCH_FAILED",
			"failed to fetch updated book",
		)
		return
	}

	c.JSON(http.StatusOK, toBookResponse(*updated))
}

// DeleteBook godoc
// @Summary      Delete a book
// @Tags         books
// @Produce      json
// @Param        id   path  string  true  "Book ID (UUID)"
// @Success      204  {string}  string  "No content"
// @Failure      400  {object}  validation.ErrorResponse  "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse  "Book not found"
// @Router       /books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusBadRequest,
			"INVALID_BOOK_ID",
			"invalid book id",
		)
		return
	}

	h.applyDelete(c, bookID)
}

// DeleteBookByBody godoc
// @Summary      Delete a book (id in body)
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        payload  body  DeleteBookByBodyRequest  true  "Id to delete"
// @Success      204  {string}  string  "No content"
// @Failure      400  {object}  validation.ErrorResponse  "Invalid payload"
// @Failure      404  {object}  validation.ErrorResponse  "Book not found"
// @Router       /books/delete [delete]
func (h *BookHandler) DeleteBookByBody(c *gin.Context) {
	var req DeleteBookByBodyRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	h.applyDelete(c, req.ID)
}

func (h *BookHandler) applyDelete(c *gin.Context, bookID uuid.UUID) {
	if err := h.repo.Delete(c.Request.Context(), bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, http.StatusNotFound,
				"BOOK_NOT_FOUND",
				"book not found",
			)
			return
		}

		writeError(c, http.StatusInternalServerError,
			"BOOK_DELETE_FAILED",
			"failed to delete book",
		)
		return
	}

	c.Status(http.StatusNoContent)
}
