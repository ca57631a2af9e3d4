package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shelfwise/catalog-api/internal/auth"
	"github.com/shelfwise/catalog-api/internal/model"
	"github.com/shelfwise/catalog-api/internal/repository"
	"github.com/shelfwise/catalog-api/internal/validation"
	"gorm.io/gorm"
)

type LibraryHandler struct {
	repo repository.LibraryRepository
}

func NewLibraryHandler(repo repository.LibraryRepository) *LibraryHandler {
	return &LibraryHandler{repo: repo}
}

type CreateLibraryRequest struct {
	Name string `json:"name" binding:"required,min=1"`
}

type UpdateLibraryRequest struct {
	Name *string `json:"name" binding:"omitempty,min=1"`
}

type AttachBookRequest struct {
	BookID uuid.UUID `json:"book_id" binding:"required"`
}

type LibraryResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Books []Book    `json:"books,omitempty"`
}

func (h *LibraryHandler) RegisterRoutes(r *gin.RouterGroup, policy auth.Policy, mode auth.FailureMode) {
	libraries := r.Group("/libraries")
	{
		libraries.GET("", auth.Require(policy, auth.ActionView, auth.ResourceLibrary, mode), h.ListLibraries)
		libraries.GET("/:id", auth.Require(policy, auth.ActionView, auth.ResourceLibrary, mode), h.GetLibraryByID)
		libraries.POST("", auth.Require(policy, auth.ActionCreate, auth.ResourceLibrary, mode), h.CreateLibrary)
		libraries.PATCH("/:id", auth.Require(policy, auth.ActionEdit, auth.ResourceLibrary, mode), h.UpdateLibrary)
		libraries.DELETE("/:id", auth.Require(policy, auth.ActionDelete, auth.ResourceLibrary, mode), h.DeleteLibrary)

		libraries.POST("/:id/books", auth.Require(policy, auth.ActionEdit, auth.ResourceLibrary, mode), h.AttachBook)
		libraries.DELETE("/:id/books/:bookID", auth.Require(policy, auth.ActionEdit, auth.ResourceLibrary, mode), h.DetachBook)
	}
}

func toLibraryResponse(l model.Library) LibraryResponse {
	books := make([]Book, 0, len(l.Books))
	for _, b := range l.Books {
		books = append(books, toBook(b))
	}

	return LibraryResponse{
		ID:    l.ID,
		Name:  l.Name,
		Books: books,
	}
}

// CreateLibrary godoc
// @Summary      Create a library
// @Tags         libraries
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateLibraryRequest      true  "Library to create"
// @Success      201      {object}  LibraryResponse
// @Failure      400      {object}  validation.ErrorResponse  "Validation error"
// @Router       /libraries [post]
func (h *LibraryHandler) CreateLibrary(c *gin.Context) {
	var req CreateLibraryRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	library := model.Library{Name: req.Name}

	if err := h.repo.Create(c.Request.Context(), &library); err != nil {
		writeError(c, http.StatusInternalServerError,
			"LIBRARY_CREATE_FAILED",
			"failed to create library",
		)
		return
	}

	c.JSON(http.StatusCreated, toLibraryResponse(library))
}

// ListLibraries godoc
// @Summary      List libraries
// @Tags         libraries
// @Produce      json
// @Success      200  {array}  LibraryResponse
// @Router       /libraries [get]
func (h *LibraryHandler) ListLibraries(c *gin.Context) {
	libraries, err := h.repo.List(c.Request.Context())
	if err != nil {
		writeError(c, http.StatusInternalServerError,
			"LIBRARY_LIST_FAILED",
			"failed to list libraries",
		)
		return
	}

	responses := make([]LibraryResponse, 0, len(libraries))
	for _, l := range libraries {
		responses = append(responses, toLibraryResponse(l))
	}

	c.JSON(http.StatusOK, responses)
}

// GetLibraryByID godoc
// @Summary      Get a library by ID
// @Description  Library detail including the books it holds
// @Tags         libraries
// @Produce      json
// @Param        id   path      string  true  "Library ID (UUID)"
// @Success      200  {object}  LibraryResponse
// @Failure      404  {object}  validation.ErrorResponse  "Library not found"
// @Router       /libraries/{id} [get]
func (h *LibraryHandler) GetLibraryByID(c *gin.Context) {
	libraryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusBadRequest,
			"INVALID_LIBRARY_ID",
			"invalid library id",
		)
		return
	}

	library, err := h.repo.FindByID(c.Request.Context(), libraryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, http.StatusNotFound,
				"LIBRARY_NOT_FOUND",
				"library not found",
			)
			return
		}

		writeError(c, http.StatusInternalServerError,
			"LIBRARY_FETCH_FAILED",
			"failed to fetch library",
		)
		return
	}

	c.JSON(http.StatusOK, toLibraryResponse(*library))
}

// UpdateLibrary godoc
// @Summary      Update a library
// @Tags         libraries
// @Accept       json
// @Produce      json
// @Param        id       path      string                true  "Library ID (UUID)"
// @Param        payload  body      UpdateLibraryRequest  true  "Fields to update"
// @Success      200      {object}  LibraryResponse
// @Failure      404      {object}  validation.ErrorResponse  "Library not found"
// @Router       /libraries/{id} [patch]
func (h *LibraryHandler) UpdateLibrary(c *gin.Context) {
	libraryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusBadRequest,
			"INVALID_LIBRARY_ID",
			"invalid library id",
		)
		return
	}

	var req UpdateLibraryRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	if req.Name == nil {
		writeError(c, http.StatusBadRequest,
			"NO_FIELDS_TO_UPDATE",
			"at least one field must be provided to update",
		)
		return
	}

	ctx := c.Request.Context()

	library, err := h.repo.FindByID(ctx, libraryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, http.StatusNotFound,
				"LIBRARY_NOT_FOUND",
				"library not found",
			)
			return
		}

		writeError(c, http.StatusInternalServerError,
			"LIBRARY_FETCH_FAILED",
			"failed to fetch library",
		)
		return
	}

	library.Name = *req.Name

	if err := h.repo.Update(ctx, library); err != nil {
		writeError(c, http.StatusInternalServerError,
			"LIBRARY_UPDATE_FAILED",
			"failed to update library",
		)
		return
	}

	updated, err := h.repo.FindByID(ctx, library.ID)
	if err != nil {
		writeError(c, http.StatusInternalServerError,
			"LIBRARY_FETCH_FAILED",
			"failed to fetch updated library",
		)
		return
	}

	c.JSON(http.StatusOK, toLibraryResponse(*updated))
}

// DeleteLibrary godoc
// @Summary      Delete a library
// @Tags         libraries
// @Produce      json
// @Param        id   path  string  true  "Library ID (UUID)"
// @Success      204  {string}  string  "No content"
// @Failure      404  {object}  validation.ErrorResponse  "Library not found"
// @Router       /libraries/{id} [delete]
func (h *LibraryHandler) DeleteLibrary(c *gin.Context) {
	libraryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusBadRequest,
			"INVALID_LIBRARY_ID",
			"invalid library id",
		)
		return
	}

	if err := h.repo.Delete(c.Request.Context(), libraryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, http.StatusNotFound,
				"LIBRARY_NOT_FOUND",
				"library not found",
			)
			return
		}

		writeError(c, http.StatusInternalServerError,
			"LIBRARY_DELETE_FAILED",
			"failed to delete library",
		)
		return
	}

	c.Status(http.StatusNoContent)
}

// AttachBook godoc
// @Summary      Add a book to a library
// @Tags         libraries
// @Accept       json
// @Produce      json
// @Param        id       path      string             true  "Library ID (UUID)"
// @Param        payload  body      AttachBookRequest  true  "Book to add"
// @Success      200      {object}  LibraryResponse
// @Failure      404      {object}  validation.ErrorResponse  "Library or book not found"
// @Router       /libraries/{id}/books [post]
func (h *LibraryHandler) AttachBook(c *gin.Context) {
	libraryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusBadRequest,
			"INVALID_LIBRARY_ID",
			"invalid library id",
		)
		return
	}

	var req AttachBookRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()

	if err := h.repo.AddBook(ctx, libraryID, req.BookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, http.StatusNotFound,
				"LIBRARY_OR_BOOK_NOT_FOUND",
				"library or book not found",
			)
			return
		}

		writeError(c, http.StatusInternalServerError,
			"LIBRARY_ATTACH_FAILED",
			"failed to add book to library",
		)
		return
	}

	library, err := h.repo.FindByID(ctx, libraryID)
	if err != nil {
		writeError(c, http.StatusInternalServerError,
			"LIBRARY_FETCH_FAILED",
			"failed to fetch library",
		)
		return
	}

	c.JSON(http.StatusOK, toLibraryResponse(*library))
}

// DetachBook godoc
// @Summary      Remove a book from a library
// @Tags         libraries
// @Produce      json
// @Param        id      path  string  true  "Library ID (UUID)"
// @Param        bookID  path  string  true  "Book ID (UUID)"
// @Success      204  {string}  string  "No content"
// @Failure      404  {object}  validation.ErrorResponse  "Library or book not found"
// @Router       /libraries/{id}/books/{bookID} [delete]
func (h *LibraryHandler) DetachBook(c *gin.Context) {
	libraryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusBadRequest,
			"INVALID_LIBRARY_ID",
			"invalid library id",
		)
		return
	}

	bookID, err := uuid.Parse(c.Param("bookID"))
	if err != nil {
		writeError(c, http.StatusBadRequest,
			"INVALID_BOOK_ID",
			"invalid book id",
		)
		return
	}

	if err := h.repo.RemoveBook(c.Request.Context(), libraryID, bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, http.StatusNotFound,
				"LIBRARY_OR_BOOK_NOT_FOUND",
				"library or book not found",
			)
			return
		}

		writeError(c, http.StatusInternalServerError,
			"LIBRARY_DETACH_FAILED",
			"failed to remove book from library",
		)
		return
	}

	c.Status(http.StatusNoContent)
}
