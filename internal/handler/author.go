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

type AuthorHandler struct {
	repo repository.AuthorRepository
}

func NewAuthorHandler(repo repository.AuthorRepository) *AuthorHandler {
	return &AuthorHandler{repo: repo}
}

type CreateAuthorRequest struct {
	Name string `json:"name" binding:"required,min=1"`
}

type UpdateAuthorRequest struct {
	Name *string `json:"name" binding:"omitempty,min=1"`
}

type AuthorResponse struct {
	ID    uuid.UUID     `json:"id"`
	Name  string        `json:"name"`
	Books []BookSummary `json:"books,omitempty"`
}

func (h *AuthorHandler) RegisterRoutes(r *gin.RouterGroup, policy auth.Policy, mode auth.FailureMode) {
	authors := r.Group("/authors")
	{
		authors.GET("", auth.Require(policy, auth.ActionView, auth.ResourceAuthor, mode), h.ListAuthors)
		authors.GET("/:id", auth.Require(policy, auth.ActionView, auth.ResourceAuthor, mode), h.GetAuthorByID)
		authors.POST("", auth.Require(policy, auth.ActionCreate, auth.ResourceAuthor, mode), h.CreateAuthor)
		authors.PATCH("/:id", auth.Require(policy, auth.ActionEdit, auth.ResourceAuthor, mode), h.UpdateAuthor)
		authors.DELETE("/:id", auth.Require(policy, auth.ActionDelete, auth.ResourceAuthor, mode), h.DeleteAuthor)
	}
}

func toAuthorResponse(a model.Author) AuthorResponse {
	books := make([]BookSummary, 0, len(a.Books))
	for _, b := range a.Books {
		books = append(books, toBookSummary(b))
	}

	return AuthorResponse{
		ID:    a.ID,
		Name:  a.Name,
		Books: books,
	}
}

// CreateAuthor godoc
// @Summary      Create an author
// @Tags         authors
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateAuthorRequest       true  "Author to create"
// @Success      201      {object}  AuthorResponse
// @Failure      400      {object}  validation.ErrorResponse  "Validation error"
// @Router       /authors [post]
func (h *AuthorHandler) CreateAuthor(c *gin.Context) {
	var req CreateAuthorRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	author := model.Author{Name: req.Name}

	if err := h.repo.Create(c.Request.Context(), &author); err != nil {
		writeError(c, http.StatusInternalServerError,
			"AUTHOR_CREATE_FAILED",
			"failed to create author",
		)
		return
	}

	c.JSON(http.StatusCreated, toAuthorResponse(author))
}

// ListAuthors godoc
// @Summary      List authors
// @Tags         authors
// @Produce      json
// @Success      200  {array}   AuthorResponse
// @Router       /authors [get]
func (h *AuthorHandler) ListAuthors(c *gin.Context) {
	authors, err := h.repo.List(c.Request.Context())
	if err != nil {
		writeError(c, http.StatusInternalServerError,
			"AUTHOR_LIST_FAILED",
			"failed to list authors",
		)
		return
	}

	responses := make([]AuthorResponse, 0, len(authors))
	for _, a := range authors {
		responses = append(responses, toAuthorResponse(a))
	}

	c.JSON(http.StatusOK, responses)
}

// GetAuthorByID godoc
// @Summary      Get an author by ID
// @Tags         authors
// @Produce      json
// @Param        id   path      string  true  "Author ID (UUID)"
// @Success      200  {object}  AuthorResponse
// @Failure      404  {object}  validation.ErrorResponse  "Author not found"
// @Router       /authors/{id} [get]
func (h *AuthorHandler) GetAuthorByID(c *gin.Context) {
	authorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusBadRequest,
			"INVALID_AUTHOR_ID",
			"invalid author id",
		)
		return
	}

	author, err := h.repo.FindByID(c.Request.Context(), authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, http.StatusNotFound,
				"AUTHOR_NOT_FOUND",
				"author not found",
			)
			return
		}

		writeError(c, http.StatusInternalServerError,
			"AUTHOR_FETCH_FAILED",
			"failed to fetch author",
		)
		return
	}

	c.JSON(http.StatusOK, toAuthorResponse(*author))
}

// UpdateAuthor godoc
// @Summary      Update an author
// @Tags         authors
// @Accept       json
// @Produce      json
// @Param        id       path      string               true  "Author ID (UUID)"
// @Param        payload  body      UpdateAuthorRequest  true  "Fields to update"
// @Success      200      {object}  AuthorResponse
// @Failure      404      {object}  validation.ErrorResponse  "Author not found"
// @Router       /authors/{id} [patch]
func (h *AuthorHandler) UpdateAuthor(c *gin.Context) {
	authorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusBadRequest,
			"INVALID_AUTHOR_ID",
			"invalid author id",
		)
		return
	}

	var req UpdateAuthorRequest
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

	author, err := h.repo.FindByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, http.StatusNotFound,
				"AUTHOR_NOT_FOUND",
				"author not found",
			)
			return
		}

		writeError(c, http.StatusInternalServerError,
			"AUTHOR_FETCH_FAILED",
			"failed to fetch author",
		)
		return
	}

	author.Name = *req.Name

	if err := h.repo.Update(ctx, author); err != nil {
		writeError(c, http.StatusInternalServerError,
			"AUTHOR_UPDATE_FAILED",
			"failed to update author",
		)
		return
	}

	updated, err := h.repo.FindByID(ctx, author.ID)
	if err != nil {
		writeError(c, http.StatusInternalServerError,
			"AUTHOR_FETCH_FAILED",
			"failed to fetch updated author",
		)
		return
	}

	c.JSON(http.StatusOK, toAuthorResponse(*updated))
}

// DeleteAuthor godoc
// @Summary      Delete an author
// @Description  Delete an author and every book referencing it
// @Tags         authors
// @Produce      json
// @Param        id   path  string  true  "Author ID (UUID)"
// @Success      204  {string}  string  "No content"
// @Failure      404  {object}  validation.ErrorResponse  "Author not found"
// @Router       /authors/{id} [delete]
func (h *AuthorHandler) DeleteAuthor(c *gin.Context) {
	authorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusBadRequest,
			"INVALID_AUTHOR_ID",
			"invalid author id",
		)
		return
	}

	if err := h.repo.Delete(c.Request.Context(), authorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, http.StatusNotFound,
				"AUTHOR_NOT_FOUND",
				"author not found",
			)
			return
		}

		writeError(c, http.StatusInternalServerError,
			"AUTHOR_DELETE_FAILED",
			"failed to delete author",
		)
		return
	}

	c.Status(http.StatusNoContent)
}
