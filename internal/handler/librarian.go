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

type LibrarianHandler struct {
	repo repository.LibrarianRepository
}

func NewLibrarianHandler(repo repository.LibrarianRepository) *LibrarianHandler {
	return &LibrarianHandler{repo: repo}
}

type CreateLibrarianRequest struct {
	Name      string    `json:"name" binding:"required,min=1"`
	LibraryID uuid.UUID `json:"library_id" binding:"required"`
}

type LibrarianResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	LibraryID uuid.UUID `json:"library_id"`
	Library   string    `json:"library"`
}

func (h *LibrarianHandler) RegisterRoutes(r *gin.RouterGroup, policy auth.Policy, mode auth.FailureMode) {
	librarians := r.Group("/librarians")
	{
		librarians.GET("", auth.Require(policy, auth.ActionView, auth.ResourceLibrarian, mode), h.ListLibrarians)
		librarians.GET("/:id", auth.Require(policy, auth.ActionView, auth.ResourceLibrarian, mode), h.GetLibrarianByID)
		librarians.POST("", auth.Require(policy, auth.ActionCreate, auth.ResourceLibrarian, mode), h.CreateLibrarian)
		librarians.DELETE("/:id", auth.Require(policy, auth.ActionDelete, auth.ResourceLibrarian, mode), h.DeleteLibrarian)
	}
}

func toLibrarianResponse(l model.Librarian) LibrarianResponse {
	return LibrarianResponse{
		ID:        l.ID,
		Name:      l.Name,
		LibraryID: l.LibraryID,
		Library:   l.Library.Name,
	}
}

// CreateLibrarian godoc
// @Summary      Assign a librarian to a library
// @Tags         librarians
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateLibrarianRequest    true  "Librarian to create"
// @Success      201      {object}  LibrarianResponse
// @Failure      400      {object}  validation.ErrorResponse  "Validation error or library already staffed"
// @Failure      404      {object}  validation.ErrorResponse  "Library not found"
// @Router       /librarians [post]
func (h *LibrarianHandler) CreateLibrarian(c *gin.Context) {
	var req CreateLibrarianRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	librarian := model.Librarian{
		Name:      req.Name,
		LibraryID: req.LibraryID,
	}

	ctx := c.Request.Context()

	if err := h.repo.Create(ctx, &librarian); err != nil {
		if errors.Is(err, repository.ErrLibraryStaffed) {
			writeError(c, http.StatusBadRequest,
				"LIBRARY_ALREADY_STAFFED",
				"library already has a librarian",
			)
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, http.StatusNotFound,
				"LIBRARY_NOT_FOUND",
				"library not found",
			)
			return
		}

		writeError(c, http.StatusInternalServerError,
			"LIBRARIAN_CREATE_FAILED",
			"failed to create librarian",
		)
		return
	}

	created, err := h.repo.FindByID(ctx, librarian.ID)
	if err != nil {
		writeError(c, http.StatusInternalServerError,
			"LIBRARIAN_FETCH_FAILED",
			"failed to fetch created librarian",
		)
		return
	}

	c.JSON(http.StatusCreated, toLibrarianResponse(*created))
}

// ListLibrarians godoc
// @Summary      List librarians
// @Tags         librarians
// @Produce      json
// @Success      200  {array}  LibrarianResponse
// @Router       /librarians [get]
func (h *LibrarianHandler) ListLibrarians(c *gin.Context) {
	librarians, err := h.repo.List(c.Request.Context())
	if err != nil {
		writeError(c, http.StatusInternalServerError,
			"LIBRARIAN_LIST_FAILED",
			"failed to list librarians",
		)
		return
	}

	responses := make([]LibrarianResponse, 0, len(librarians))
	for _, l := range librarians {
		responses = append(responses, toLibrarianResponse(l))
	}

	c.JSON(http.StatusOK, responses)
}

// GetLibrarianByID godoc
// @Summary      Get a librarian by ID
// @Tags         librarians
// @Produce      json
// @Param        id   path      string  true  "Librarian ID (UUID)"
// @Success      200  {object}  LibrarianResponse
// @Failure      404  {object}  validation.ErrorResponse  "Librarian not found"
// @Router       /librarians/{id} [get]
func (h *LibrarianHandler) GetLibrarianByID(c *gin.Context) {
	librarianID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusBadRequest,
			"INVALID_LIBRARIAN_ID",
			"invalid librarian id",
		)
		return
	}

	librarian, err := h.repo.FindByID(c.Request.Context(), librarianID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, http.StatusNotFound,
				"LIBRARIAN_NOT_FOUND",
				"librarian not found",
			)
			return
		}

		writeError(c, http.StatusInternalServerError,
			"LIBRARIAN_FETCH_FAILED",
			"failed to fetch librarian",
		)
		return
	}

	c.JSON(http.StatusOK, toLibrarianResponse(*librarian))
}

// DeleteLibrarian godoc
// @Summary      Delete a librarian
// @Tags         librarians
// @Produce      json
// @Param        id   path  string  true  "Librarian ID (UUID)"
// @Success      204  {string}  string  "No content"
// @Failure      404  {object}  validation.ErrorResponse  "Librarian not found"
// @Router       /librarians/{id} [delete]
func (h *LibrarianHandler) DeleteLibrarian(c *gin.Context) {
	librarianID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusBadRequest,
			"INVALID_LIBRARIAN_ID",
			"invalid librarian id",
		)
		return
	}

	if err := h.repo.Delete(c.Request.Context(), librarianID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, http.StatusNotFound,
				"LIBRARIAN_NOT_FOUND",
				"librarian not found",
			)
			return
		}

		writeError(c, http.StatusInternalServerError,
			"LIBRARIAN_DELETE_FAILED",
			"failed to delete librarian",
		)
		return
	}

	c.Status(http.StatusNoContent)
}
