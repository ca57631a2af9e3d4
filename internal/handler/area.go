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

// AreaHandler serves the role-gated dashboard areas and the admin-only
// role management endpoint.
type AreaHandler struct {
	users repository.UserRepository
}

func NewAreaHandler(users repository.UserRepository) *AreaHandler {
	return &AreaHandler{users: users}
}

type SetRoleRequest struct {
	Role model.Role `json:"role" binding:"required"`
}

func (h *AreaHandler) RegisterRoutes(r *gin.RouterGroup, mode auth.FailureMode) {
	admin := r.Group("/admin", auth.RequireRole(model.RoleAdmin, mode))
	{
		admin.GET("/dashboard", h.dashboard("admin"))
		admin.PATCH("/users/:id/role", h.SetRole)
	}

	librarian := r.Group("/librarian", auth.RequireRole(model.RoleLibrarian, mode))
	{
		librarian.GET("/dashboard", h.dashboard("librarian"))
	}

	member := r.Group("/member", auth.RequireRole(model.RoleMember, mode))
	{
		member.GET("/dashboard", h.dashboard("member"))
	}
}

func (h *AreaHandler) dashboard(area string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := auth.PrincipalFrom(c)

		c.JSON(http.StatusOK, gin.H{
			"area":     area,
			"username": p.Username,
			"role":     p.Role,
		})
	}
}

// SetRole godoc
// @Summary      Change a user's role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id       path      string          true  "User ID (UUID)"
// @Param        payload  body      SetRoleRequest  true  "New role"
// @Success      200      {object}  AccountResponse
// @Failure      400      {object}  validation.ErrorResponse  "Unknown role"
// @Failure      403      {object}  validation.ErrorResponse  "Admin role required"
// @Failure      404      {object}  validation.ErrorResponse  "User not found"
// @Router       /admin/users/{id}/role [patch]
func (h *AreaHandler) SetRole(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusBadRequest,
			"INVALID_USER_ID",
			"invalid user id",
		)
		return
	}

	var req SetRoleRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	if !req.Role.Valid() {
		writeError(c, http.StatusBadRequest,
			"INVALID_ROLE",
			"role must be admin, librarian or member",
		)
		return
	}

	ctx := c.Request.Context()

	if err := h.users.SetRole(ctx, userID, req.Role); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, http.StatusNotFound,
				"USER_NOT_FOUND",
				"user not found",
			)
			return
		}

		writeError(c, http.StatusInternalServerError,
			"ROLE_UPDATE_FAILED",
			"failed to update role",
		)
		return
	}

	user, err := h.users.FindByID(ctx, userID)
	if err != nil {
		writeError(c, http.StatusInternalServerError,
			"USER_FETCH_FAILED",
			"failed to fetch user",
		)
		return
	}

	c.JSON(http.StatusOK, AccountResponse{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Profile.Role,
	})
}
