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
)

type AccountHandler struct {
	users  repository.UserRepository
	tokens *auth.Tokens
}

func NewAccountHandler(users repository.UserRepository, tokens *auth.Tokens) *AccountHandler {
	return &AccountHandler{users: users, tokens: tokens}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AccountResponse struct {
	ID       uuid.UUID  `json:"id"`
	Username string     `json:"username"`
	Role     model.Role `json:"role"`
}

type LoginResponse struct {
	Token string          `json:"token"`
	User  AccountResponse `json:"user"`
}

func (h *AccountHandler) RegisterRoutes(r *gin.RouterGroup) {
	account := r.Group("/auth")
	{
		account.POST("/register", h.Register)
		account.POST("/login", h.Login)
		account.GET("/me", h.Me)
	}
}

// Register godoc
// @Summary      Register an account
// @Description  Creates the user and its profile with the default member role
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      RegisterRequest           true  "Credentials"
// @Success      201      {object}  AccountResponse
// @Failure      400      {object}  validation.ErrorResponse  "Validation error or username taken"
// @Router       /auth/register [post]
func (h *AccountHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(c, http.StatusInternalServerError,
			"ACCOUNT_CREATE_FAILED",
			"failed to create account",
		)
		return
	}

	user := model.User{
		Username:     req.Username,
		PasswordHash: hash,
	}

	// Registration creates the profile explicitly, in the same
	// transaction as the user row; there is no save hook involved.
	profile, err := h.users.Register(c.Request.Context(), &user)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			writeError(c, http.StatusBadRequest,
				"USERNAME_TAKEN",
				"username is already taken",
			)
			return
		}

		writeError(c, http.StatusInternalServerError,
			"ACCOUNT_CREATE_FAILED",
			"failed to create account",
		)
		return
	}

	c.JSON(http.StatusCreated, AccountResponse{
		ID:       user.ID,
		Username: user.Username,
		Role:     profile.Role,
	})
}

// Login godoc
// @Summary      Log in
// @Description  Verifies credentials and issues a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      LoginRequest              true  "Credentials"
// @Success      200      {object}  LoginResponse
// @Failure      401      {object}  validation.ErrorResponse  "Bad credentials"
// @Router       /auth/login [post]
func (h *AccountHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()

	user, err := h.users.FindByUsername(ctx, req.Username)
	if err != nil {
		writeError(c, http.StatusUnauthorized,
			"BAD_CREDENTIALS",
			"invalid username or password",
		)
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		writeError(c, http.StatusUnauthorized,
			"BAD_CREDENTIALS",
			"invalid username or password",
		)
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Username, user.Profile.Role)
	if err != nil {
		writeError(c, http.StatusInternalServerError,
			"TOKEN_ISSUE_FAILED",
			"failed to issue token",
		)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token: token,
		User: AccountResponse{
			ID:       user.ID,
			Username: user.Username,
			Role:     user.Profile.Role,
		},
	})
}

// Me godoc
// @Summary      Current account
// @Tags         auth
// @Produce      json
// @Success      200  {object}  AccountResponse
// @Failure      401  {object}  validation.ErrorResponse  "Authentication required"
// @Router       /auth/me [get]
func (h *AccountHandler) Me(c *gin.Context) {
	p := auth.PrincipalFrom(c)
	if !p.Authenticated {
		writeError(c, http.StatusUnauthorized,
			"UNAUTHORIZED",
			"authentication required",
		)
		return
	}

	c.JSON(http.StatusOK, AccountResponse{
		ID:       p.UserID,
		Username: p.Username,
		Role:     p.Role,
	})
}
