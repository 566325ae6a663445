package handlers

import (
	"errors"
	"net/http"

	"github.com/thienhiep1711/node-todo-api/internal/auth"
	dom "github.com/thienhiep1711/node-todo-api/internal/domain"
	"github.com/thienhiep1711/node-todo-api/internal/dto"
	"github.com/thienhiep1711/node-todo-api/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles signup, login, the current-user view and logout.
type AuthHandler struct {
	userSvc *service.UserService
}

// NewAuthHandler returns a new AuthHandler.
func NewAuthHandler(userSvc *service.UserService) *AuthHandler {
	return &AuthHandler{userSvc: userSvc}
}

// Signup godoc
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      dto.SignupRequest  true  "Credentials"
// @Success      200   {object}  dto.UserResponse
// @Header       200   {string}  x-auth  "Auth token"
// @Failure      400   {object}  map[string]string
// @Router       /users [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, t, err := h.userSvc.Signup(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) || errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "signup failed"})
		return
	}
	c.Header(auth.HeaderName, t)
	c.JSON(http.StatusOK, userToResponse(user))
}

// Login godoc
// @Summary      Login
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      dto.LoginRequest  true  "Credentials"
// @Success      200   {object}  dto.UserResponse
// @Header       200   {string}  x-auth  "Auth token"
// @Failure      400   {object}  map[string]string
// @Router       /users/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.userSvc.FindByCredentials(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// Unknown email and wrong password respond identically.
		c.JSON(http.StatusBadRequest, gin.H{"error": "login failed"})
		return
	}
	t, err := h.userSvc.GenerateAuthToken(c.Request.Context(), &user)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "login failed"})
		return
	}
	c.Header(auth.HeaderName, t)
	c.JSON(http.StatusOK, userToResponse(user))
}

// Me godoc
// @Summary      Current user
// @Tags         users
// @Produce      json
// @Security     TokenAuth
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  map[string]string
// @Router       /users/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := auth.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
		return
	}
	c.JSON(http.StatusOK, userToResponse(user))
}

// Logout godoc
// @Summary      Revoke the current token
// @Tags         users
// @Security     TokenAuth
// @Success      200
// @Failure      400  {object}  map[string]string
// @Router       /users/me/token [delete]
func (h *AuthHandler) Logout(c *gin.Context) {
	user, ok := auth.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
		return
	}
	if err := h.userSvc.RemoveToken(c.Request.Context(), user, auth.TokenFromContext(c)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "logout failed"})
		return
	}
	c.Status(http.StatusOK)
}

func userToResponse(u dom.User) dto.UserResponse {
	return dto.UserResponse{ID: u.ID.Hex(), Email: u.Email}
}
