package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dsemenov/authkeeper/internal/common"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userPayload struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

func respondError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

func (s *Server) handleRegister(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := c.Request.Context()

	result, err := s.accounts.Register(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrValidation), errors.Is(err, common.ErrUsernameTaken):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			s.logger.Error(ctx, "registration failed", "error", err.Error())
			respondError(c, http.StatusInternalServerError, "internal error")
		}
		return
	}

	s.logger.Info(ctx, "user registered", "username", result.User.Username)
	c.JSON(http.StatusCreated, authResponse{
		Token: result.Token,
		User:  userPayload{ID: result.User.ID, Username: result.User.Username},
	})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := c.Request.Context()

	result, err := s.accounts.Login(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrValidation):
			respondError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, common.ErrInvalidCredentials):
			respondError(c, http.StatusUnauthorized, common.ErrInvalidCredentials.Error())
		default:
			s.logger.Error(ctx, "login failed", "error", err.Error())
			respondError(c, http.StatusInternalServerError, "internal error")
		}
		return
	}

	c.JSON(http.StatusOK, authResponse{
		Token: result.Token,
		User:  userPayload{ID: result.User.ID, Username: result.User.Username},
	})
}

// handleCheckAuth always answers 200: an absent, invalid, or expired session
// is a normal outcome, not an error. Infrastructure failures degrade to
// "not authenticated" with the detail logged server-side.
func (s *Server) handleCheckAuth(c *gin.Context) {
	ctx := c.Request.Context()

	token := bearerToken(c.GetHeader(common.AuthorizationHeaderName))
	if token == "" {
		c.JSON(http.StatusOK, gin.H{"isLoggedIn": false})
		return
	}

	user, err := s.accounts.CheckAuth(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorInternal) {
			s.logger.Error(ctx, "auth check failed", "error", err.Error())
		}
		c.JSON(http.StatusOK, gin.H{"isLoggedIn": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"isLoggedIn": true,
		"user":       userPayload{ID: user.ID, Username: user.Username},
	})
}

func (s *Server) handleHealthz(c *gin.Context) {
	ctx := c.Request.Context()

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Error(ctx, "health check failed", "error", err.Error())
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header value; any other shape yields "".
func bearerToken(header string) string {
	if !strings.HasPrefix(header, common.BearerPrefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, common.BearerPrefix))
}
