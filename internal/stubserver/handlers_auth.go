package stubserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/clinic-client/internal/domain/dto"
	"github.com/guttosm/clinic-client/internal/metrics"
)

// handleLogin implements POST /auth/login/.
func (s *Server) handleLogin(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.badRequest(c, err.Error())
		return
	}

	user, ok := s.store.Authenticate(req.Username, req.Password)
	if !ok {
		resp := dto.NewError(dto.ErrCodeUnauthorized, "no active account found with the given credentials").
			WithRequestID(getRequestID(c))
		c.JSON(http.StatusUnauthorized, resp)
		return
	}

	access, refresh, err := s.tokens.GeneratePair(user)
	if err != nil {
		s.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TokenPair{Access: access, Refresh: refresh})
}

// handleCurrentUser implements GET /auth/user/.
func (s *Server) handleCurrentUser(c *gin.Context) {
	cl := authClaims(c)
	if cl == nil {
		abortUnauthorized(c, "authentication credentials were not provided")
		return
	}

	user, ok := s.store.UserByID(cl.UserID)
	if !ok {
		abortUnauthorized(c, "user no longer exists")
		return
	}
	c.JSON(http.StatusOK, user)
}

// handleRefresh implements POST /auth/token/refresh/. It accepts a valid
// refresh token and returns a new access token only.
func (s *Server) handleRefresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Refresh == "" {
		metrics.TokenRefreshTotal.WithLabelValues("rejected").Inc()
		s.badRequest(c, "refresh token is required")
		return
	}

	cl, err := s.tokens.ValidateRefresh(req.Refresh)
	if err != nil {
		metrics.TokenRefreshTotal.WithLabelValues("rejected").Inc()
		resp := dto.NewError(dto.ErrCodeUnauthorized, "token is invalid or expired").
			WithRequestID(getRequestID(c))
		c.JSON(http.StatusUnauthorized, resp)
		return
	}

	user, ok := s.store.UserByID(cl.UserID)
	if !ok {
		metrics.TokenRefreshTotal.WithLabelValues("rejected").Inc()
		resp := dto.NewError(dto.ErrCodeUnauthorized, "user no longer exists").
			WithRequestID(getRequestID(c))
		c.JSON(http.StatusUnauthorized, resp)
		return
	}

	access, err := s.tokens.GenerateAccess(user)
	if err != nil {
		s.internalError(c, err)
		return
	}

	metrics.TokenRefreshTotal.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, dto.RefreshResponse{Access: access})
}
