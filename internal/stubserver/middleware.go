package stubserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/clinic-client/internal/domain/dto"
)

const (
	// requestIDHeader is the HTTP header carrying the request ID.
	requestIDHeader = "X-Request-ID"
	// requestIDKey is the gin context key for the request ID.
	requestIDKey = "request_id"
	// claimsKey is the gin context key for the authenticated claims.
	claimsKey = "claims"
)

// RequestID ensures each request has a unique ID, honoring one supplied by
// the client.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(requestIDKey, requestID)
		c.Header(requestIDHeader, requestID)
		c.Next()
	}
}

// getRequestID retrieves the request ID from the gin context.
func getRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// RequestLogger logs one structured line per completed request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info().
			Str("request_id", getRequestID(c)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}

// RequireAuth validates the bearer access token and stores its claims in
// the context. Requests without a valid token get 401, which is exactly
// what drives the client's refresh path.
func RequireAuth(tokens *tokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c, "authentication credentials were not provided")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			abortUnauthorized(c, "authentication credentials were not provided")
			return
		}

		cl, err := tokens.ValidateAccess(tokenString)
		if err != nil {
			abortUnauthorized(c, "token is invalid or expired")
			return
		}

		c.Set(claimsKey, cl)
		c.Next()
	}
}

// authClaims retrieves the authenticated claims stored by RequireAuth.
func authClaims(c *gin.Context) *claims {
	if v, ok := c.Get(claimsKey); ok {
		if cl, ok := v.(*claims); ok {
			return cl
		}
	}
	return nil
}

func abortUnauthorized(c *gin.Context, message string) {
	resp := dto.NewError(dto.ErrCodeUnauthorized, message).WithRequestID(getRequestID(c))
	c.AbortWithStatusJSON(http.StatusUnauthorized, resp)
}
