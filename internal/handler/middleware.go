package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rise-labs/shelf-backend/internal/metrics"
	"github.com/rise-labs/shelf-backend/internal/model"
	"github.com/rise-labs/shelf-backend/internal/service"
	"go.uber.org/zap"
)

const (
	authClaimsKey = "auth_claims"
	authTokenKey  = "auth_token"

	// missingTokenPlaceholder stands in for a header with no second field.
	// It never verifies.
	missingTokenPlaceholder = "token not found"
)

// AuthMiddleware guards a route group with verifier. The first field of the
// Authorization header is the scheme label and is not checked; the second
// field is the token.
func AuthMiddleware(verifier service.TokenVerifier, m *metrics.Metrics, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		values, ok := c.Request.Header["Authorization"]
		if !ok || len(values) == 0 {
			m.ObserveAuth("verify", "missing")
			abortWithError(c, http.StatusForbidden, service.ErrMissingAuthHeader.Error())
			return
		}
		header := values[0]
		if !isHeaderText(header) {
			m.ObserveAuth("verify", "malformed")
			abortWithError(c, http.StatusForbidden, service.ErrMalformedHeader.Error())
			return
		}

		token := bearerToken(header)
		claims, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrTokenExpired):
				m.ObserveAuth("verify", "expired")
				abortWithError(c, http.StatusUnauthorized, "token expired, login again")
			case errors.Is(err, service.ErrUpstream):
				m.ObserveAuth("verify", "error")
				log.Errorw("token verification failed", "error", err)
				abortWithError(c, http.StatusInternalServerError, "server error")
			default:
				m.ObserveAuth("verify", "invalid")
				abortWithError(c, http.StatusUnauthorized, service.ErrTokenInvalid.Error())
			}
			return
		}

		m.ObserveAuth("verify", "ok")
		c.Set(authClaimsKey, claims)
		c.Set(authTokenKey, token)
		c.Next()
	}
}

func GetAuthClaims(c *gin.Context) *model.Claims {
	if value, ok := c.Get(authClaimsKey); ok {
		if claims, ok := value.(*model.Claims); ok {
			return claims
		}
	}
	return nil
}

func getAuthToken(c *gin.Context) string {
	return c.GetString(authTokenKey)
}

func bearerToken(header string) string {
	fields := strings.Fields(header)
	if len(fields) < 2 {
		return missingTokenPlaceholder
	}
	return fields[1]
}

// isHeaderText accepts printable ASCII plus tab.
func isHeaderText(v string) bool {
	for i := 0; i < len(v); i++ {
		b := v[i]
		if b == '\t' {
			continue
		}
		if b < 0x20 || b > 0x7e {
			return false
		}
	}
	return true
}

func abortWithError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, model.ErrorResponse{Error: msg})
}

// RequestLogger logs one debug line per request. Headers and bodies are
// never logged.
func RequestLogger(log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debugw("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		)
	}
}

func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	origins := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins[trimmed] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); origin != "" {
			if _, ok := origins[origin]; ok {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
				c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
				c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
