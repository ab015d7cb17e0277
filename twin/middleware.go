package twin

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/kbukum/livechat/errors"
	"github.com/kbukum/livechat/logger"
)

const (
	requestIDHeader = "X-Request-Id"
	claimsKey       = "customer_claims"
)

// requestID reuses the caller's X-Request-Id or generates one, echoes it and
// stores it on the request context for logging.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)
		c.Request = c.Request.WithContext(logger.ContextWithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// recovery turns panics into a 500 in the API error format.
func recovery(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.WithContext(c.Request.Context()).Error("panic recovered", logger.Fields(
					logger.FieldError, fmt.Sprint(r),
					"stack", string(debug.Stack()),
					logger.FieldPath, c.Request.URL.Path,
					logger.FieldMethod, c.Request.Method,
				))
				err := apperrors.Internal(fmt.Errorf("panic: %v", r))
				c.AbortWithStatusJSON(err.HTTPStatus, err.ToResponse())
			}
		}()
		c.Next()
	}
}

// requestLogger logs every request except health checks, at a level chosen
// by status.
func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/health" {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		path := c.Request.URL.Path
		if q := c.Request.URL.RawQuery; q != "" {
			path = path + "?" + q
		}
		fields := logger.HTTPFields(c.Request.Method, path, status, time.Since(start))
		l := log.WithContext(c.Request.Context())
		switch {
		case status >= 500:
			l.Error("request completed", fields)
		case status >= 400:
			l.Warn("request completed", fields)
		default:
			l.Debug("request completed", fields)
		}
	}
}

// bodyLimit caps request bodies at n bytes.
func bodyLimit(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if n > 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
		c.Next()
	}
}

// agentAuth rejects requests without agent credentials.
func agentAuth(creds *agentCredentials) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := creds.check(c.Request); err != nil {
			abort(c, err)
			return
		}
		c.Next()
	}
}

// customerAuth requires a customer access token issued by this twin.
func customerAuth(tokens *Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		scheme, value, ok := strings.Cut(c.GetHeader("Authorization"), " ")
		if !ok || scheme != "Bearer" || value == "" {
			abort(c, apperrors.Unauthorized("Customer access token required."))
			return
		}
		claims, err := tokens.Parse(value)
		if err != nil {
			abort(c, apperrors.InvalidToken().WithCause(err))
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

func customerClaims(c *gin.Context) *CustomerClaims {
	v, _ := c.Get(claimsKey)
	claims, _ := v.(*CustomerClaims)
	return claims
}
