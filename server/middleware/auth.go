package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rapidrescue/rescuedge/auth"
	apperrors "github.com/rapidrescue/rescuedge/errors"
)

// Auth requires a valid "Authorization: Bearer <token>" header. Verified
// claims are stored in the request context (see auth.ClaimsFrom).
func Auth(validator auth.TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortWithError(c, apperrors.Unauthorized("Authorization header required"))
			return
		}

		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			abortWithError(c, apperrors.Unauthorized("Invalid authorization header format"))
			return
		}

		claims, err := validator.ValidateToken(token)
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				abortWithError(c, apperrors.TokenExpired())
			} else {
				abortWithError(c, apperrors.InvalidToken())
			}
			return
		}

		c.Request = c.Request.WithContext(auth.WithClaims(c.Request.Context(), claims))
		c.Next()
	}
}

func abortWithError(c *gin.Context, err *apperrors.AppError) {
	c.AbortWithStatusJSON(err.HTTPStatus, err.ToResponse())
}
