package http_auth_middleware

import (
	"crypto/subtle"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/kinopick/internal/delivery/http/common"
)

const header = "X-admin-token"

type Middleware struct {
	token  string
	logger *slog.Logger
}

// New guards routes with a static admin token. An empty token lets every request through.
func New(
	token string,
) *Middleware {
	return &Middleware{
		token:  token,
		logger: slog.Default(),
	}
}

func (m *Middleware) AuthRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if m.token == "" {
			ctx.Next()
			return
		}

		t := ctx.GetHeader(header)
		if t == "" {
			m.logger.Warn(fmt.Sprintf("no %s header", header))
			ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Error: fmt.Sprintf("no %s header", header),
				Code:  http.StatusUnauthorized,
			})
			ctx.Abort()
			return
		}

		if subtle.ConstantTimeCompare([]byte(t), []byte(m.token)) != 1 {
			m.logger.Warn("invalid token", slog.String("path", ctx.FullPath()))
			ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Error: "invalid token",
				Code:  http.StatusUnauthorized,
			})
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}
