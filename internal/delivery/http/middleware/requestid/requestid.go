package http_requestid_middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	Header = "X-Request-ID"
	key    = "request_id"
)

// RequestID keeps a caller-supplied request id or assigns a fresh one, and echoes it back.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader(Header)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		ctx.Set(key, id)
		ctx.Header(Header, id)
		ctx.Next()
	}
}

func FromContext(ctx *gin.Context) string {
	return ctx.GetString(key)
}
