package http_access_middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/kinopick/internal/delivery/http/common"
)

// ReadOnlyMode is the HTTP_MODE value that freezes the catalog.
const ReadOnlyMode = "RO"

// ReadOnlyBadGatewayMiddleware rejects anything but GET and HEAD when mode is ReadOnlyMode.
func ReadOnlyBadGatewayMiddleware(mode string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if mode != ReadOnlyMode {
			c.Next()
			return
		}

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead:
			c.Next()
			return
		}

		c.JSON(http.StatusBadGateway, http_common.ErrorResponse{
			Error:   "Bad Gateway",
			Message: "catalog is read-only on this instance",
			Code:    http.StatusBadGateway,
		})
		c.Abort()
	}
}
