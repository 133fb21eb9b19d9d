package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/AtomSense/internal/infrastructure/monitoring/logging"
)

// Recovery turns panics into 500 responses instead of dropped connections.
func Recovery(log logging.Logger) gin.HandlerFunc {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("handler panicked",
					logging.Any("panic", r),
					logging.String("path", c.Request.URL.Path))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"code":    "COMMON_001",
					"message": "internal server error",
				})
			}
		}()
		c.Next()
	}
}
