package monitoring

import (
	"net/http"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	httpInFlight     atomic.Int64
	httpServedTotal  atomic.Uint64
	httpServerErrors atomic.Uint64
)

// RequestMetricsMiddleware counts in-flight, served and failed (5xx) requests.
func RequestMetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		httpInFlight.Add(1)
		defer func() {
			httpInFlight.Add(-1)
			httpServedTotal.Add(1)
			if c.Writer.Status() >= http.StatusInternalServerError {
				httpServerErrors.Add(1)
			}
		}()
		c.Next()
	}
}

func getHTTPStats() (active int64, total uint64, serverErrors uint64) {
	return httpInFlight.Load(), httpServedTotal.Load(), httpServerErrors.Load()
}
