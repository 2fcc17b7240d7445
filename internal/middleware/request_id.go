package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	requestIDKey    = "request_id"
	requestIDHeader = "X-Request-ID"
	maxInboundIDLen = 64
)

// RequestID returns the current request's ID, or "" outside RequestLogging.
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// RequestLogging tags every request with an ID (honoring an inbound
// X-Request-ID) and writes one log line per request, including the acting
// user when authentication already resolved one.
func RequestLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := inboundRequestID(c)
		if id == "" {
			id = newRequestID()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set(requestIDHeader, id)

		c.Next()

		line := fmt.Sprintf("request_id=%s %s %s -> %d in %s from %s",
			id,
			c.Request.Method,
			c.FullPath(),
			c.Writer.Status(),
			time.Since(start).Round(time.Millisecond),
			c.ClientIP(),
		)
		if userID, authenticated := c.Get("user_id"); authenticated {
			line += fmt.Sprintf(" user_id=%v", userID)
		}
		log.Print(line)
	}
}

func inboundRequestID(c *gin.Context) string {
	id := strings.TrimSpace(c.GetHeader(requestIDHeader))
	if len(id) > maxInboundIDLen {
		return id[:maxInboundIDLen]
	}
	return id
}

func newRequestID() string {
	var buf [12]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	return hex.EncodeToString(buf[:])
}
