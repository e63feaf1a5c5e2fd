package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
)

// GinMiddleware records duration and status of every request under its route template.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		handler := c.FullPath()
		if handler == "" {
			handler = "unmatched"
		}
		m.RecordHTTPRequest(handler, c.Request.Method, c.Writer.Status(), time.Since(start).Seconds())
	}
}

// Timer measures elapsed seconds for an upstream call.
type Timer struct {
	start time.Time
}

// NewTimer starts a timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Seconds returns the time elapsed since the timer started.
func (t *Timer) Seconds() float64 {
	return time.Since(t.start).Seconds()
}
