package ui

import (
	"io/fs"
	"log"
	"net/http"

	"pricetable/ui/middleware"

	"github.com/gin-gonic/gin"
)

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID())
	s.router.Use(gin.LoggerWithFormatter(func(p gin.LogFormatterParams) string {
		id, _ := p.Keys[middleware.RequestIDKey].(string)
		return p.TimeStamp.Format("2006/01/02 15:04:05") + " [HTTP] " + id + " " + p.Method + " " + p.Path + " " +
			http.StatusText(p.StatusCode) + " " + p.Latency.String() + "\n"
	}))
	s.router.Use(gin.Recovery())

	staticFS, err := fs.Sub(s.embeddedFiles, "static")
	if err != nil {
		log.Printf("[setupMiddleware] Error creating static filesystem: %v", err)
		return
	}
	s.router.StaticFS("/static", http.FS(staticFS))
}
