// Package httpapi serves the task list over HTTP: a JSON API under /api/v1
// and a server-rendered page at /.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MihkelHunter/mkTasks/internal/log"
	"github.com/MihkelHunter/mkTasks/internal/view"
)

// HTTPServer wraps the gin engine and its http.Server.
type HTTPServer struct {
	router *gin.Engine
	server *http.Server
	logger *slog.Logger
}

// NewRouter builds the engine with every route registered.
func NewRouter(model *view.Model) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.SetHTMLTemplate(loadTemplates())

	tasks := NewTaskHandler(model)
	api := router.Group("/api/v1")
	{
		api.GET("/tasks", tasks.List)
		api.POST("/tasks", tasks.Create)
		api.POST("/tasks/:index/toggle", tasks.Toggle)
		api.DELETE("/tasks/:index", tasks.Delete)

		api.GET("/deleted", tasks.ListDeleted)
		api.DELETE("/deleted/selected", tasks.DeleteSelected)
		api.POST("/deleted/:index/restore", tasks.Restore)
		api.POST("/deleted/:index/select", tasks.Select)

		api.GET("/export", tasks.Export)
	}

	page := NewPageHandler(model)
	router.GET("/", page.Index)
	ui := router.Group("/ui")
	{
		ui.POST("/add", page.Add)
		ui.POST("/menu", page.Menu)
		ui.POST("/filter", page.Filter)
		ui.POST("/tasks/:index/toggle", page.Toggle)
		ui.POST("/tasks/:index/delete", page.Delete)
		ui.POST("/deleted/purge", page.Purge)
		ui.POST("/deleted/:index/restore", page.Restore)
		ui.POST("/deleted/:index/select", page.Select)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}

func NewServer(addr string, model *view.Model) *HTTPServer {
	router := NewRouter(model)
	return &HTTPServer{
		router: router,
		server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: log.NewModuleLogger("http", "server"),
	}
}

// Start blocks serving until Shutdown is called.
func (s *HTTPServer) Start() error {
	s.logger.Info("listening", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down")
	return s.server.Shutdown(ctx)
}
