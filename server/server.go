package server

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Testeur1337/myPomodoro/internal/scheduler"
	"github.com/Testeur1337/myPomodoro/internal/service"
)

// MetaReader reads maintenance bookkeeping such as the last repair time.
type MetaReader interface {
	GetMeta(ctx context.Context, key string) (string, error)
}

// Server is the HTTP API in front of the service layer
type Server struct {
	svc  *service.Service
	meta MetaReader
	echo *echo.Echo
}

// New creates a new server. meta may be nil, in which case /health only
// reports status.
func New(svc *service.Service, meta MetaReader) *Server {
	s := &Server{svc: svc, meta: meta}
	s.setupEcho()
	return s
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.handleError

	e.Use(middleware.RequestID())
	e.Use(requestLogger)
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Health check
	e.GET("/health", s.handleHealth)

	// API v1
	api := e.Group("/api/v1")

	api.GET("/goals", s.handleListGoals)
	api.POST("/goals", s.handleCreateGoal)
	api.PUT("/goals/:id", s.handleUpdateGoal)
	api.POST("/goals/:id/archive", s.handleArchiveGoal(true))
	api.POST("/goals/:id/unarchive", s.handleArchiveGoal(false))

	api.GET("/projects", s.handleListProjects)
	api.POST("/projects", s.handleCreateProject)
	api.PUT("/projects/:id", s.handleUpdateProject)
	api.POST("/projects/:id/archive", s.handleArchiveProject(true))
	api.POST("/projects/:id/unarchive", s.handleArchiveProject(false))

	api.GET("/topics", s.handleListTopics)
	api.POST("/topics", s.handleCreateTopic)
	api.PUT("/topics/:id", s.handleUpdateTopic)
	api.POST("/topics/:id/archive", s.handleArchiveTopic(true))
	api.POST("/topics/:id/unarchive", s.handleArchiveTopic(false))

	api.GET("/tree", s.handleTree)

	api.GET("/sessions", s.handleListSessions)
	api.POST("/sessions", s.handleCreateSession)
	api.GET("/sessions/:id", s.handleGetSession)
	api.PUT("/sessions/:id", s.handleUpdateSession)
	api.DELETE("/sessions/:id", s.handleDeleteSession)

	api.GET("/recurring", s.handleListRecurring)
	api.GET("/recurring/upcoming", s.handleUpcomingRecurring)
	api.POST("/recurring", s.handleCreateRecurring)
	api.PUT("/recurring/:id", s.handleUpdateRecurring)
	api.POST("/recurring/:id/archive", s.handleArchiveRecurring(true))
	api.POST("/recurring/:id/unarchive", s.handleArchiveRecurring(false))

	api.GET("/templates", s.handleListTemplates)
	api.POST("/templates", s.handleCreateTemplate)
	api.PUT("/templates/:id", s.handleUpdateTemplate)
	api.DELETE("/templates/:id", s.handleDeleteTemplate)

	api.GET("/planner/today", s.handleGetToday)
	api.GET("/planner/:date", s.handleGetDay)
	api.PUT("/planner/:date", s.handleSaveDay)
	api.POST("/planner/:date/template/:templateId", s.handleApplyTemplate)
	api.POST("/planner/:date/tasks/:taskId/move", s.handleMoveTask)

	api.GET("/export", s.handleExport)
	api.POST("/import", s.handleImport)
	api.POST("/repair", s.handleRepair)

	s.echo = e
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.echo
}

// Start starts the server
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

type healthResponse struct {
	Status     string `json:"status"`
	LastRepair string `json:"lastRepair,omitempty"`
	LastBackup string `json:"lastBackup,omitempty"`
}

func (s *Server) handleHealth(c echo.Context) error {
	resp := healthResponse{Status: "ok"}
	if s.meta != nil {
		ctx := c.Request().Context()
		var err error
		if resp.LastRepair, err = s.meta.GetMeta(ctx, scheduler.MetaLastRepair); err != nil {
			return err
		}
		if resp.LastBackup, err = s.meta.GetMeta(ctx, scheduler.MetaLastBackup); err != nil {
			return err
		}
	}
	return c.JSON(http.StatusOK, resp)
}
