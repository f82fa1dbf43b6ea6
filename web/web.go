// Package web provides the HTTP server of the Atelier backend: gin engine
// setup, route registration and background job scheduling.
package web

import (
	"context"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/atelier-moveis/atelier-backend/config"
	"github.com/atelier-moveis/atelier-backend/identity"
	"github.com/atelier-moveis/atelier-backend/logger"
	"github.com/atelier-moveis/atelier-backend/objstore"
	"github.com/atelier-moveis/atelier-backend/web/controller"
	"github.com/atelier-moveis/atelier-backend/web/job"
	"github.com/atelier-moveis/atelier-backend/web/service"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// Server is the Atelier API server. External clients are injected so
// tests can substitute fakes.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	db       *gorm.DB
	provider identity.Provider
	store    objstore.Store

	auth     *controller.AuthController
	products *controller.ProductController
	photos   *controller.PhotoController
	stats    *controller.StatsController
	admin    *controller.AdminController

	cron *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new server around the given store connections.
func NewServer(db *gorm.DB, provider identity.Provider, store objstore.Store) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		db:       db,
		provider: provider,
		store:    store,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// initRouter initializes gin, registers middleware and controllers and
// returns the configured engine.
func (s *Server) initRouter() *gin.Engine {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(recoveryHandler())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	engine.GET("/", healthCheck)
	engine.GET("/health", healthCheck)

	profiles := service.NewProfileService(s.db)
	products := service.NewProductService(s.db, s.store)
	photos := service.NewPhotoService(s.db, s.store)
	stats := service.NewStatsService(s.db)

	root := engine.Group("/")
	s.auth = controller.NewAuthController(root, s.provider, profiles, config.GetRecoverRedirectURL())
	s.products = controller.NewProductController(root, products, s.provider, profiles)
	s.photos = controller.NewPhotoController(root, photos, s.provider, profiles)
	s.stats = controller.NewStatsController(root, stats)
	s.admin = controller.NewAdminController(root, s.provider, profiles, stats)

	engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	return engine
}

func healthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// recoveryHandler converts any handler panic into the generic 500 body,
// never leaking internals.
func recoveryHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic recovered:", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
	})
}

// startTask schedules the background jobs.
func (s *Server) startTask() {
	schedule := config.GetSweepSchedule()
	if schedule == "" {
		return
	}
	grace := time.Duration(config.GetSweepGraceHours()) * time.Hour
	if _, err := s.cron.AddJob(schedule, job.NewOrphanBlobJob(s.db, s.store, grace)); err != nil {
		logger.Warning("schedule orphan sweep failed:", err)
	}
}

func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			s.Stop()
		}
	}()

	engine := s.initRouter()

	addr := net.JoinHostPort(config.GetListen(), strconv.Itoa(config.GetPort()))
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.listener = listener

	s.cron = cron.New()
	s.startTask()
	s.cron.Start()

	s.httpServer = &http.Server{Handler: engine}
	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("serve:", err)
		}
	}()

	logger.Infof("%s %s listening on %s", config.GetName(), config.GetVersion(), addr)
	return nil
}

func (s *Server) Stop() error {
	s.cancel()
	if s.cron != nil {
		s.cron.Stop()
	}
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(ctx)
	}
	if s.listener != nil {
		return s.listener.Close()
	}
	return nil
}
