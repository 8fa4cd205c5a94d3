package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"whiteboardLabeler/configs"
	"whiteboardLabeler/internal/handlers"
)

const shutdownTimeout = 10 * time.Second

type HttpServer struct {
	ctx     context.Context
	config  *configs.Config
	log     *zap.Logger
	router  *gin.Engine
	handler *handlers.RestHandler
}

func NewHttpServer(ctx context.Context, config *configs.Config, log *zap.Logger, handler *handlers.RestHandler) *HttpServer {
	return &HttpServer{
		ctx:     ctx,
		config:  config,
		log:     log,
		handler: handler,
	}
}

// Run serves until the context is cancelled or SIGINT/SIGTERM arrives, then
// drains in-flight requests.
func (hs *HttpServer) Run() error {
	ctx, stop := signal.NotifyContext(hs.ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:              hs.address(),
		Handler:           hs.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		hs.log.Info("HTTP server started", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err, ok := <-serveErr:
		if ok {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	return hs.waitForShutdown(server)
}

// Router builds the gin engine once and returns it.
func (hs *HttpServer) Router() *gin.Engine {
	if hs.router == nil {
		hs.initializeGin()
		hs.setupRestfulRoutes()
	}
	return hs.router
}

func (hs *HttpServer) initializeGin() {
	if hs.config.Viper.GetString("app.env") != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	hs.router = gin.New()
	hs.router.Use(gin.Recovery(), handlers.RequestLogger(hs.log))
}

func (hs *HttpServer) setupRestfulRoutes() {
	hs.handler.RegisterRoutes(hs.router, hs.config.Viper.GetBool("session.protect_api"))
}

func (hs *HttpServer) address() string {
	return fmt.Sprintf("%s:%d",
		hs.config.Viper.GetString("server.host"),
		hs.config.Viper.GetInt("server.port"))
}

func (hs *HttpServer) waitForShutdown(server *http.Server) error {
	hs.log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	hs.log.Info("Server exiting")
	return nil
}
