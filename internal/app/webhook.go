package app

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultWebhookPath = "/webhook"

// WebhookServer принимает апдейты Telegram и отвечает на проверки здоровья
type WebhookServer struct {
	srv    *http.Server
	logger *zap.Logger
}

func NewWebhookServer(listen, path string, updates http.Handler, logger *zap.Logger) *WebhookServer {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(logger))

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.POST(path, gin.WrapH(updates))

	return &WebhookServer{
		srv: &http.Server{
			Addr:              listen,
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Handler роутер сервера, нужен тестам
func (s *WebhookServer) Handler() http.Handler {
	return s.srv.Handler
}

// Start слушает порт в отдельной горутине
func (s *WebhookServer) Start() {
	s.logger.Info("Starting webhook server", zap.String("listen", s.srv.Addr))

	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Webhook server stopped", zap.Error(err))
		}
	}()
}

func (s *WebhookServer) Shutdown(ctx context.Context) error {
	s.logger.Info("Stopping webhook server")
	return s.srv.Shutdown(ctx)
}

// WebhookPath путь из публичного адреса вебхука
func WebhookPath(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Path == "" || u.Path == "/" {
		return defaultWebhookPath
	}
	return u.Path
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Debug("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}
