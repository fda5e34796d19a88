// Package http 提供HTTP服务器功能
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"homeprice/ml"
	"homeprice/monitoring"
)

// Server HTTP服务器
type Server struct {
	server *http.Server
	config ServerConfig
	logger *zap.Logger
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port            int
	Timeout         time.Duration
	ClientDir       string // 静态客户端目录，为空则不提供
	StrictLocations bool   // 未知地区返回400
}

// Dependencies 处理器依赖
type Dependencies struct {
	Store   *ml.Artifacts
	Logger  *zap.Logger
	Metrics *monitoring.Metrics
}

// DefaultServerConfig 默认服务器配置
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Port:    5000,
		Timeout: 30 * time.Second,
	}
}

// NewHandler 创建带中间件的路由
func NewHandler(config ServerConfig, deps Dependencies) http.Handler {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Metrics == nil {
		deps.Metrics = monitoring.NewMetrics()
	}

	mux := http.NewServeMux()
	h := &handlers{
		store:           deps.Store,
		logger:          deps.Logger,
		metrics:         deps.Metrics,
		strictLocations: config.StrictLocations,
	}
	h.register(mux)
	mux.Handle("GET /metrics", deps.Metrics.Handler())
	if config.ClientDir != "" {
		mux.Handle("GET /", newClientHandler(config.ClientDir))
	}

	chain := Chain(
		LoggerMiddleware(deps.Logger, deps.Metrics), // 1. 日志与指标（最外层，panic产生的500也会被记录）
		RecoveryMiddleware(deps.Logger),             // 2. 恢复中间件，捕获panic
		CORSMiddleware,                              // 3. CORS中间件
	)
	return chain(mux)
}

// NewServer 创建HTTP服务器
func NewServer(config ServerConfig, deps Dependencies) *Server {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", config.Port),
			Handler:      NewHandler(config, deps),
			ReadTimeout:  config.Timeout,
			WriteTimeout: config.Timeout,
			IdleTimeout:  120 * time.Second,
		},
		config: config,
		logger: deps.Logger,
	}
}

// Start 启动服务器
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Stop 停止服务器
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.logger.Info("shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	return nil
}

// Addr 返回服务器地址
func (s *Server) Addr() string {
	return s.server.Addr
}
