package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/easayliu/url-tree/docs"
	"github.com/easayliu/url-tree/internal/application/services"
	"github.com/easayliu/url-tree/internal/infrastructure/config"
	"github.com/easayliu/url-tree/internal/interfaces/http/routes"
	"github.com/easayliu/url-tree/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"github.com/spf13/pflag"
)

// @title URL Tree API
// @version 1.0
// @description 将上游的扁平URL列表整理为按主机分组的目录树,并带TTL缓存

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	fs := pflag.NewFlagSet("url-tree", pflag.ExitOnError)
	config.RegisterFlags(fs)
	fs.Parse(os.Args[1:])

	// 加载配置
	cfg, err := config.LoadConfig(fs)
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// 初始化日志
	if err := logger.Init(logger.Options{
		Level:     cfg.Log.Level,
		Output:    cfg.Log.Output,
		Format:    cfg.Log.Format,
		FilePath:  cfg.Log.FilePath,
		Colorize:  cfg.Log.Colorize,
		AddSource: cfg.Log.AddSource,
	}); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化服务容器
	container, err := services.NewServiceContainer(cfg)
	if err != nil {
		log.Fatal("Failed to initialize service container:", err)
	}

	// 初始化路由
	router := routes.SetupRoutes(cfg, container)

	var handler http.Handler = router
	if cfg.Server.Gzip {
		handler = gzhttp.GzipHandler(router)
	}

	server := &http.Server{
		Addr:    cfg.Server.Address(),
		Handler: handler,
	}

	// 设置信号处理
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 预热缓存并启动后台刷新
	if err := container.Start(ctx); err != nil {
		log.Fatal("Failed to start services:", err)
	}

	// 启动服务器
	go func() {
		logger.Info("Starting server", "address", server.Addr, "source", logger.SanitizeURL(cfg.Source.URL), "ttl", cfg.Cache.TTL())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// 等待退出信号
	<-ctx.Done()
	stop()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout())
	defer cancel()

	if err := container.Stop(shutdownCtx); err != nil {
		logger.Warn("Failed to stop scheduler", "error", err)
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server stopped")
}
