package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/omnipos-catalog-service/config"
	invListenerPkg "github.com/fekuna/omnipos-catalog-service/internal/inventory/listener"
	"github.com/fekuna/omnipos-catalog-service/internal/memdb"
	"github.com/fekuna/omnipos-catalog-service/internal/server"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.IsDevelopment() {
		logConfig.IsDevelopment = true
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Initialize in-memory stores
	db := memdb.New()

	// 4. Wire repositories, usecases and handlers
	app := server.NewApp(cfg, appLogger, db)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	// 5. Start HTTP Server
	httpServer := &http.Server{
		Addr:              normalizePort(cfg.Server.HTTPPort),
		Handler:           app.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	g.Go(func() error {
		appLogger.Info("Starting HTTP server", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// 6. Start gRPC Server (health + reflection)
	grpcServer, healthServer := server.NewGRPCServer(appLogger)
	grpcAddr := normalizePort(cfg.Server.GRPCPort)
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		appLogger.Fatal("failed to listen", zap.String("addr", grpcAddr), zap.Error(err))
	}
	g.Go(func() error {
		appLogger.Info("Starting gRPC server", zap.String("addr", grpcAddr))
		return grpcServer.Serve(lis)
	})

	// 7. Start Order Listener
	if cfg.Kafka.Enabled {
		reader := invListenerPkg.NewKafkaReader(cfg.Kafka)
		invListener := invListenerPkg.NewInventoryListener(reader, app.Inventory, appLogger)
		appLogger.Info("Connected to Kafka Consumer",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.Topic),
		)
		g.Go(func() error {
			return invListener.Start(gctx)
		})
	}

	// 8. Graceful Shutdown
	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("Shutting down server...")
		healthServer.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := httpServer.Shutdown(shutdownCtx)
		grpcServer.GracefulStop()
		return err
	})

	if err := g.Wait(); err != nil {
		appLogger.Error("server exited with error", zap.Error(err))
		return
	}
	appLogger.Info("Server stopped")
}

func normalizePort(port string) string {
	if !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}
