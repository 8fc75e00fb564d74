package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"baduk/internal/adapters"
	"baduk/internal/agent"
	"baduk/internal/bootstrap"
	botDelivery "baduk/internal/delivery/bot"
	selfplayDelivery "baduk/internal/delivery/selfplay"
	ownMiddleware "baduk/internal/middleware"
	repo "baduk/internal/repository"
	matchuc "baduk/internal/usecase/match"
)

const botServiceName = "baduk.BotService"

type mainDeliveryHandler struct {
	bot      *botDelivery.BotHandler
	selfplay *selfplayDelivery.SelfPlayHandler
}

type dataBaseAdapters struct {
	redisAdapter *adapters.AdapterRedis
	mongoAdapter *adapters.AdapterMongo
}

func main() {
	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		NewLogger(false).Errorw("failed to setup configuration", "error", err)
		os.Exit(1)
	}
	logger := NewLogger(cfg.LogDebug)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	databaseAdapters := initDatabaseAdapters(ctx, logger, cfg)
	defer databaseAdapters.mongoAdapter.Close(context.Background())
	defer databaseAdapters.redisAdapter.Close(context.Background())

	r := chi.NewRouter()
	handlers := initializeDeliveryHandlers(*cfg, logger, databaseAdapters)
	handlers.Router(r, cfg.IsLocalCors)

	healthServer := health.NewServer()
	grpcServer := grpc.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	lis, err := net.Listen("tcp", ":"+cfg.GrpcPort)
	if err != nil {
		logger.Fatalw("cant listen grpc port", "port", cfg.GrpcPort, "error", err)
	}
	go func() {
		logger.Infof("grpc health server is running on port %s", cfg.GrpcPort)
		if err := grpcServer.Serve(lis); err != nil {
			logger.Errorw("grpc server stopped", "error", err)
		}
	}()

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Infof("server is running on port %s", cfg.ServerPort)
		healthServer.SetServingStatus(botServiceName, healthpb.HealthCheckResponse_SERVING)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalw("failed to start server", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("received shutdown signal")
	healthServer.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorw("http shutdown", "error", err)
	}
	grpcServer.GracefulStop()
}

// NewLogger builds the production logger, or the development one with debug
// output when debug is set.
func NewLogger(debug bool) *zap.SugaredLogger {
	build := zap.NewProduction
	if debug {
		build = zap.NewDevelopment
	}
	logger, err := build()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}

func (h *mainDeliveryHandler) Router(r *chi.Mux, isLocalCors bool) {
	if isLocalCors {
		r.Use(ownMiddleware.CORS)
	}
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	h.bot.Routes(r)
	r.Get("/ws/selfplay", h.selfplay.HandleSelfPlay)
}

func initDatabaseAdapters(ctx context.Context, log *zap.SugaredLogger, cfg *bootstrap.Config) *dataBaseAdapters {
	mongoAdapter := adapters.NewAdapterMongo(cfg, log)
	if err := mongoAdapter.Init(ctx); err != nil {
		log.Fatalw("failed to initialize mongodb", "error", err)
	}

	redisAdapter := adapters.NewAdapterRedis(cfg, log)
	if err := redisAdapter.Init(ctx); err != nil {
		log.Fatalw("failed to initialize redis", "error", err)
	}

	log.Info("database adapters initialized")
	return &dataBaseAdapters{
		redisAdapter: redisAdapter,
		mongoAdapter: mongoAdapter,
	}
}

func initializeDeliveryHandlers(
	cfg bootstrap.Config,
	log *zap.SugaredLogger,
	databaseAdapters *dataBaseAdapters,
) *mainDeliveryHandler {
	registry := agent.DefaultRegistry(agent.Settings{
		MCTSRounds:      cfg.MCTSRounds,
		MCTSTemperature: cfg.MCTSTemperature,
		AlphaBetaDepth:  cfg.AlphaBetaDepth,
	})
	store := repo.NewMatchRepository(cfg, log, databaseAdapters.redisAdapter.GetClient(), databaseAdapters.mongoAdapter.Database)
	matchUC := matchuc.NewMatchUseCase(cfg, log, store, registry)

	return &mainDeliveryHandler{
		bot:      botDelivery.NewBotHandler(log, matchUC),
		selfplay: selfplayDelivery.NewSelfPlayHandler(log, matchUC),
	}
}
