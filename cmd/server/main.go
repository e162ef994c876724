// @title        Users API
// @version      1.0
// @description  CRUD service over the users collection.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"

	"github.com/SinghShreyansh/users-service/internal/api"
	"github.com/SinghShreyansh/users-service/internal/api/handler"
	"github.com/SinghShreyansh/users-service/internal/api/metrics"
	"github.com/SinghShreyansh/users-service/internal/core/ports"
	"github.com/SinghShreyansh/users-service/internal/core/service"
	"github.com/SinghShreyansh/users-service/internal/infrastructure/db/memory"
	"github.com/SinghShreyansh/users-service/internal/infrastructure/db/mongo"
	"github.com/SinghShreyansh/users-service/internal/infrastructure/db/redis"
	"github.com/SinghShreyansh/users-service/internal/infrastructure/projection"
	"github.com/SinghShreyansh/users-service/internal/infrastructure/queue"
	"github.com/SinghShreyansh/users-service/internal/pkg/config"
	"github.com/SinghShreyansh/users-service/internal/pkg/validation"
	"github.com/SinghShreyansh/users-service/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "users",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	readiness := make(map[string]handler.Pinger)

	repo, closeStore, err := openStorage(ctx, cfg, log, readiness)
	if err != nil {
		return err
	}
	defer closeStore()

	publisher, closeBroker, err := openPublisher(ctx, cfg, log, readiness)
	if err != nil {
		return err
	}
	defer closeBroker()

	dispatchCtx, cancelDispatch := context.WithCancel(context.Background())
	defer cancelDispatch()
	dispatcher := queue.NewDispatcher(cfg.Notify.Workers, publisher, logger.Component("notify"))
	dispatcher.Start(dispatchCtx)

	users := service.NewUserService(
		repo,
		projection.NewFieldProjector(),
		dispatcher,
		validation.New(),
		service.UserOptions{StrictValidation: cfg.Users.StrictValidation},
		logger.Component("users"),
	)

	if cfg.Users.Seed {
		n, err := users.SeedIfEmpty(ctx)
		if err != nil {
			return err
		}
		metrics.SeededRecordsTotal.Add(float64(n))
	}

	e := api.NewRouter(api.Dependencies{
		Users:      users,
		Log:        log,
		Readiness:  readiness,
		Production: cfg.IsProduction(),
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := e.Shutdown(shutdownCtx)
		// HTTP is drained; flush queued change events before the broker closes.
		dispatcher.Close()
		return err
	})

	return g.Wait()
}

// openStorage picks MongoDB when a URI is configured and in-memory storage otherwise.
func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger, readiness map[string]handler.Pinger) (ports.UserRepository, func(), error) {
	if cfg.Mongo.URI == "" {
		log.Warn().Msg("MONGO_URI not set, using in-memory storage")
		return memory.NewUserRepository(), func() {}, nil
	}

	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "users-service",
	})
	if err != nil {
		return nil, nil, err
	}

	repo := mongo.NewUserRepository(db, cfg.Mongo.Collection)
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to create users indexes")
	}

	readiness["mongodb"] = handler.PingFunc(func(ctx context.Context) error {
		return client.Ping(ctx, nil)
	})
	log.Info().Str("database", cfg.Mongo.Database).Str("collection", cfg.Mongo.Collection).Msg("connected to mongodb")

	return repo, func() { disconnectMongo(client, log) }, nil
}

func disconnectMongo(client *mongodriver.Client, log zerolog.Logger) {
	if err := mongo.Disconnect(client, shutdownTimeout); err != nil {
		log.Warn().Err(err).Msg("mongo disconnect")
	}
}

// openPublisher returns the Redis publisher when REDIS_ADDR is set and a log publisher otherwise.
func openPublisher(ctx context.Context, cfg *config.Config, log zerolog.Logger, readiness map[string]handler.Pinger) (queue.Publisher, func(), error) {
	if cfg.Redis.Addr == "" {
		log.Warn().Msg("REDIS_ADDR not set, change notifications are logged only")
		return queue.NewLogPublisher(logger.Component("notify")), func() {}, nil
	}

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, nil, err
	}

	readiness["redis"] = handler.PingFunc(func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")

	return redis.NewChangePublisher(rdb, cfg.Redis.ChannelPrefix), func() { closeRedis(rdb, log) }, nil
}

func closeRedis(rdb *goredis.Client, log zerolog.Logger) {
	if err := rdb.Close(); err != nil {
		log.Warn().Err(err).Msg("redis close")
	}
}
