package app

import (
	"context"
	"time"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/JasonDavD/biblioteca-bibliotech/lending/config"
	"github.com/JasonDavD/biblioteca-bibliotech/lending/internal/handler"
	"github.com/JasonDavD/biblioteca-bibliotech/lending/internal/repository"
	"github.com/JasonDavD/biblioteca-bibliotech/lending/internal/server"
	"github.com/JasonDavD/biblioteca-bibliotech/lending/internal/service"
	"github.com/JasonDavD/biblioteca-bibliotech/lending/migrations"
	"github.com/JasonDavD/biblioteca-bibliotech/pkg/clock"
	"github.com/JasonDavD/biblioteca-bibliotech/pkg/kafka"
	"github.com/JasonDavD/biblioteca-bibliotech/pkg/logger"
	"github.com/JasonDavD/biblioteca-bibliotech/pkg/postgres"
)

const shutdownTimeout = 5 * time.Second

type closer func()

// Run serves the HTTP API, the overdue sweeper and, when the broker is
// enabled, the capacity consumer until ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config) error {
	log := logger.NewLogger(cfg.Log, "lending")
	defer log.Sync() //nolint:errcheck

	repo, closeRepo, err := openRepository(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeRepo()

	enqueuer, closeEnqueuer, err := openEnqueuer(cfg, log)
	if err != nil {
		return err
	}
	defer closeEnqueuer()

	svc := newService(cfg, repo, log, enqueuer)

	var group sarama.ConsumerGroup
	if cfg.Kafka.Enable {
		if group, err = kafka.NewConsumer(cfg.Kafka, kafka.LendingConsumerGroup); err != nil {
			return errors.Wrap(err, "kafka.NewConsumer")
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	h := handler.New(svc, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ", zap.String("addr", srv.Addr()))
	g.Go(srv.Run)
	g.Go(func() error {
		<-gctx.Done()
		log.Debug("Graceful shutdown")
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Stop(closeCtx)
	})

	sweeper := service.NewSweeper(svc, cfg.Ledger.SweepInterval, log)
	g.Go(func() error { return sweeper.Run(gctx) })

	if group != nil {
		consumer := handler.NewConsumer(svc.ResizeCapacity, log)
		g.Go(func() error {
			return kafka.Consume(gctx, group, consumer, kafka.CapacityTopic)
		})
		g.Go(func() error {
			select {
			case <-consumer.Ready():
				log.Info("capacity consumer ready", zap.String("topic", kafka.CapacityTopic))
			case <-gctx.Done():
			}
			<-gctx.Done()
			return group.Close()
		})
	}

	err = g.Wait()
	log.Info("Graceful shutdown finished")
	return err
}

// Migrate applies pending migrations and exits.
func Migrate(ctx context.Context, cfg *config.Config) error {
	log := logger.NewLogger(cfg.Log, "lending")
	db, err := postgres.NewPostgresDB(ctx, &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		return errors.Wrap(err, "db init")
	}
	db.Close()
	log.Info("migrations applied", zap.String("db", cfg.Database.NameDB))
	return nil
}

// Sweep runs a single overdue sweep and reports how many loans it marked.
func Sweep(ctx context.Context, cfg *config.Config) (int, error) {
	log := logger.NewLogger(cfg.Log, "lending")
	defer log.Sync() //nolint:errcheck

	repo, closeRepo, err := openRepository(ctx, cfg, log)
	if err != nil {
		return 0, err
	}
	defer closeRepo()

	enqueuer, closeEnqueuer, err := openEnqueuer(cfg, log)
	if err != nil {
		return 0, err
	}
	defer closeEnqueuer()

	return newService(cfg, repo, log, enqueuer).SweepOverdue(ctx)
}

func newService(cfg *config.Config, repo repository.Repository, log *zap.Logger, enqueuer kafka.Enqueuer) *service.Service {
	return service.NewService(repo, log,
		service.WithClock(clock.System),
		service.WithEnqueuer(enqueuer),
		service.WithPolicy(service.Policy{
			MaxOpenLoans:    cfg.Ledger.MaxOpenLoans,
			DueSoonDays:     cfg.Ledger.DueSoonDays,
			DefaultLoanDays: cfg.Ledger.DefaultLoanDays,
		}),
	)
}

func openRepository(ctx context.Context, cfg *config.Config, log *zap.Logger) (repository.Repository, closer, error) {
	switch cfg.Ledger.Store {
	case config.StoreMemory:
		log.Warn("using in-memory store, state is lost on exit")
		return repository.NewMemory(clock.System, log), func() {}, nil
	case config.StorePostgres:
		db, err := postgres.NewPostgresDB(ctx, &cfg.Database, migrations.MigrationFiles)
		if err != nil {
			return nil, nil, errors.Wrap(err, "db init")
		}
		return repository.NewPostgres(db, log), db.Close, nil
	}
	return nil, nil, errors.Errorf("unknown store %q", cfg.Ledger.Store)
}

func openEnqueuer(cfg *config.Config, log *zap.Logger) (kafka.Enqueuer, closer, error) {
	if !cfg.Kafka.Enable {
		return kafka.NopEnqueuer{}, func() {}, nil
	}
	producer, err := kafka.NewProducer(cfg.Kafka)
	if err != nil {
		return nil, nil, errors.Wrap(err, "kafka.NewProducer")
	}
	return kafka.NewEnqueuer(producer), closeProducer(producer, log), nil
}

func closeProducer(p sarama.SyncProducer, log *zap.Logger) closer {
	return func() {
		if err := p.Close(); err != nil {
			log.Error("producer close", zap.Error(err))
		}
	}
}
