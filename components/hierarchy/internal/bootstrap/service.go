package bootstrap

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/lattice-sh/control-plane/common"
	"github.com/lattice-sh/control-plane/common/mcasdoor"
	"github.com/lattice-sh/control-plane/common/mlog"
	"github.com/lattice-sh/control-plane/common/mmongo"
	"github.com/lattice-sh/control-plane/common/mpostgres"
	"github.com/lattice-sh/control-plane/common/mrabbitmq"
	"github.com/lattice-sh/control-plane/common/mredis"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/adapters/changefeed"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/adapters/eventbus"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/adapters/lock"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/adapters/reload"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/services/cleanup"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/services/command"
)

// Service is the application glue where every wired component lives,
// mirroring ConsumerService's role in the teacher tree: a thin Run()
// entrypoint over a Launcher and an App.
type Service struct {
	logger mlog.Logger
	cfg    *Config

	useCase   *command.UseCase
	processor *cleanup.Processor
	listener  *changefeed.Listener
	reload    *reload.Service
	locker    *lock.Locker

	hierarchyDB *mpostgres.PostgresConnection
	keycloakDB  *mpostgres.PostgresConnection
	redis       *mredis.RedisConnection
	rabbit      *mrabbitmq.RabbitMQConnection
	mongo       *mmongo.MongoConnection
	casdoorConn *mcasdoor.CasdoorConnection
	producer    *eventbus.Producer
}

// UseCase exposes the wired mutation pipeline, e.g. for an embedding CLI
// or test harness that wants to call it directly without going through a
// transport this module intentionally never builds (spec.md's explicit
// non-goal).
func (s *Service) UseCase() *command.UseCase { return s.useCase }

// Healthy reports each storage backend's and the IdP's connection state,
// keyed the way a readiness probe would report them -- this module builds
// no HTTP surface to serve that probe over (spec.md's explicit non-goal),
// so the check is exposed as a plain method for an embedder to poll.
func (s *Service) Healthy() map[string]bool {
	return map[string]bool{
		"postgres": s.hierarchyDB.Connected,
		"keycloak": s.keycloakDB.Connected,
		"redis":    s.redis.Connected,
		"rabbitmq": s.rabbit.Connected,
		"mongo":    s.mongo.Connected,
		"casdoor":  s.casdoorConn.Connected,
		"eventbus": s.producer.CheckHealth(),
	}
}

// Run starts every long-running component under one Launcher and blocks
// until they all finish.
func (s *Service) Run() {
	common.NewLauncher(
		common.WithLogger(s.logger),
		common.RunApp(ApplicationName, &processApp{service: s}),
	).Run()
}

// processApp adapts Service's three concurrently-running components
// (change-feed listener, reload subscriber, cleanup workers) to
// common.App's single Run(launcher) error shape, the way
// MultiQueueConsumer adapts a single RabbitMQ consumer set -- here three
// independent loops share one process-lifetime context instead of one
// RunConsumers() call, since changefeed.Listener.Run and reload.Service.Run
// are both ctx-driven rather than signal-driven.
type processApp struct {
	service *Service
}

func (a *processApp) Run(_ *common.Launcher) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup

	errs := make(chan error, 3)

	wg.Add(3)

	go func() {
		defer wg.Done()
		if err := a.service.listener.Run(ctx); err != nil {
			errs <- err
		}
	}()

	go func() {
		defer wg.Done()
		if err := a.service.reload.Run(ctx); err != nil {
			errs <- err
		}
	}()

	go func() {
		defer wg.Done()

		leaseDuration := secondsToDuration(a.service.cfg.LeaseDurationS)

		if err := cleanup.Run(ctx, a.service.processor, a.service.cfg.NumWorkers, leaseDuration, a.service.locker); err != nil {
			errs <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-errs:
		cancel()
		wg.Wait()
		close(errs)

		return err
	}

	cancel()
	wg.Wait()
	close(errs)

	return nil
}
