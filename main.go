package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"storefront/pkg/app"
	"storefront/pkg/domain/model"
	"storefront/pkg/infrastructure/eventlog"
	"storefront/pkg/infrastructure/feed"
	"storefront/pkg/infrastructure/memory"
	"storefront/pkg/infrastructure/storage"
	"storefront/transport"
)

func main() {
	log.SetFormatter(&log.JSONFormatter{})

	cliApp := &cli.App{
		Name:  appID,
		Usage: "storefront state core with an HTTP surface for the view layer",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the storefront server",
				Action: serve,
			},
		},
		DefaultCommand: "serve",
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.WithError(err).Fatal("storefront exited")
	}
}

func serve(*cli.Context) error {
	cfg, err := parseEnv()
	if err != nil {
		return err
	}

	slots, cleanup, err := newSlotStore(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	tokens := model.SlotStore(nil)
	if cfg.RedisAddress != "" {
		redisSlots := storage.NewRedisSlotStore(cfg.RedisAddress, appID)
		defer redisSlots.Close()
		tokens = redisSlots
	}

	orders := memory.NewOrderRepository()
	if cfg.SeedDemoOrders {
		orders.Seed(memory.DemoOrders())
	}

	store := app.New(app.Config{StartAuthenticated: cfg.StartAuthenticated}, app.Deps{
		Feed:       feed.NewClient(cfg.FeedURL, cfg.FeedTimeout),
		Slots:      slots,
		Tokens:     tokens,
		Orders:     orders,
		Dispatcher: eventlog.NewDispatcher(),
		Checkout:   app.CheckoutDeps{ProcessingDelay: cfg.CheckoutDelay},
	})

	if err := store.Initialize(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Warm the catalog; a failed fetch leaves the error on the store and the
	// view retries by hitting the refresh endpoint.
	go func() {
		if err := store.RefreshCatalog(ctx); err != nil {
			log.WithError(err).Warn("initial catalog refresh failed")
		}
	}()

	srv := &http.Server{Addr: cfg.ServeRESTAddress, Handler: transport.Router(store)}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithField("url", cfg.ServeRESTAddress).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("Shutting down...")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}

func newSlotStore(cfg *config) (model.SlotStore, func(), error) {
	switch cfg.StorageDriver {
	case "mysql":
		db, err := sqlx.Connect("mysql", cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := storage.Migrate(db); err != nil {
			db.Close()
			return nil, nil, err
		}
		return storage.NewSQLSlotStore(db), func() { db.Close() }, nil
	default:
		slots, err := storage.NewFileSlotStore(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return slots, func() {}, nil
	}
}
