package main

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

const appID = "storefront"

type config struct {
	ServeRESTAddress string `envconfig:"serve_rest_address" default:":8080"`

	// StorageDriver selects the slot store: "file" or "mysql".
	StorageDriver string `envconfig:"storage_driver" default:"file"`
	DataDir       string `envconfig:"data_dir" default:"data"`
	DatabaseDSN   string `envconfig:"database_dsn"`

	// RedisAddress, when set, moves the token slot to redis.
	RedisAddress string `envconfig:"redis_address"`

	FeedURL     string        `envconfig:"feed_url" default:"https://dummyjson.com"`
	FeedTimeout time.Duration `envconfig:"feed_timeout" default:"10s"`

	CheckoutDelay  time.Duration `envconfig:"checkout_delay" default:"1s"`
	SeedDemoOrders bool          `envconfig:"seed_demo_orders" default:"true"`

	// StartAuthenticated reproduces the demo's always-logged-in-as-admin
	// seed. Off by default.
	StartAuthenticated bool `envconfig:"start_authenticated" default:"false"`
}

func parseEnv() (*config, error) {
	c := new(config)
	if err := envconfig.Process(appID, c); err != nil {
		return nil, errors.Wrap(err, "parse environment")
	}
	return c, nil
}
