package app

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/outofforest/dayseed/pkg/candidates"
	"github.com/outofforest/dayseed/pkg/clock"
	"github.com/outofforest/dayseed/pkg/daily"
	"github.com/outofforest/dayseed/pkg/pick"
	"github.com/outofforest/dayseed/pkg/thttp"
	"github.com/outofforest/dayseed/pkg/tnet"
	"github.com/outofforest/logger"
	"github.com/outofforest/parallel"
)

// DefaultListenAddress is the address HTTP server listens on if none is configured.
const DefaultListenAddress = "localhost:8080"

// ServiceConfig contains service configuration.
type ServiceConfig struct {
	Name   string
	OnExit parallel.OnExit
	TaskFn parallel.Task
}

// PrepareFn is the function type used to register functions run before services start.
type PrepareFn func(ctx context.Context) error

// Configuration collects settings of the application.
type Configuration struct {
	listenAddress string
	lists         []candidates.List
	listFiles     []string
	location      *time.Location
	digest        daily.Digest
	clock         clock.Clock
	date          daily.DateKey
	ntpServers    []string
	useNTP        bool
	prepare       []PrepareFn
	services      []ServiceConfig
}

// SetListenAddress sets the address of the HTTP server.
func (c *Configuration) SetListenAddress(address string) {
	c.listenAddress = address
}

// AddLists adds candidate lists.
func (c *Configuration) AddLists(lists ...candidates.List) {
	c.lists = append(c.lists, lists...)
}

// AddListFiles adds files candidate lists are loaded from.
func (c *Configuration) AddListFiles(paths ...string) {
	c.listFiles = append(c.listFiles, paths...)
}

// SetLocation sets the time zone deciding when the day changes.
func (c *Configuration) SetLocation(loc *time.Location) {
	c.location = loc
}

// SetDigest sets the digest used to derive seeds.
func (c *Configuration) SetDigest(digest daily.Digest) {
	c.digest = digest
}

// SetClock sets the clock telling today.
func (c *Configuration) SetClock(clk clock.Clock) {
	c.clock = clk
}

// SetDate freezes today at the date, in the configured time zone.
func (c *Configuration) SetDate(date daily.DateKey) {
	c.date = date
}

// RequireNTP is called if the clock should be corrected using NTP servers.
func (c *Configuration) RequireNTP(servers ...string) {
	c.useNTP = true
	c.ntpServers = append(c.ntpServers, servers...)
}

// Prepare adds prepare function to be called.
func (c *Configuration) Prepare(prepares ...PrepareFn) {
	c.prepare = append(c.prepare, prepares...)
}

// StartServices configures services to be started next to the HTTP server.
func (c *Configuration) StartServices(services ...ServiceConfig) {
	c.services = append(c.services, services...)
}

// Configurator is the function called to collect configuration.
type Configurator func(c *Configuration) error

// Configure applies configurators.
func Configure(configurators ...Configurator) (*Configuration, error) {
	cfg := &Configuration{
		listenAddress: DefaultListenAddress,
		location:      time.UTC,
		digest:        daily.SHA256,
		clock:         clock.System,
	}
	for _, c := range configurators {
		if err := c(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// Handler builds HTTP handler serving the picks.
func (c *Configuration) Handler() (http.Handler, error) {
	lists := append([]candidates.List(nil), c.lists...)
	for _, path := range c.listFiles {
		l, err := candidates.Load(path)
		if err != nil {
			return nil, err
		}
		lists = append(lists, l)
	}
	if len(lists) == 0 {
		return nil, errors.New("no candidate lists defined")
	}

	registry, err := candidates.NewRegistry(lists...)
	if err != nil {
		return nil, err
	}

	clk := c.clock
	if c.date != (daily.DateKey{}) {
		clk = clock.Fixed(c.date.Time(c.location))
	}

	return pick.NewHandler(pick.Config{
		Lists:    registry,
		Clock:    clk,
		Location: c.location,
		Digest:   c.digest,
	}), nil
}

// Run runs the application.
func Run(ctx context.Context, configurators ...Configurator) error {
	cfg, err := Configure(configurators...)
	if err != nil {
		return err
	}

	if cfg.useNTP {
		ntpClock := clock.NewNTP(cfg.ntpServers...)
		cfg.clock = ntpClock
		cfg.StartServices(ServiceConfig{
			Name:   "ntp",
			OnExit: parallel.Fail,
			TaskFn: ntpClock.Run,
		})
	}

	handler, err := cfg.Handler()
	if err != nil {
		return err
	}

	l, err := tnet.Listen(ctx, cfg.listenAddress)
	if err != nil {
		return err
	}
	defer l.Close()

	server := thttp.NewServer(l, thttp.Config{Handler: handler}, thttp.Middleware(thttp.StandardMiddleware))
	cfg.StartServices(ServiceConfig{
		Name:   "http",
		OnExit: parallel.Fail,
		TaskFn: server.Run,
	})

	if err := runPrepares(ctx, cfg.prepare); err != nil {
		return err
	}

	return runServices(ctx, cfg.services)
}

func runPrepares(ctx context.Context, prepare []PrepareFn) error {
	for _, p := range prepare {
		if err := p(ctx); err != nil {
			return err
		}
	}
	return nil
}

func runServices(ctx context.Context, services []ServiceConfig) error {
	return parallel.Run(ctx, func(ctx context.Context, spawn parallel.SpawnFn) error {
		for _, s := range services {
			spawn(s.Name, s.OnExit, func(ctx context.Context) error {
				ctx = logger.With(ctx, zap.String("service", s.Name))
				log := logger.Get(ctx)

				log.Info("Starting service")
				defer log.Info("Service stopped")

				return s.TaskFn(ctx)
			})
		}
		return nil
	})
}
