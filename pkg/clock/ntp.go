package clock

import (
	"context"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/beevik/ntp"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/outofforest/logger"
)

// DefaultServers is the list of NTP servers used if none are configured.
var DefaultServers = []string{
	"0.pool.ntp.org",
	"1.pool.ntp.org",
	"2.pool.ntp.org",
	"3.pool.ntp.org",
	"time.cloudflare.com",
	"time.google.com",
}

const (
	refreshInterval = time.Hour
	retryInterval   = 10 * time.Second
)

// NTP is the system clock corrected by the offset measured against NTP servers.
// Hosts serving the same day must agree on when midnight comes, even if their clocks drift.
type NTP struct {
	servers []string
	query   func(server string) (time.Duration, error)
	refresh time.Duration
	retry   time.Duration

	offset atomic.Int64
	synced atomic.Bool
}

// NewNTP creates NTP clock. Until the first successful sync it reports system time.
func NewNTP(servers ...string) *NTP {
	if len(servers) == 0 {
		servers = DefaultServers
	}
	return &NTP{
		servers: servers,
		query:   queryOffset,
		refresh: refreshInterval,
		retry:   retryInterval,
	}
}

// Now returns the corrected current time.
func (c *NTP) Now() time.Time {
	return time.Now().Add(c.Offset())
}

// Offset returns the last measured offset of the system clock.
func (c *NTP) Offset() time.Duration {
	return time.Duration(c.offset.Load())
}

// Synced tells if offset has been measured at least once.
func (c *NTP) Synced() bool {
	return c.synced.Load()
}

// Sync measures the offset using the server.
func (c *NTP) Sync(server string) error {
	offset, err := c.query(server)
	if err != nil {
		return err
	}
	c.offset.Store(int64(offset))
	c.synced.Store(true)
	return nil
}

// Run keeps the offset up to date until ctx is canceled.
func (c *NTP) Run(ctx context.Context) error {
	log := logger.Get(ctx)
	for {
		server := c.servers[rand.IntN(len(c.servers))]
		if err := c.Sync(server); err != nil {
			log.Error("Getting time from NTP server failed.", zap.String("server", server), zap.Error(err))
			select {
			case <-ctx.Done():
				return errors.WithStack(ctx.Err())
			case <-time.After(c.retry):
				continue
			}
		}

		log.Debug("Clock offset measured", zap.String("server", server), zap.Duration("offset", c.Offset()))

		select {
		case <-ctx.Done():
			return errors.WithStack(ctx.Err())
		case <-time.After(c.refresh):
		}
	}
}

func queryOffset(server string) (time.Duration, error) {
	resp, err := ntp.Query(server)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	if err := resp.Validate(); err != nil {
		return 0, errors.Wrapf(err, "invalid response from %s", server)
	}
	return resp.ClockOffset, nil
}
