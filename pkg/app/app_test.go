package app

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/outofforest/dayseed/pkg/candidates"
	"github.com/outofforest/dayseed/pkg/clock"
	"github.com/outofforest/dayseed/pkg/daily"
	"github.com/outofforest/dayseed/pkg/pick"
	"github.com/outofforest/dayseed/pkg/test"
	"github.com/outofforest/parallel"
)

var errDone = errors.New("done")

func TestConfigure(t *testing.T) {
	requireT := require.New(t)

	cfg, err := Configure()
	requireT.NoError(err)
	requireT.Equal(DefaultListenAddress, cfg.listenAddress)
	requireT.Equal(time.UTC, cfg.location)
	requireT.Equal(daily.SHA256.String(), cfg.digest.String())

	_, err = cfg.Handler()
	requireT.Error(err)

	_, err = Configure(func(c *Configuration) error {
		return errors.New("broken")
	})
	requireT.Error(err)
}

func TestHandlerLoadsFiles(t *testing.T) {
	requireT := require.New(t)

	path := filepath.Join(t.TempDir(), "colors.txt")
	requireT.NoError(os.WriteFile(path, []byte("red\ngreen\n"), 0o600))

	cfg, err := Configure(func(c *Configuration) error {
		c.AddLists(candidates.List{Name: "words", Items: []string{"alpha"}})
		c.AddListFiles(path)
		return nil
	})
	requireT.NoError(err)
	_, err = cfg.Handler()
	requireT.NoError(err)

	cfg.AddListFiles(filepath.Join(t.TempDir(), "missing.txt"))
	_, err = cfg.Handler()
	requireT.Error(err)
}

func TestRun(t *testing.T) {
	requireT := require.New(t)
	ctx := test.Context(t)

	socket := filepath.Join(t.TempDir(), "dayseed.sock")
	client := &http.Client{
		Transport: &http.Transport{
			DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
				var d net.Dialer
				return d.DialContext(ctx, "unix", socket)
			},
		},
	}

	var prepared bool
	resultCh := make(chan pick.Result, 1)
	err := Run(ctx, func(c *Configuration) error {
		c.SetListenAddress("unix:" + socket)
		c.SetClock(clock.Fixed(time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)))
		c.AddLists(candidates.List{Name: "words", Items: []string{"alpha", "beta", "gamma", "delta"}})
		c.Prepare(func(ctx context.Context) error {
			prepared = true
			return nil
		})
		c.StartServices(ServiceConfig{
			Name:   "client",
			OnExit: parallel.Fail,
			TaskFn: func(ctx context.Context) error {
				req, err := http.NewRequestWithContext(ctx, http.MethodGet,
					"http://dayseed/pick?list=words&namespace=word-of-day", nil)
				if err != nil {
					return err
				}
				resp, err := client.Do(req)
				if err != nil {
					return err
				}
				defer resp.Body.Close()

				var res pick.Result
				if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
					return err
				}
				resultCh <- res
				return errDone
			},
		})
		return nil
	})
	requireT.ErrorIs(err, errDone)
	requireT.True(prepared)

	res := <-resultCh
	requireT.Equal("2024-03-01", res.Date)
	requireT.Equal("alpha", res.Pick)
}
