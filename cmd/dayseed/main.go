package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/outofforest/dayseed"
	"github.com/outofforest/dayseed/pkg/app"
	"github.com/outofforest/dayseed/pkg/candidates"
	"github.com/outofforest/dayseed/pkg/clock"
	"github.com/outofforest/dayseed/pkg/daily"
	"github.com/outofforest/dayseed/pkg/pick"
	"github.com/outofforest/logger"
	"github.com/outofforest/run"
)

// serverConfig is read from environment when --serve is set.
type serverConfig struct {
	Listen     string   `env:"DAYSEED_LISTEN" envDefault:"localhost:8080"`
	Lists      []string `env:"DAYSEED_LISTS"`
	NTP        bool     `env:"DAYSEED_NTP"`
	NTPServers []string `env:"DAYSEED_NTP_SERVERS"`
	Timezone   string   `env:"DAYSEED_TIMEZONE" envDefault:"UTC"`
	Date       string   `env:"DAYSEED_DATE"`
	Digest     string   `env:"DAYSEED_DIGEST" envDefault:"sha256"`
}

type flags struct {
	serve      bool
	server     string
	list       string
	date       string
	timezone   string
	namespace  string
	candidates string
	listFile   string
	count      int
	shuffle    bool
	digest     string
}

func main() {
	var f flags
	fs := pflag.NewFlagSet("dayseed", pflag.ExitOnError)
	// logger flags are parsed by run
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.BoolVar(&f.serve, "serve", false, "Run HTTP service configured by DAYSEED_* environment variables")
	fs.StringVar(&f.server, "server", "", "URL of the service to ask instead of drawing locally")
	fs.StringVar(&f.list, "list", "", "Name of the candidate list, on the service or of the local candidates")
	fs.StringVar(&f.date, "date", "", "Date in YYYY-MM-DD form, today if empty")
	fs.StringVar(&f.timezone, "timezone", "UTC", "Time zone deciding what today is")
	fs.StringVar(&f.namespace, "namespace", "", "Namespace of the stream, name of the list if empty")
	fs.StringVar(&f.candidates, "candidates", "", "Comma separated candidates")
	fs.StringVar(&f.listFile, "list-file", "", "File containing candidates, one per line, may be xz-compressed")
	fs.IntVar(&f.count, "count", 0, "Number of distinct extra picks")
	fs.BoolVar(&f.shuffle, "shuffle", false, "Print the list in the order of the day")
	fs.StringVar(&f.digest, "digest", daily.SHA256.String(), "Digest deriving seeds: sha256 or blake2b-256")
	_ = fs.Parse(os.Args[1:])

	if f.serve {
		dayseed.Main(serveConfigurator())
		return
	}

	run.New().Run(context.Background(), "dayseed", func(ctx context.Context) error {
		err := draw(ctx, f)
		if err != nil {
			logger.Get(ctx).Error("Error", zap.Error(err))
		}
		return err
	})
}

func serveConfigurator() app.Configurator {
	return func(c *app.Configuration) error {
		var cfg serverConfig
		if err := env.Parse(&cfg); err != nil {
			return errors.WithStack(err)
		}
		loc, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			return errors.WithStack(err)
		}
		digest, err := daily.DigestByName(cfg.Digest)
		if err != nil {
			return err
		}

		configurators := []app.Configurator{
			dayseed.Listen(cfg.Listen),
			dayseed.ListFiles(cfg.Lists...),
			dayseed.Location(loc),
			dayseed.Digest(digest),
		}
		if cfg.Date != "" {
			date, err := daily.ParseDateKey(cfg.Date)
			if err != nil {
				return err
			}
			configurators = append(configurators, func(c *app.Configuration) error {
				c.SetDate(date)
				return nil
			})
		}
		if cfg.NTP || len(cfg.NTPServers) > 0 {
			configurators = append(configurators, dayseed.NTP(cfg.NTPServers...))
		}
		return dayseed.Join(configurators...)(c)
	}
}

func draw(ctx context.Context, f flags) error {
	loc, err := time.LoadLocation(f.timezone)
	if err != nil {
		return errors.WithStack(err)
	}

	req := pick.Request{
		Namespace: daily.Namespace(f.namespace),
		Count:     f.count,
		Shuffle:   f.shuffle,
	}
	if f.date != "" {
		if req.Date, err = daily.ParseDateKey(f.date); err != nil {
			return err
		}
	} else if f.server == "" {
		req.Date = clock.Today(clock.System, loc)
	}

	var res pick.Result
	if f.server != "" {
		if f.list == "" {
			return errors.New("--list is required with --server")
		}
		req.List = f.list
		res, err = pick.NewClient(ctx, f.server).Pick(ctx, req)
	} else {
		res, err = drawLocally(f, req)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return errors.WithStack(enc.Encode(res))
}

func drawLocally(f flags, req pick.Request) (pick.Result, error) {
	digest, err := daily.DigestByName(f.digest)
	if err != nil {
		return pick.Result{}, err
	}

	list := candidates.List{Name: "candidates", Items: candidates.Split(f.candidates)}
	if f.listFile != "" {
		if list, err = candidates.Load(f.listFile); err != nil {
			return pick.Result{}, err
		}
	}
	if f.list != "" {
		list.Name = f.list
	}
	if len(list.Items) == 0 {
		return pick.Result{}, errors.WithStack(daily.ErrEmptyCandidates)
	}

	lists, err := candidates.NewRegistry(list)
	if err != nil {
		return pick.Result{}, err
	}
	req.List = list.Name
	return pick.Draw(lists, digest, req)
}
