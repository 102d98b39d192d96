package dayseed

import (
	"time"

	"github.com/outofforest/dayseed/pkg/app"
	"github.com/outofforest/dayseed/pkg/candidates"
	"github.com/outofforest/dayseed/pkg/daily"
	"github.com/outofforest/dayseed/pkg/parse"
)

// Join combines many configurators into a single one.
func Join(configurators ...app.Configurator) app.Configurator {
	return func(c *app.Configuration) error {
		for _, configurator := range configurators {
			if err := configurator(c); err != nil {
				return err
			}
		}
		return nil
	}
}

// Listen defines the address HTTP server listens on, see tnet.Listen for the format.
func Listen(address string) app.Configurator {
	return func(c *app.Configuration) error {
		c.SetListenAddress(address)
		return nil
	}
}

// List defines candidate list.
func List(name string, items ...string) app.Configurator {
	return func(c *app.Configuration) error {
		c.AddLists(candidates.List{Name: name, Items: items})
		return nil
	}
}

// ListFiles defines files candidate lists are loaded from.
func ListFiles(paths ...string) app.Configurator {
	return func(c *app.Configuration) error {
		c.AddListFiles(paths...)
		return nil
	}
}

// Location defines the time zone in which the day changes.
func Location(loc *time.Location) app.Configurator {
	return func(c *app.Configuration) error {
		c.SetLocation(loc)
		return nil
	}
}

// Date freezes today at the date given in the YYYY-MM-DD form. It panics if the date is invalid.
func Date(date string) app.Configurator {
	return func(c *app.Configuration) error {
		c.SetDate(parse.Date(date))
		return nil
	}
}

// TimeZone defines the time zone by its IANA name. It panics if the name is unknown.
func TimeZone(name string) app.Configurator {
	return Location(parse.Location(name))
}

// Digest defines the digest used to derive seeds.
func Digest(digest daily.Digest) app.Configurator {
	return func(c *app.Configuration) error {
		c.SetDigest(digest)
		return nil
	}
}

// NTP corrects the clock using NTP servers. Default servers are used if none are given.
func NTP(servers ...string) app.Configurator {
	return func(c *app.Configuration) error {
		c.RequireNTP(servers...)
		return nil
	}
}
