package parse

import (
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/outofforest/dayseed/pkg/daily"
)

// Date parses date in the YYYY-MM-DD form.
func Date(date string) daily.DateKey {
	return lo.Must(daily.ParseDateKey(date))
}

// Location loads time zone by its IANA name.
func Location(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(errors.Wrapf(err, "invalid time zone %q", name))
	}
	return loc
}

