package daily

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewDateKey(t *testing.T) {
	requireT := require.New(t)

	d, err := NewDateKey(2024, time.March, 1)
	requireT.NoError(err)
	requireT.Equal(DateKey{Year: 2024, Month: time.March, Day: 1}, d)
	requireT.Equal("2024-03-01", d.String())

	_, err = NewDateKey(2024, time.February, 29)
	requireT.NoError(err)
	_, err = NewDateKey(2000, time.February, 29)
	requireT.NoError(err)
}

func TestNewDateKeyInvalid(t *testing.T) {
	for _, tc := range []DateKey{
		{Year: 2024, Month: 13, Day: 1},
		{Year: 2024, Month: 0, Day: 1},
		{Year: 2024, Month: time.February, Day: 30},
		{Year: 2023, Month: time.February, Day: 29},
		{Year: 1900, Month: time.February, Day: 29},
		{Year: 2024, Month: time.April, Day: 31},
		{Year: 2024, Month: time.January, Day: 0},
		{Year: 0, Month: time.January, Day: 1},
		{Year: 10000, Month: time.January, Day: 1},
	} {
		t.Run(tc.String(), func(t *testing.T) {
			_, err := NewDateKey(tc.Year, tc.Month, tc.Day)
			var dateErr InvalidDateError
			require.ErrorAs(t, err, &dateErr)
			require.Equal(t, tc.Month, dateErr.Month)
		})
	}
}

func TestParseDateKey(t *testing.T) {
	requireT := require.New(t)

	d, err := ParseDateKey("2024-03-01")
	requireT.NoError(err)
	requireT.Equal(DateKey{Year: 2024, Month: time.March, Day: 1}, d)

	d, err = ParseDateKey("0001-01-01")
	requireT.NoError(err)
	requireT.Equal("0001-01-01", d.String())

	for _, s := range []string{"", "2024-3-01", "2024/03/01", "2024-13-01", "2024-02-30", "+024-03-01", "2024-03-1x",
		"20240301"} {
		_, err := ParseDateKey(s)
		var dateErr InvalidDateError
		requireT.ErrorAs(err, &dateErr, s)
		requireT.Equal(s, dateErr.Value)
	}
}

func TestDateKeyFromTime(t *testing.T) {
	requireT := require.New(t)

	loc := time.FixedZone("UTC+10", 10*3600)
	ts := time.Date(2024, time.February, 29, 23, 30, 0, 0, time.UTC)
	requireT.Equal("2024-02-29", DateKeyFromTime(ts).String())
	requireT.Equal("2024-03-01", DateKeyFromTime(ts.In(loc)).String())
}

func TestAddDays(t *testing.T) {
	requireT := require.New(t)

	d := DateKey{Year: 2024, Month: time.February, Day: 28}
	requireT.Equal("2024-02-29", d.AddDays(1).String())
	requireT.Equal("2024-03-01", d.AddDays(2).String())
	requireT.Equal("2023-12-31", d.AddDays(-59).String())
}
