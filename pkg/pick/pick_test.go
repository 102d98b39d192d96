package pick

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/outofforest/dayseed/pkg/candidates"
	"github.com/outofforest/dayseed/pkg/daily"
)

var (
	testDate  = daily.DateKey{Year: 2024, Month: time.March, Day: 1}
	testWords = []string{"alpha", "beta", "gamma", "delta"}
)

func newRegistry(t *testing.T) *candidates.Registry {
	r, err := candidates.NewRegistry(candidates.List{Name: "words", Items: testWords})
	require.NoError(t, err)
	return r
}

func TestDraw(t *testing.T) {
	requireT := require.New(t)

	res, err := Draw(newRegistry(t), daily.SHA256, Request{
		List:      "words",
		Date:      testDate,
		Namespace: "word-of-day",
		Count:     2,
		Shuffle:   true,
	})
	requireT.NoError(err)
	requireT.Equal(Result{
		Date:      "2024-03-01",
		Namespace: "word-of-day",
		List:      "words",
		Digest:    "sha256",
		Seed:      "12533564973908683516",
		ID:        "b3a5879f-b3d2-5467-a187-608e1673dc4e",
		Pick:      "alpha",
		Picks:     []string{"gamma", "alpha"},
		Shuffled:  []string{"delta", "beta", "gamma", "alpha"},
	}, res)
}

func TestDrawDefaultNamespace(t *testing.T) {
	requireT := require.New(t)

	res, err := Draw(newRegistry(t), daily.SHA256, Request{List: "words", Date: testDate})
	requireT.NoError(err)
	requireT.Equal("words", res.Namespace)
	requireT.Equal("6300001572827299462", res.Seed)
	requireT.Equal("521086f1-0507-5b66-8b9b-894a11142bda", res.ID)
	requireT.Equal("delta", res.Pick)
	requireT.Nil(res.Picks)
	requireT.Nil(res.Shuffled)
}

func TestDrawRepeatable(t *testing.T) {
	requireT := require.New(t)

	lists := newRegistry(t)
	req := Request{List: "words", Date: testDate, Count: 3, Shuffle: true}
	first, err := Draw(lists, daily.BLAKE2b256, req)
	requireT.NoError(err)
	requireT.Equal("blake2b-256", first.Digest)
	for range 100 {
		res, err := Draw(lists, daily.BLAKE2b256, req)
		requireT.NoError(err)
		requireT.Equal(first, res)
	}
}

func TestDrawErrors(t *testing.T) {
	requireT := require.New(t)

	lists := newRegistry(t)

	_, err := Draw(lists, daily.SHA256, Request{List: "colors", Date: testDate})
	requireT.ErrorIs(err, candidates.ErrUnknownList)

	_, err = Draw(lists, daily.SHA256, Request{List: "words", Date: daily.DateKey{Year: 2024, Month: 13, Day: 1}})
	requireT.ErrorAs(err, &daily.InvalidDateError{})

	_, err = Draw(lists, daily.SHA256, Request{List: "words", Date: testDate, Namespace: "a|b"})
	requireT.ErrorAs(err, &daily.InvalidNamespaceError{})

	_, err = Draw(lists, daily.SHA256, Request{List: "words", Date: testDate, Count: 5})
	requireT.ErrorIs(err, daily.ErrInvalidCount)
}
