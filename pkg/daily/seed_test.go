package daily

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testDate = DateKey{Year: 2024, Month: time.March, Day: 1}

func TestComputeSeedKnownValues(t *testing.T) {
	requireT := require.New(t)

	seed, err := ComputeSeed(testDate, "word-of-day")
	requireT.NoError(err)
	requireT.Equal(Seed(12533564973908683516), seed)

	seed, err = ComputeSeed(testDate, "")
	requireT.NoError(err)
	requireT.Equal(Seed(4704225313051380231), seed)

	seed, err = BLAKE2b256.Seed(testDate, "word-of-day")
	requireT.NoError(err)
	requireT.Equal(Seed(3604454779317314532), seed)
}

func TestComputeSeedDeterministic(t *testing.T) {
	requireT := require.New(t)

	for _, digest := range []Digest{SHA256, BLAKE2b256} {
		d := testDate
		for range 100 {
			seed1, err := digest.Seed(d, "word-of-day")
			requireT.NoError(err)
			seed2, err := digest.Seed(d, "word-of-day")
			requireT.NoError(err)
			requireT.Equal(seed1, seed2)
			d = d.AddDays(1)
		}
	}
}

func TestComputeSeedNoCollisionsAcrossDates(t *testing.T) {
	requireT := require.New(t)

	seeds := map[Seed]DateKey{}
	d := DateKey{Year: 2000, Month: time.January, Day: 1}
	for range 10000 {
		seed, err := ComputeSeed(d, "word-of-day")
		requireT.NoError(err)
		prev, exists := seeds[seed]
		requireT.False(exists, "%s collides with %s", d, prev)
		seeds[seed] = d
		d = d.AddDays(1)
	}
}

func TestComputeSeedNamespaceIsolation(t *testing.T) {
	requireT := require.New(t)

	namespaces := []Namespace{"a", "b", "word-of-day", "quote-of-day", "default-", "A", " a"}
	for i, ns1 := range namespaces {
		for _, ns2 := range namespaces[i+1:] {
			seed1, err := ComputeSeed(testDate, ns1)
			requireT.NoError(err)
			seed2, err := ComputeSeed(testDate, ns2)
			requireT.NoError(err)
			requireT.NotEqual(seed1, seed2, "%q vs %q", ns1, ns2)
		}
	}
}

func TestComputeSeedDefaultNamespace(t *testing.T) {
	requireT := require.New(t)

	seed1, err := ComputeSeed(testDate, "")
	requireT.NoError(err)
	seed2, err := ComputeSeed(testDate, DefaultNamespace)
	requireT.NoError(err)
	requireT.Equal(seed1, seed2)
}

func TestComputeSeedDigestsDiffer(t *testing.T) {
	requireT := require.New(t)

	seed1, err := SHA256.Seed(testDate, "word-of-day")
	requireT.NoError(err)
	seed2, err := BLAKE2b256.Seed(testDate, "word-of-day")
	requireT.NoError(err)
	requireT.NotEqual(seed1, seed2)
	requireT.Equal("sha256", SHA256.String())
	requireT.Equal("blake2b-256", BLAKE2b256.String())
}

func TestComputeSeedInvalidDate(t *testing.T) {
	requireT := require.New(t)

	_, err := ComputeSeed(DateKey{Year: 2024, Month: 13, Day: 1}, "word-of-day")
	requireT.ErrorAs(err, &InvalidDateError{})

	_, err = ComputeSeed(DateKey{Year: 2024, Month: time.February, Day: 30}, "word-of-day")
	requireT.ErrorAs(err, &InvalidDateError{})

	_, err = StreamFor(DateKey{}, "word-of-day")
	requireT.ErrorAs(err, &InvalidDateError{})
}

func TestComputeSeedInvalidNamespace(t *testing.T) {
	requireT := require.New(t)

	_, err := ComputeSeed(testDate, "word|of-day")
	var nsErr InvalidNamespaceError
	requireT.ErrorAs(err, &nsErr)
	requireT.Equal("word|of-day", nsErr.Namespace)

	_, err = DayID(testDate, "|")
	requireT.ErrorAs(err, &InvalidNamespaceError{})
}

func TestMaterial(t *testing.T) {
	requireT := require.New(t)

	m, err := Material(testDate, "word-of-day")
	requireT.NoError(err)
	requireT.Equal(SeedMaterial("2024-03-01|word-of-day"), m)

	m, err = Material(testDate, "")
	requireT.NoError(err)
	requireT.Equal(SeedMaterial("2024-03-01|default"), m)
}

func TestDayID(t *testing.T) {
	requireT := require.New(t)

	id1, err := DayID(testDate, "word-of-day")
	requireT.NoError(err)
	id2, err := DayID(testDate, "word-of-day")
	requireT.NoError(err)
	requireT.Equal(id1, id2)
	requireT.Equal("b3a5879f-b3d2-5467-a187-608e1673dc4e", id1.String())
	requireT.EqualValues(5, id1.Version())

	id3, err := DayID(testDate.AddDays(1), "word-of-day")
	requireT.NoError(err)
	requireT.NotEqual(id1, id3)

	id4, err := DayID(testDate, "quote-of-day")
	requireT.NoError(err)
	requireT.NotEqual(id1, id4)
}

func TestDigestByName(t *testing.T) {
	requireT := require.New(t)

	d, err := DigestByName("")
	requireT.NoError(err)
	requireT.Equal(SHA256.String(), d.String())

	d, err = DigestByName("blake2b-256")
	requireT.NoError(err)
	requireT.Equal(BLAKE2b256.String(), d.String())

	_, err = DigestByName("md5")
	requireT.Error(err)
}
