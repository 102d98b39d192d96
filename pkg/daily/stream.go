package daily

import (
	"math/bits"
	"math/rand/v2"
	"slices"

	"github.com/pkg/errors"
)

// Stream is a pseudo-random generator initialized from a seed.
type Stream struct {
	src *rand.PCG
}

// NewStream creates a stream using seed as its only source of entropy.
func NewStream(seed Seed) *Stream {
	return &Stream{src: rand.NewPCG(uint64(seed), 0)}
}

// Uint64 returns the next 64 pseudo-random bits.
func (s *Stream) Uint64() uint64 {
	return s.src.Uint64()
}

// IntN returns a value in [0, n). It panics if n <= 0.
func (s *Stream) IntN(n int) int {
	if n <= 0 {
		panic("invalid argument to IntN")
	}
	return int(s.uint64n(uint64(n)))
}

// IntRange returns a value in [lo, hi].
func (s *Stream) IntRange(lo, hi int) (int, error) {
	if lo > hi {
		return 0, errors.Errorf("invalid range [%d, %d]", lo, hi)
	}
	// width fits in uint64 even for the full int range
	width := uint64(hi) - uint64(lo)
	if width == ^uint64(0) {
		return int(s.Uint64()), nil
	}
	return lo + int(s.uint64n(width+1)), nil
}

// uint64n is Lemire's multiply-and-reject reduction. It is implemented here instead of using
// rand.Rand so the sequence of draws does not depend on the Go release.
func (s *Stream) uint64n(n uint64) uint64 {
	hi, lo := bits.Mul64(s.Uint64(), n)
	if lo < n {
		threshold := -n % n
		for lo < threshold {
			hi, lo = bits.Mul64(s.Uint64(), n)
		}
	}
	return hi
}

// ChooseOne returns one of the candidates.
// The result depends on the order of candidates.
func ChooseOne[T any](s *Stream, candidates []T) (T, error) {
	if len(candidates) == 0 {
		var zero T
		return zero, errors.WithStack(ErrEmptyCandidates)
	}
	return candidates[s.IntN(len(candidates))], nil
}

// ChooseN returns k distinct candidates in the order they were drawn.
func ChooseN[T any](s *Stream, candidates []T, k int) ([]T, error) {
	if len(candidates) == 0 && k > 0 {
		return nil, errors.WithStack(ErrEmptyCandidates)
	}
	if k < 0 || k > len(candidates) {
		return nil, errors.Wrapf(ErrInvalidCount, "%d of %d", k, len(candidates))
	}

	picked := slices.Clone(candidates)
	for i := range k {
		j := i + s.IntN(len(picked)-i)
		picked[i], picked[j] = picked[j], picked[i]
	}
	return picked[:k:k], nil
}

// Shuffle returns a permutation of seq. seq is not modified.
func Shuffle[T any](s *Stream, seq []T) []T {
	shuffled := slices.Clone(seq)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := s.IntN(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}
