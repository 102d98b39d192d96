package test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

// EventTimeout is the time each expected event is awaited for.
var EventTimeout = 3 * time.Second

// AssertForefrontEvents asserts that the next values received from ch are the expected ones.
func AssertForefrontEvents[T any](ctx context.Context, t *testing.T, ch <-chan T, expected ...T) bool {
	ok := true
	for i, e := range expected {
		v, err := receive(ctx, ch)
		if !assert.NoErrorf(t, err, "event %d", i) {
			return false
		}
		ok = assert.Equal(t, e, v) && ok
	}
	return ok
}

// AssertEvents is AssertForefrontEvents also asserting that nothing else is queued in ch.
func AssertEvents[T any](ctx context.Context, t *testing.T, ch <-chan T, expected ...T) bool {
	if !AssertForefrontEvents(ctx, t, ch, expected...) {
		return false
	}

	ok := true
	for range len(ch) {
		v, open := <-ch
		if !open {
			break
		}
		assert.Failf(t, "unexpected event", "%#v", v)
		ok = false
	}
	return ok
}

func receive[T any](ctx context.Context, ch <-chan T) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, EventTimeout)
	defer cancel()

	select {
	case <-ctx.Done():
		var zero T
		return zero, errors.WithStack(ctx.Err())
	case v, open := <-ch:
		if !open {
			return v, errors.New("channel closed")
		}
		return v, nil
	}
}
