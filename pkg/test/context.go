package test

import (
	"context"
	"testing"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/outofforest/logger"
)

// Context returns context with logger, canceled when the test finishes.
func Context(t *testing.T) context.Context {
	ctx, cancel := context.WithCancel(logger.WithLogger(context.Background(), lo.Must(zap.NewDevelopment())))
	t.Cleanup(cancel)
	return ctx
}
