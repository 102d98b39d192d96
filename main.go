package dayseed

import (
	"context"

	"go.uber.org/zap"

	"github.com/outofforest/dayseed/pkg/app"
	"github.com/outofforest/logger"
	"github.com/outofforest/run"
)

// Main is the entrypoint of the pick-of-the-day service.
func Main(configurators ...app.Configurator) {
	run.New().Run(context.Background(), "dayseed", func(ctx context.Context) error {
		err := app.Run(ctx, configurators...)
		if err != nil {
			logger.Get(ctx).Error("Error", zap.Error(err))
		}
		return err
	})
}
