package logger

import (
	"go.uber.org/zap"
)

// New builds the service logger. Production mode emits JSON, anything else
// uses the human-readable development encoder.
func New(env string) (*zap.Logger, error) {
	var zapConfig zap.Config
	if env == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.OutputPaths = []string{"stdout"}

	return zapConfig.Build()
}
