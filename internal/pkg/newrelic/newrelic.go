package newrelic

import (
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/thqlabel/thqlabel/internal/pkg/logger"
	"github.com/thqlabel/thqlabel/internal/pkg/models"
)

// InitNewRelic initializes New Relic application based on configuration.
// It returns nil when New Relic is disabled or fails to start.
func InitNewRelic(configs *models.Config) *newrelic.Application {
	if !configs.NewRelic.Enabled || configs.NewRelic.LicenseKey == "" {
		logger.Info("New Relic is disabled or license key not provided")
		return nil
	}

	appName := configs.NewRelic.AppName
	if appName == "" {
		appName = configs.App.Name
	}

	nrApp, err := newrelic.NewApplication(
		newrelic.ConfigAppName(appName),
		newrelic.ConfigLicense(configs.NewRelic.LicenseKey),
		newrelic.ConfigDistributedTracerEnabled(true),
		newrelic.ConfigAppLogForwardingEnabled(configs.NewRelic.ForwardLogs),
		newrelic.ConfigAppLogDecoratingEnabled(true),
	)
	if err != nil {
		logger.Warn("Failed to initialize New Relic, continuing without New Relic", logger.Err(err))
		return nil
	}

	logger.Info("New Relic enabled", logger.String("app_name", appName))
	return nrApp
}
