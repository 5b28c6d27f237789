// Package logger creates configured log/slog loggers plus attribute helpers
// for the domain's common log fields.
//
//	log := logger.New(logger.WithProduction("sportkit"))
//	log.Warn("failed to publish session event",
//		logger.SessionID(id),
//		logger.Error(err),
//	)
package logger
