// Package logger builds the service's *slog.Logger and keeps attribute names consistent.
//
// New creates a logger configured with functional options: output format (text or JSON),
// minimum level, static attributes, and ContextExtractor callbacks that pull request-scoped
// values (such as the request id) out of the context on every log call.
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "formsaas"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
// Attribute helpers (Error, Component, Email, CustomerID, Step, ...) return empty attributes for
// empty input so they can be passed unconditionally. Email masks the local part because customer
// emails must not land in logs verbatim.
package logger
