// Package requestid attaches a correlation identifier to every HTTP request.
//
// The middleware reuses a well-formed X-Request-ID sent by the client, or
// generates a UUIDv4 when the header is missing or malformed. The identifier
// is stored in the request context, echoed in the response header and
// exposed to the logger through LoggerExtractor:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
package requestid
