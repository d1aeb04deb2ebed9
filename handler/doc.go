// Package handler provides type-safe HTTP request handling.
//
// A HandlerFunc receives a Context and a request value already decoded by
// one or more binders, and returns a Response that renders itself:
//
//	type lookupRequest struct {
//		Tenant string `path:"tenant"`
//		Form   string `path:"form"`
//	}
//
//	func lookup(ctx handler.Context, req lookupRequest) handler.Response {
//		form, err := svc.Lookup(ctx, req.Tenant, req.Form)
//		if err != nil {
//			return handler.JSONError(err)
//		}
//		return handler.JSON(form)
//	}
//
//	r.Get("/t/{tenant}/forms/{form}", handler.Wrap(lookup,
//		handler.WithBinders[handler.Context, lookupRequest](binder.Path()),
//		handler.WithErrorHandler[handler.Context, lookupRequest](handler.NewErrorHandler(log)),
//	))
//
// # Responses
//
// JSON and JSONError write the envelope {data, error}. RawJSON writes
// a body without the envelope for endpoints with their own wire contract.
// Blob writes binary content such as images and Redirect answers 303 See
// Other.
//
// # Errors
//
// Binding and rendering errors go to the ErrorHandler. HTTPError values
// carry a status code and a stable key. NewErrorHandler logs 4xx at warn
// and 5xx at error and answers with the JSON envelope.
package handler
