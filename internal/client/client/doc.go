// Package client talks to the remote user directory API over HTTP/JSON.
//
// Every response is expected in the envelope
//
//	{"success": bool, "data": {...}, "message": "...", "errors": [{"message": "..."}]}
//
// and is mapped to Go errors as follows:
//
//   - transport failure, timeout, or a body that is not a JSON envelope:
//     ErrUnavailable;
//   - an envelope listing errors: *common.ValidationError with every message;
//   - 404: common.ErrorNotFound; 401 and 403: ErrUnauthorized;
//   - any other success:false: ErrRejected carrying the server message.
//
// Login maps every failure except ErrUnavailable to
// common.ErrInvalidCredentials.
//
// Requests carry an X-Request-ID header and, when the TokenSource yields
// one, "Authorization: Bearer <token>". The HTTP transport is instrumented
// with otelhttp so calls show up in traces when telemetry is enabled.
package client
