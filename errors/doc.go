// Package errors defines the error taxonomy shared by the livechat packages.
//
// Two families matter to callers. Configuration errors (CLIENT_NOT_BOUND)
// report misuse of an adapter that was built without a transport; they are
// raised before any network I/O and are never retryable. Request errors come
// from the httpclient package unchanged. Everything else here (validation,
// unexpected-response) describes a payload the caller or the remote side got
// wrong.
package errors
