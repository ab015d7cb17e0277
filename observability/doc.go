// Package observability wires OpenTelemetry tracing and metrics for the
// livechat client and its local twin server.
//
// Exporters are only created when Config.Enabled is set; otherwise the global
// no-op providers stay in place and instrumentation costs nothing.
//
//	shutdown, err := observability.Init(ctx, "livechat", cfg.Observability)
//	defer shutdown(ctx)
//
//	ctx, op := observability.StartOperation(ctx, metrics, "livechat", "start_chat")
//	defer func() { op.End(ctx, err) }()
package observability
