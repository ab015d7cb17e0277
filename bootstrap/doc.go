// Package bootstrap runs livechat binaries through a uniform lifecycle:
// validated config, logger setup, ordered component start, hooks and
// graceful shutdown on SIGINT/SIGTERM.
//
//	app, err := bootstrap.NewApp(&cfg)
//	if err != nil {
//	    return err
//	}
//	app.RegisterComponent(twinServer)
//	return app.Run(ctx)
//
// One-shot commands use RunTask, which shares startup and shutdown but
// returns when the task does.
package bootstrap
