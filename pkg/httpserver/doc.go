// Package httpserver runs an http.Handler until its context ends, then shuts
// it down gracefully.
//
//	srv := httpserver.New(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// Liveness and readiness probes are provided by Health.
package httpserver
