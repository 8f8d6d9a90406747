// Package shutdown coordinates graceful termination of the server.
//
// A Handler waits for SIGINT, SIGTERM, a programmatic Trigger or the
// cancellation of its context, then runs the registered hooks in reverse
// order under one shared timeout.
//
// Usage:
//
//	h := shutdown.NewHandler(10 * time.Second)
//	h.OnShutdown("resp", srv.Shutdown)
//	err := h.Wait(ctx)
package shutdown
