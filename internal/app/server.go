package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

// Start binds the listeners, prints the banner and serves until a
// termination signal arrives. The returned channel is closed on shutdown.
// A listener that cannot bind is fatal.
func (a *App) Start() <-chan struct{} {
	terminateChan := make(chan struct{})

	l := a.listen("HTTP Server", a.httpServer.Addr)
	printBanner(a.banner, l.Addr().String())
	a.serve("HTTP Server", a.httpServer, l)

	if a.adminServer != nil {
		al := a.listen("Admin Server", a.adminServer.Addr)
		a.serve("Admin Server", a.adminServer, al)
	}

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
		defer signal.Stop(sigint)

		select {
		case <-sigint:
		case <-a.ctx.Done():
		}

		if a.cancel != nil {
			a.cancel()
		}

		close(terminateChan)

		slog.Info("application gracefully shutdown")
	}()

	return terminateChan
}

func (a *App) listen(name, addr string) net.Listener {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		slog.Error("failed to bind listener", "name", name, "address", addr, "error", err)
		os.Exit(1)
	}

	slog.Info("listener bound", "name", name, "address", l.Addr().String())

	return l
}

func (a *App) serve(name string, srv *http.Server, l net.Listener) {
	err := a.goroutine.Go(a.ctx, name, func(context.Context) error {
		if err := srv.Serve(l); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to serve", "name", name, "error", err)
			os.Exit(1)
		}
		return nil
	})
	if err != nil {
		slog.Error("failed to schedule server", "name", name, "error", err)
		os.Exit(1)
	}
}

// Serve runs the stopwatch and admin servers on the provided listeners for
// tests. A nil admin listener leaves the admin server off.
func (a *App) Serve(l, admin net.Listener) <-chan error {
	errChan := make(chan error, 2)

	go func() {
		errChan <- a.httpServer.Serve(l)
	}()

	if admin != nil && a.adminServer != nil {
		go func() {
			errChan <- a.adminServer.Serve(admin)
		}()
	}

	return errChan
}

// Stop gracefully shuts down the servers and closes resources.
func (a *App) Stop(ctx context.Context) {
	if a.cancel != nil {
		a.cancel()
	}

	if err := a.httpServer.Shutdown(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to close resources", "name", "HTTP Server", "error", err)
	}
	if a.adminServer != nil {
		if err := a.adminServer.Shutdown(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to close resources", "name", "Admin Server", "error", err)
		}
	}

	slog.InfoContext(ctx, "waiting for all goroutine to finish")
	if err := a.goroutine.Wait(); err != nil {
		slog.ErrorContext(ctx, "error from goroutines executions", "error", err)
	}
	slog.InfoContext(ctx, "all goroutines have finished successfully")

	for _, closer := range a.closers {
		if err := closer.fn(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to close resources", "name", closer.name, "error", err)
		}
	}
}

func printBanner(w io.Writer, addr string) {
	//nolint:errcheck // informational output
	fmt.Fprintf(w, "Timing server running on http://%s\n"+
		"Endpoints:\n"+
		"  /now            - Monotonic nanoseconds since server start\n"+
		"  /start?name=XXX - Start named timer\n"+
		"  /stop?name=XXX  - Stop named timer, returns nanoseconds\n", addr)
}
