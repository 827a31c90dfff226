package main

import (
	"authsvc/internal/app"
	"authsvc/internal/app/deps"
	"authsvc/internal/app/services"
	"authsvc/internal/keepalive"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	dl "authsvc/internal/core/domain/logging"
)

func main() {
	deps, shutdownDeps := deps.InitDeps()
	services := services.InitServices(deps)

	httpServer := app.InitHttpServer(deps, services)
	go start(httpServer, deps)

	keepaliveCtx, stopKeepalive := context.WithCancel(context.Background())
	defer stopKeepalive()
	startKeepalive(keepaliveCtx, deps)

	stopCh, closeCh := createChannel()
	defer closeCh()

	<-stopCh
	stopKeepalive()
	shutdown(context.Background(), httpServer, deps, shutdownDeps)
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}

func start(server *http.Server, deps *deps.Deps) {
	deps.Logger.Info(
		context.Background(),
		"HTTP server has started.",
		dl.Entry("address", server.Addr),
		dl.Entry("storeDriver", deps.Config.StoreDriver),
		dl.Entry("notifier", deps.Config.Notifier),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic(err)
	} else {
		deps.Logger.Info(context.Background(), "HTTP service is stopping gracefully.")
	}
}

func startKeepalive(ctx context.Context, deps *deps.Deps) {
	if deps.Config.KeepaliveURL == nil {
		deps.Logger.Info(ctx, "Keep-alive ping is disabled.")
		return
	}
	pinger := keepalive.New(
		deps.Logger,
		&http.Client{Timeout: 30 * time.Second},
		deps.Config.KeepaliveURL.String(),
		deps.Config.KeepaliveInterval,
	)
	go pinger.Run(ctx)
}

func shutdown(ctx context.Context, server *http.Server, deps *deps.Deps, shutDownDeps func()) {
	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		panic(err)
	}

	deps.Logger.Info(ctx, "HTTP server has shut down.")
	shutDownDeps()
}
