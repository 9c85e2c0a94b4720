package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"go.klb.dev/clipqture/internal/clip"
	"go.klb.dev/clipqture/internal/daemon"
	"go.klb.dev/clipqture/internal/grpcservice"
	"go.klb.dev/clipqture/internal/gtkui"
	"go.klb.dev/clipqture/internal/history"
	"go.klb.dev/clipqture/internal/ipc"
	"go.klb.dev/clipqture/internal/menu"
	"go.klb.dev/clipqture/internal/x11"
)

// triggerQueue bounds triggers waiting for the daemon goroutine.
const triggerQueue = 16

func runDaemon(v *viper.Viper) error {
	setupLogging(v)

	// a second instance only sends the trigger; it never touches the config
	sock := ipc.SocketPath()
	ln, err := ipc.Acquire(sock)
	if errors.Is(err, ipc.ErrAlreadyRunning) {
		slog.Debug("menu requested from running instance", "socket", sock)
		return nil
	}
	if err != nil {
		return fmt.Errorf("instance socket: %w", err)
	}

	cfg, cfgPath, err := loadConfig(v)
	if err != nil {
		_ = ln.Close()
		return err
	}

	slog.Info("clipqture starting",
		"version", Version,
		"socket", sock,
		"config", cfgPath,
		"max_items", cfg.MaxItems,
		"capture_icon", cfg.CaptureIcon,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	chans := ipc.Split(ln)
	triggers := make(chan struct{}, triggerQueue)

	backend := clip.New()
	defer backend.Close()

	var ws daemon.WindowSystem
	if xc, err := x11.Open(""); err != nil {
		slog.Warn("X11 unavailable, entries get no icons", "err", err)
	} else {
		defer xc.Close()
		ws = xc
	}

	presenter := newPresenter()
	store := history.New(cfg.MaxItems)
	d := daemon.New(cfg, store, backend, ws, presenter, triggers)

	svc := grpcservice.New(store, d.MenuOptions(), func() {
		select {
		case triggers <- struct{}{}:
		default:
			slog.Warn("trigger queue full, dropping")
		}
	})
	rpc := grpc.NewServer()
	grpcservice.Register(rpc, svc)
	gw, err := grpcservice.NewGateway(svc)
	if err != nil {
		_ = chans.Close()
		return fmt.Errorf("gateway: %w", err)
	}

	// trigger connections may block on the queue after shutdown
	go func() {
		if err := ipc.ServeTriggers(chans.Trigger, triggers); err != nil {
			slog.Error("trigger listener stopped", "err", err)
		}
	}()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(chans.Serve)
	g.Go(func() error { return ignoreClosed(rpc.Serve(chans.RPC)) })
	g.Go(func() error { return ignoreClosed(grpcservice.ServeHTTP(chans.HTTP, gw)) })
	g.Go(func() error { return d.Run(ctx) })
	g.Go(func() error {
		<-ctx.Done()
		rpc.Stop()
		return chans.Close()
	})

	if err := presenter.Run(ctx); err != nil {
		slog.Error("presenter stopped", "err", err)
	}
	stop()

	err = g.Wait()
	slog.Info("clipqture stopped")
	return err
}

// newPresenter prefers the GTK popup and falls back to logging the menu.
func newPresenter() menu.Presenter {
	p, err := gtkui.New()
	if err != nil {
		slog.Warn("no GUI, menus will only be logged", "err", err)
		return menu.NewLogPresenter()
	}
	return p
}

func ignoreClosed(err error) error {
	if err == nil || ipc.IsClosed(err) || errors.Is(err, grpc.ErrServerStopped) {
		return nil
	}
	return err
}
