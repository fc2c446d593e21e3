// Command panel is a terminal front end for the device's web control panel.
// It keeps the panel document in sync with the device and accepts commands
// on stdin in place of clicks.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"enet_panel/internal/config"
	"enet_panel/internal/logger"
	"enet_panel/internal/mirror"
	"enet_panel/internal/panel"
	"enet_panel/web"
)

func main() {
	cfg, err := config.Load("panel", os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log := logger.Get(cfg.Log.Level)

	if err := run(cfg, log); err != nil {
		log.Fatalw("panel stopped", "err", err)
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	// The signal context is the panel lifetime: cancelling it ends the
	// refresh timer and aborts outstanding requests.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	doc, err := panel.NewDocument(web.Index())
	if err != nil {
		return err
	}
	req, err := panel.NewRequester(ctx, cfg.Panel.DeviceURL, nil, log.Named("requester"))
	if err != nil {
		return err
	}

	changes := log.Named("document")
	doc.Subscribe(func(c panel.Change) {
		changes.Infow("document_changed", "id", c.ID, "kind", c.Kind, "value", c.Value)
	})

	pub, err := mirror.NewPublisher(cfg.MQTT, log.Named("mirror"))
	if err != nil {
		return err
	}
	if pub != nil {
		doc.Subscribe(pub.Handle)
		defer pub.Close()
	}

	p := panel.New(ctx, doc, req,
		panel.WithLogger(log.Named("panel")),
		panel.WithRefreshInterval(cfg.Panel.RefreshInterval),
	)
	p.Bootstrap()
	p.BindControls()
	if cfg.Panel.AutoRefresh {
		p.StartSpeedRefresh()
	}
	log.Infow("panel started", "device", cfg.Panel.DeviceURL, "auto_refresh", cfg.Panel.AutoRefresh)

	con := &console{p: p, out: os.Stdout}
	err = con.run(ctx, os.Stdin)

	stop()
	req.Wait()
	log.Infow("panel stopped")
	return err
}
