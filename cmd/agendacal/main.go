package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"agendacal/internal/config"
	appLog "agendacal/internal/log"
	"agendacal/internal/web"
)

// flagConfig holds CLI flag values; non-empty values override the config
// file.
type flagConfig struct {
	configPath   string
	snapshotPath string
	icsPath      string
	listen       string
	view         string
	page         int
	serve        bool
	watch        bool
}

func main() {
	flags := parseFlags()

	conf, err := config.Load(flags.configPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", flags.configPath)
		os.Exit(1)
	}
	if flags.snapshotPath != "" {
		conf.Snapshot = flags.snapshotPath
	}
	if flags.listen != "" {
		conf.Listen = flags.listen
	}
	appLog.SetLevel(appLog.ParseLevel(conf.LogLevel))
	defer appLog.Sync()

	loc, err := conf.Location()
	if err != nil {
		appLog.Error("failed to resolve timezone", err)
		os.Exit(1)
	}

	appLog.Debug("effective config",
		"listen", conf.Listen,
		"timezone", conf.Timezone,
		"refresh", conf.RefreshCron,
		"snapshot", conf.Snapshot,
		"ics", flags.icsPath,
		"view", flags.view,
		"page", flags.page,
		"serve", flags.serve,
		"watch", flags.watch,
	)

	src := source{snapshotPath: conf.Snapshot, icsPath: flags.icsPath, loc: loc}

	if !flags.serve && !flags.watch {
		snap, err := src.load(time.Now())
		if err != nil {
			appLog.Error("failed to load snapshot", err, "path", conf.Snapshot)
			os.Exit(1)
		}
		if err := renderView(os.Stdout, snap, flags.view, flags.page, time.Now(), loc); err != nil {
			appLog.Error("failed to render view", err, "view", flags.view)
			os.Exit(1)
		}
		return
	}

	// Root context with cancellation on SIGINT/SIGTERM.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		appLog.Info("signal received, shutting down", "signal", sig.String())
		cancel()
	}()

	var wg sync.WaitGroup

	if flags.watch {
		c, err := startWatch(conf.RefreshCron, src)
		if err != nil {
			appLog.Error("failed to start watch", err, "refresh", conf.RefreshCron)
			os.Exit(1)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-ctx.Done()
			<-c.Stop().Done()
		}()
	}

	if flags.serve {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := web.StartServer(ctx, conf); err != nil {
				appLog.Error("HTTP server stopped", err)
				cancel()
			}
		}()
	}

	<-ctx.Done()
	wg.Wait()
	appLog.Info("agendacal exiting")
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", "./agendacal.yaml", "Path to config file")
	flag.StringVar(&cfg.snapshotPath, "snapshot", "", "Snapshot file (overrides config if set)")
	flag.StringVar(&cfg.icsPath, "ics", "", "Optional timetable .ics file merged into the snapshot")
	flag.StringVar(&cfg.listen, "listen", "", "HTTP listen address (overrides config if set)")
	flag.StringVar(&cfg.view, "view", viewAgenda, "One-shot view: agenda, week or month")
	flag.IntVar(&cfg.page, "page", 0, "Agenda page, week offset or month offset from now")
	flag.BoolVar(&cfg.serve, "serve", false, "Serve the HTTP API")
	flag.BoolVar(&cfg.watch, "watch", false, "Log live items on the refresh schedule")

	flag.Parse()

	return cfg
}
