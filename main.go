package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"actfilter/client"
	"actfilter/config"
	"actfilter/engine"
	"actfilter/logger"
	"actfilter/settings"
	"actfilter/updater"
	"actfilter/watcher"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	dataDir := flag.String("data", "data", "Path to data directory for persisted settings")
	flag.Parse()

	// 1. Load Config
	cfgMgr := config.NewManager(*configPath)
	if err := cfgMgr.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "actfilter: failed to load config: %v, using defaults\n", err)
	}

	// 2. Settings store overrides
	store, err := settings.Open(filepath.Join(*dataDir, "settings.db"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "actfilter: failed to open settings store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()
	if err := settings.Apply(store, cfgMgr); err != nil {
		fmt.Fprintf(os.Stderr, "actfilter: failed to apply settings: %v\n", err)
		os.Exit(1)
	}

	cfg := cfgMgr.Get()

	// 3. Logger
	level := cfg.Logging.Level
	if cfg.Debug {
		level = "debug"
	}
	log, err := logger.New(level, cfg.Logging.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "actfilter: failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// 4. Engine + initial rules
	eng := engine.New(cfgMgr, log)
	if err := eng.Reload(); err != nil {
		log.Warn("initial rule load failed", zap.Error(err))
	}

	// 5. Rule file watcher
	if cfg.Rules.Watch {
		fw, err := watcher.New(cfg.Rules.File, eng.Reload, log)
		if err != nil {
			log.Error("rule file watcher unavailable", zap.Error(err))
		} else {
			fw.Start()
			defer fw.Close()
		}
	}

	// 6. Scheduled reloads
	upd, err := updater.New(cfg.Rules.ReloadCron, eng.Reload, log)
	if err != nil {
		log.Error("reload schedule rejected", zap.Error(err))
		upd, _ = updater.New("", nil, log)
	}
	upd.Start()
	defer upd.Stop()

	// 7. Interactive command loop
	session := client.NewSession()
	cmds := &client.Commands{
		Engine:  eng,
		Config:  cfgMgr,
		Store:   store,
		Host:    session,
		Session: session,
		Out:     os.Stdout,
	}

	done := make(chan struct{})
	go func() {
		commandLoop(cmds)
		close(done)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case s := <-sigChan:
		log.Info("shutting down", zap.String("signal", s.String()))
	case <-done:
		log.Info("shutting down")
	}
}

func commandLoop(cmds *client.Commands) {
	fmt.Println(`actfilter ready (type "help" for commands, "quit" to exit)`)
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		args := strings.Fields(scanner.Text())
		if len(args) == 0 {
			continue
		}
		if args[0] == "quit" || args[0] == "exit" {
			return
		}
		if err := cmds.Run(args); err != nil {
			fmt.Printf("actfilter: %v\n", err)
		}
	}
}
