package main

import (
	"context"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"firepit/internal/config"
	"firepit/internal/discord"
	"firepit/internal/firepit"
	"firepit/internal/metrics"
	"firepit/internal/storage"
	"firepit/pkg/jobmgr"
)

func main() {
	log.Println("[INFO] Starting firepit...")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.New()
	if err != nil {
		log.Fatal("[ERR] ", err)
	}

	roster, err := config.LoadRoster(cfg.PersonalityFile)
	if err != nil {
		log.Fatal("[ERR] ", err)
	}

	store, err := storage.New(cfg.StoragePath)
	if err != nil {
		log.Fatal("[ERR] ", err)
	}
	defer store.Close()

	settings := firepit.DefaultSettings()
	settings.TickInterval = cfg.TickInterval
	settings.ReplyCooldown = cfg.ReplyCooldown
	settings.HourlyReplyQuota = cfg.HourlyReplyQuota

	seed := cfg.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	bot := discord.NewBot(cfg)
	monitors := make([]*firepit.Monitor, 0, len(cfg.BotPersonalities))
	for i, name := range cfg.BotPersonalities {
		rng := rand.New(rand.NewSource(seed + int64(i)))
		mon := firepit.NewMonitor(roster.Get(name), roster, settings, bot, rng)
		mon.SetBookkeeper(store)
		monitors = append(monitors, mon)
	}
	bot.SetMonitors(monitors)

	go metrics.Serve(ctx, cfg.MetricsAddr)

	jm := jobmgr.NewManager(func(msg string) { log.Println("[JOB]", msg) })
	for _, mon := range monitors {
		m := mon
		name := "monitor:" + m.Name()
		if err := jm.StartAsync(ctx, name, func(jobCtx context.Context) error {
			m.Run(jobCtx)
			return nil
		}); err != nil {
			log.Println("[ERR] ", err)
		}
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- bot.Run(ctx)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Printf("[INFO] Received signal %s, shutting down...", s)
		cancel()
	case err := <-errCh:
		if err != nil {
			log.Println("[ERR] Discord bot error:", err)
		}
		cancel()
	}

	jm.StopAll()
	jm.Wait()
	log.Println("[INFO] firepit exited cleanly")
}
