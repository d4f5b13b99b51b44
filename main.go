package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"marrynow/config"
	"marrynow/database"
	"marrynow/server"
	"marrynow/utils"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.LoadConfig()
	utils.InitLogger(cfg.LogLevel)

	store, err := database.ConnectDb(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open store")
	}

	scheduler, err := utils.InitializeCounterScheduler(store, cfg.CounterSyncSchedule)
	if err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.CounterSyncSchedule).Msg("invalid COUNTER_SYNC_SCHEDULE")
	}

	notifier := utils.NewNotifier(cfg.SendGridApiKey, cfg.EmailSender)
	app := server.New(cfg, server.Deps{
		Store:    store,
		Gateway:  utils.NewStripeGateway(cfg.StripeApiURL, cfg.StripeSecretKey),
		Notifier: notifier,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.StoreDriver).Msg("server is running")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	if err := app.ShutdownWithTimeout(time.Duration(cfg.ShutdownTimeout) * time.Second); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if scheduler != nil {
		<-scheduler.Stop().Done()
	}
	notifier.Wait()
	if err := store.Close(); err != nil {
		log.Error().Err(err).Msg("store close")
	}
}
