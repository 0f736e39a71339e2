package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tradeagent/internal/cache"
	"tradeagent/internal/chat"
	"tradeagent/internal/config"
	"tradeagent/internal/handler"
	"tradeagent/internal/logger"
	"tradeagent/internal/market"
	"tradeagent/internal/scheduler"
	"tradeagent/internal/server"
	"tradeagent/internal/service"
	"tradeagent/internal/store"
)

func main() {
	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		panic("load config: " + err.Error())
	}
	if err := cfg.Validate(); err != nil {
		panic("config validation: " + err.Error())
	}

	log := logger.New(logger.Options{Level: cfg.Log.Level, File: cfg.Log.File})
	log.Info("tradeagent starting...")
	if cfg.Gateway.APIKey == "" {
		log.Warn("gateway api key not set, chat will be unavailable")
	}

	// Shared cache and upstream clients
	c := cache.New(time.Duration(cfg.Cache.TTLSeconds) * time.Second)
	yahoo := market.NewYahoo(cfg.Yahoo.BaseURL, 5, log)
	gecko := market.NewCoinGecko(cfg.CoinGecko.BaseURL, cfg.CoinGecko.APIKey, 2, log)
	agg := market.NewAggregator(yahoo, c, time.Duration(cfg.Market.SymbolTimeoutSeconds)*time.Second, log)

	marketSvc := service.NewMarketService(c, gecko, yahoo, agg, log)

	// Chat pipeline
	assembler := chat.NewAssembler(marketSvc, log)
	relay := chat.NewRelay(cfg.Gateway.BaseURL, cfg.Gateway.APIKey, cfg.Gateway.Model, log)

	// Persistence
	st, err := store.Open(cfg.Database.SQLitePath, log)
	if err != nil {
		log.WithError(err).Fatal("open store")
	}
	defer st.Close()

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Cache warmer
	sched := scheduler.NewScheduler(ctx, marketSvc, log)
	if err := sched.Register(cfg.Schedule.WarmCron); err != nil {
		log.WithError(err).Fatal("register cron tasks")
	}
	sched.Start()
	defer sched.Stop()
	if os.Getenv("WARM_ON_START") == "true" {
		go sched.RunWarmNow()
	}

	router := server.NewRouter(server.Handlers{
		Market: handler.NewMarket(marketSvc, log),
		Chat:   handler.NewChat(assembler, relay, log),
		Store:  handler.NewStore(st, log),
	}, log)

	srv := &http.Server{
		Addr:    cfg.Server.ListenAddr,
		Handler: router,
	}
	go func() {
		log.WithField("addr", cfg.Server.ListenAddr).Info("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("http server")
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received, stopping...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("http shutdown")
	}
	log.Info("tradeagent stopped")
}
