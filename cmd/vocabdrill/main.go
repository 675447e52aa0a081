package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/lehmann314159/vocabdrill/internal/api"
	"github.com/lehmann314159/vocabdrill/internal/app"
	"github.com/lehmann314159/vocabdrill/internal/config"
	"github.com/lehmann314159/vocabdrill/internal/models"
	"github.com/lehmann314159/vocabdrill/internal/repository"
	"github.com/lehmann314159/vocabdrill/internal/services"
	"github.com/lehmann314159/vocabdrill/internal/speech"
)

func main() {
	if err := run(); err != nil {
		slog.Error("vocabdrill stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := app.NewLogger(cfg.Log)

	// Setup context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db, err := repository.OpenSQLite(cfg.Storage.SQLitePath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	entries := repository.NewSQLiteRepository(db)

	kv, closeKV, err := openKeyValueStore(ctx, cfg.Storage, entries)
	if err != nil {
		return err
	}
	defer closeKV()
	log.Info("storage ready", "sqlite", cfg.Storage.SQLitePath, "settings", cfg.Storage.Driver)

	notices := services.NewNotices()
	outbox := speech.NewOutbox()
	prefs := speech.LoadPreferences(ctx, kv, speechDefaults(cfg.Speech), notices, log)
	speaker := speech.NewSpeaker(outbox, speech.NewSelector(cfg.Speech.Prefer, cfg.Speech.Avoid), prefs, notices, log)

	var dict *services.DictionaryService
	if !cfg.Dictionary.Disabled {
		dict = services.NewDictionaryService(cfg.Dictionary.BaseURL, cfg.Dictionary.Timeout)
	}

	drill, err := services.NewDrill(ctx, services.DrillDeps{
		Entries:    entries,
		Mastery:    services.NewMasteryTracker(ctx, kv, notices, log),
		Speaker:    speaker,
		Dictionary: dict,
		Notices:    notices,
		Wheel:      wheelConfig(cfg.Wheel),
	}, log)
	if err != nil {
		return err
	}

	if cfg.Vocabulary.SeedPath != "" {
		if err := seedVocabulary(ctx, drill, cfg.Vocabulary.SeedPath, log); err != nil {
			return err
		}
	}

	handler := api.NewHandler(drill, speaker, prefs, outbox, log)
	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      api.NewRouter(handler, cfg.Auth.APIToken, log),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// openKeyValueStore picks the backend for mastery and speech settings
func openKeyValueStore(ctx context.Context, cfg config.StorageConfig, sqlite *repository.SQLiteRepository) (repository.KeyValueStore, func(), error) {
	switch cfg.Driver {
	case config.DriverRedis:
		store, err := repository.NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisPrefix)
		if err != nil {
			return nil, nil, fmt.Errorf("open redis: %w", err)
		}
		return store, func() { store.Close() }, nil
	case config.DriverMemory:
		return repository.NewMemoryStore(), func() {}, nil
	default:
		return sqlite, func() {}, nil
	}
}

func seedVocabulary(ctx context.Context, drill *services.Drill, path string, log *slog.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open vocabulary: %w", err)
	}
	defer f.Close()

	raw, err := services.ParseJSON(f)
	if err != nil {
		return err
	}
	n, err := drill.Seed(ctx, raw)
	if err != nil {
		return fmt.Errorf("seed vocabulary: %w", err)
	}
	if n > 0 {
		log.Info("vocabulary seeded", "path", path, "entries", n)
	}
	return nil
}

func speechDefaults(cfg config.SpeechConfig) models.SpeechPreference {
	pref := speech.DefaultPreference()
	pref.Accent = speech.CanonicalAccent(cfg.Accent)
	pref.Rate = cfg.Rate
	pref.Pitch = cfg.Pitch
	return pref
}

func wheelConfig(cfg config.WheelConfig) services.WheelConfig {
	wc := services.DefaultWheelConfig()
	wc.MaxPool = cfg.MaxPool
	wc.CompactPool = cfg.CompactPool
	wc.Settle = cfg.Settle
	wc.MinTurns = cfg.MinTurns
	wc.JitterFraction = cfg.JitterFraction
	return wc
}
