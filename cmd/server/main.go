// antigravity server: behavior-aware focus analysis over REST and WebSocket.
package main

// #region imports
import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/officemates/antigravity/internal/audit"
	"github.com/officemates/antigravity/internal/config"
	"github.com/officemates/antigravity/internal/engine"
	"github.com/officemates/antigravity/internal/httpapi"
	"github.com/officemates/antigravity/internal/student"
	"github.com/officemates/antigravity/internal/vision"
)

// #endregion

// #region main

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		log = log.Level(level)
	}

	tuning, err := config.LoadTuning(cfg.TuningPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load tuning")
	}

	recorder, err := audit.NewSQLiteRecorder(cfg.AuditDBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.AuditDBPath).Msg("failed to open audit store")
	}
	defer recorder.Close()
	log.Info().Str("path", cfg.AuditDBPath).Msg("audit store ready")

	repo := buildRepository(cfg, log)

	var visionClient *vision.Client
	if cfg.VisionURL != "" {
		visionClient = vision.NewClient(vision.Config{BaseURL: cfg.VisionURL, Timeout: cfg.VisionTimeout})
		log.Info().Str("url", cfg.VisionURL).Msg("vision extractor configured")
	} else {
		log.Info().Msg("no vision extractor configured, raw-frame path disabled")
	}

	eng := engine.New(tuning, repo, recorder, log)
	handler := httpapi.NewHandler(eng, visionClient, log)
	wsHandler := httpapi.NewWSHandler(eng, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpapi.NewRouter(handler, wsHandler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// buildRepository picks the student-state store: Redis when configured, else
// in-process memory.
func buildRepository(cfg *config.Config, log zerolog.Logger) student.Repository {
	if cfg.RedisAddr == "" {
		log.Info().Msg("using in-memory student store")
		return student.NewMemoryRepository()
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	log.Info().Str("addr", cfg.RedisAddr).Msg("using redis student store")
	return student.NewRedisRepository(client, student.RedisConfig{
		Prefix: cfg.RedisPrefix,
		TTL:    cfg.RedisTTL,
	})
}

// #endregion main
