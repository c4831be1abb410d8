// @title         cvpolish API
// @version       1.0
// @description   Распознавание, предзаполнение и улучшение резюме.
// @BasePath      /api/v1
// @schemes       http
// @host          localhost:8080
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Токен внешнего провайдера идентификации. Поддерживаются форматы: "Bearer <JWT>" или "<JWT>".
package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	swagger "github.com/gofiber/swagger"

	_ "github.com/artem13815/cvpolish/docs"

	"github.com/artem13815/cvpolish/api/http"
	"github.com/artem13815/cvpolish/api/http/handlers"
	"github.com/artem13815/cvpolish/pkg/cache"
	"github.com/artem13815/cvpolish/pkg/config"
	"github.com/artem13815/cvpolish/pkg/cvparse"
	"github.com/artem13815/cvpolish/pkg/health"
	"github.com/artem13815/cvpolish/pkg/health/checkers"
	"github.com/artem13815/cvpolish/pkg/improve"
	"github.com/artem13815/cvpolish/pkg/llm"
	"github.com/artem13815/cvpolish/pkg/llm/gemini"
	"github.com/artem13815/cvpolish/pkg/llm/openrouter"
	"github.com/artem13815/cvpolish/pkg/logging"
	"github.com/artem13815/cvpolish/pkg/render"
	pgrepo "github.com/artem13815/cvpolish/pkg/repository/postgres"
	"github.com/artem13815/cvpolish/pkg/resume"
	"github.com/artem13815/cvpolish/pkg/security/jwt"
	"github.com/artem13815/cvpolish/pkg/storage/disk"
	"github.com/artem13815/cvpolish/pkg/storage/postgres"
)

func main() {
	// Load configuration from env/.env
	cfg := config.Load()

	log := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cfg.ValidateServer(); err != nil {
		return err
	}
	pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool); err != nil {
		return err
	}

	checks := []health.Checker{checkers.NewPostgresChecker(pool)}

	// Parser: embedded locales unless a custom table is configured
	var parserOpts []cvparse.Option
	if cfg.LocalesFile != "" {
		locales, err := cvparse.LoadLocales(cfg.LocalesFile)
		if err != nil {
			return err
		}
		parserOpts = append(parserOpts, cvparse.WithLocales(locales))
	}
	if cfg.StrictAnchors {
		parserOpts = append(parserOpts, cvparse.WithStrictAnchors())
	}
	parser := cvparse.New(parserOpts...)

	files, err := disk.New(cfg.UploadDir)
	if err != nil {
		return err
	}
	resumeSvc := resume.NewService(pgrepo.NewResumeRepository(pool), files, parser, resume.Options{
		MaxBytes:      cfg.UploadMaxBytes,
		MinTextChars:  cfg.MinTextChars,
		MaxConcurrent: cfg.MaxConcurrentUploads,
	}, log)

	// Optional LLM, cached in redis when configured
	var improver handlers.Improver
	model, err := newChatModel(ctx, cfg)
	if err != nil {
		log.Warn("llm disabled", "provider", cfg.LLMProvider, "err", err)
	} else {
		if c, ok := model.(io.Closer); ok {
			defer c.Close()
		}
		opts := []improve.Option{improve.WithLogger(log)}
		if cfg.RedisURL != "" {
			rdb, err := cache.Open(ctx, cfg.RedisURL)
			if err != nil {
				return err
			}
			defer rdb.Close()
			opts = append(opts, improve.WithCache(cache.NewRedisCache(rdb, "cvpolish:improve:", cfg.ImproveCacheTTL)))
			checks = append(checks, checkers.NewRedisChecker(rdb))
		}
		improver = improve.New(model, opts...)
		log.Info("llm enabled", "provider", cfg.LLMProvider, "model", model.ModelName())
	}

	renderer := render.NewRenderer(cfg.ChromeWSURL, cfg.PDFTimeout)
	if !renderer.Available() {
		log.Warn("pdf export disabled: CHROME_WS_URL is empty")
	}

	app := fiber.New(fiber.Config{BodyLimit: int(cfg.UploadMaxBytes) + 1<<20})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n"}))

	http.Register(app, jwt.NewAuthMiddleware(jwt.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience)), http.Handlers{
		Health: handlers.NewHealthHandler(health.NewService(checks...)),
		CV: handlers.NewCVHandler(parser, improver, renderer, handlers.CVOptions{
			MaxBytes:     cfg.UploadMaxBytes,
			MinTextChars: cfg.MinTextChars,
		}, log),
		Resumes: handlers.NewResumesHandler(resumeSvc, cfg.UploadMaxBytes),
	})

	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error("shutdown", "err", err)
		}
	}()

	log.Info("HTTP server listening", "port", cfg.Port)
	return app.Listen(":" + cfg.Port)
}

func newChatModel(ctx context.Context, cfg config.Config) (llm.ChatModel, error) {
	switch cfg.LLMProvider {
	case "openrouter":
		if cfg.OpenRouterAPIKey == "" {
			return nil, errors.New("OPENROUTER_API_KEY is empty")
		}
		return openrouter.New(openrouter.Config{
			APIKey:   cfg.OpenRouterAPIKey,
			BaseURL:  cfg.OpenRouterBase,
			Model:    cfg.OpenRouterModel,
			AppTitle: cfg.OpenRouterAppTitle,
			Referer:  cfg.OpenRouterReferer,
			Timeout:  cfg.OpenRouterTimeout,
		}), nil
	case "gemini", "":
		return gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiTimeout)
	default:
		return nil, errors.New("unknown LLM_PROVIDER " + cfg.LLMProvider)
	}
}
