package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"

	"companion-bot/config"
	_ "companion-bot/docs" // Swagger docs
	tgDelivery "companion-bot/internal/chat/delivery/telegram"
	chatHistoryRepo "companion-bot/internal/chat/repository/firestore"
	chatUsecase "companion-bot/internal/chat/usecase"
	contentRepo "companion-bot/internal/content/repository/firestore"
	contentUsecase "companion-bot/internal/content/usecase"
	"companion-bot/internal/httpserver"
	"companion-bot/internal/memory"
	personaRepo "companion-bot/internal/persona/repository/firestore"
	"companion-bot/pkg/llmprovider"
	"companion-bot/pkg/log"
	"companion-bot/pkg/openai"
	"companion-bot/pkg/telegram"
)

const firestoreScope = "https://www.googleapis.com/auth/datastore"

// @title       Companion Bot API
// @description AI companion chatbot on Telegram with OpenAI, Firestore persistence, and Stars payments.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Companion Bot...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Firestore
	fsClient, err := newFirestoreClient(ctx, cfg.Firestore)
	if err != nil {
		logger.Error(ctx, "Failed to initialize Firestore: ", err)
		return
	}
	defer fsClient.Close()

	historyRepo := chatHistoryRepo.NewHistoryRepository(fsClient, logger)
	catalogRepo := contentRepo.NewRepository(fsClient, logger)
	profileRepo := personaRepo.NewRepository(fsClient)

	// 4. LLM providers
	providers, err := llmprovider.InitializeProviders(&cfg.LLM)
	if err != nil {
		logger.Error(ctx, "Failed to initialize LLM providers: ", err)
		return
	}
	manager := llmprovider.NewManager(providers, managerConfig(cfg.LLM), logger)

	// Whisper transcription rides on the first OpenAI key.
	transcriber := openai.NewClient(cfg.LLM.Providers[0].APIKey)

	// 5. Domain wiring
	mem := memory.NewStore(cfg.Memory.MaxInMemory, cfg.Memory.MaxLoad)

	contentUC := contentUsecase.New(logger, catalogRepo, manager)
	chatUC := chatUsecase.New(
		logger,
		mem,
		historyRepo,
		manager,
		transcriber,
		profileRepo,
		contentUC,
		cfg.Memory.ContextLimit,
		cfg.Chat.FallbackReply,
	)

	// 6. Telegram
	bot := telegram.NewBot(cfg.Telegram.BotToken)
	telegramHandler := tgDelivery.New(logger, chatUC, contentUC, bot, cfg.Chat.RateLimitPerMin)

	if cfg.Telegram.WebhookURL != "" {
		if whErr := bot.SetWebhook(cfg.Telegram.WebhookURL); whErr != nil {
			logger.Warnf(ctx, "Failed to set Telegram webhook: %v", whErr)
		} else {
			logger.Infof(ctx, "Telegram webhook registered at %s", cfg.Telegram.WebhookURL)
		}
	}

	// 7. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:          logger,
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		TelegramHandler: telegramHandler,
		ChatUC:          chatUC,
		ContentUC:       contentUC,
		PersonaRepo:     profileRepo,
		AdminToken:      cfg.Admin.Token,
		AppConfig:       cfg,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 8. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}

// newFirestoreClient builds the Firestore client. The project ID falls back
// to whatever the service-account credentials carry, so a bare
// GOOGLE_APPLICATION_CREDENTIALS is enough to boot.
func newFirestoreClient(ctx context.Context, cfg config.FirestoreConfig) (*firestore.Client, error) {
	projectID := cfg.ProjectID
	var opts []option.ClientOption

	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))

		if projectID == "" {
			data, err := os.ReadFile(cfg.CredentialsPath)
			if err != nil {
				return nil, fmt.Errorf("read credentials file: %w", err)
			}
			creds, err := google.CredentialsFromJSON(ctx, data, firestoreScope)
			if err != nil {
				return nil, fmt.Errorf("parse credentials: %w", err)
			}
			projectID = creds.ProjectID
		}
	}

	if projectID == "" {
		creds, err := google.FindDefaultCredentials(ctx, firestoreScope)
		if err != nil {
			return nil, fmt.Errorf("discover default credentials: %w", err)
		}
		projectID = creds.ProjectID
	}
	if projectID == "" {
		return nil, fmt.Errorf("firestore project ID not configured and not present in credentials")
	}

	return firestore.NewClient(ctx, projectID, opts...)
}

// managerConfig converts duration strings from the config file, falling back
// to safe values on parse errors.
func managerConfig(cfg config.LLMConfig) *llmprovider.Config {
	retryDelay, err := time.ParseDuration(cfg.RetryDelay)
	if err != nil {
		retryDelay = time.Second
	}
	maxTotal, err := time.ParseDuration(cfg.MaxTotalTimeout)
	if err != nil {
		maxTotal = time.Minute
	}
	return &llmprovider.Config{
		FallbackEnabled: cfg.FallbackEnabled,
		RetryAttempts:   cfg.RetryAttempts,
		RetryDelay:      retryDelay,
		MaxTotalTimeout: maxTotal,
	}
}
