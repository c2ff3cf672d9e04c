package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/FACorreiaa/loci-travel-bot/internal/domain/feedback"
	"github.com/FACorreiaa/loci-travel-bot/internal/domain/planner"
	"github.com/FACorreiaa/loci-travel-bot/internal/domain/session"
	"github.com/FACorreiaa/loci-travel-bot/internal/domain/user"
	"github.com/FACorreiaa/loci-travel-bot/internal/llm"
	"github.com/FACorreiaa/loci-travel-bot/internal/localization"
	"github.com/FACorreiaa/loci-travel-bot/pkg/config"
	"github.com/FACorreiaa/loci-travel-bot/pkg/db"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	DB     *db.DB
	Logger *slog.Logger

	// Repositories
	UserRepo     user.Repository
	FeedbackRepo feedback.Repository

	// Services
	SessionStore session.Store
	Gateway      *planner.Gateway
	Localizer    *localization.Localizer
}

// InitDependencies initializes all application dependencies
func InitDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initDatabase(); err != nil {
		return nil, fmt.Errorf("failed to init database: %w", err)
	}

	if err := deps.initRepositories(); err != nil {
		return nil, fmt.Errorf("failed to init repositories: %w", err)
	}

	if err := deps.initServices(ctx); err != nil {
		return nil, fmt.Errorf("failed to init services: %w", err)
	}

	logger.Info("all dependencies initialized successfully")

	return deps, nil
}

// initDatabase initializes the database connection and runs migrations
func (d *Dependencies) initDatabase() error {
	database, err := db.New(db.Config{
		DSN:             d.Config.Database.DSN(),
		MaxConns:        10,
		MinConns:        2,
		MaxConnLifetime: 5 * time.Minute,
		MaxConnIdleTime: 10 * time.Minute,
	}, d.Logger)
	if err != nil {
		return err
	}

	d.DB = database

	if err := d.DB.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	d.Logger.Info("database connected and migrations completed successfully")
	return nil
}

// initRepositories initializes all repository layer dependencies
func (d *Dependencies) initRepositories() error {
	d.UserRepo = user.NewRepositoryImpl(d.DB.Pool, d.Logger)
	d.FeedbackRepo = feedback.NewRepositoryImpl(d.DB.Pool, d.Logger)

	d.Logger.Info("repositories initialized")
	return nil
}

// initServices initializes all service layer dependencies
func (d *Dependencies) initServices(ctx context.Context) error {
	d.Localizer = localization.New(d.Logger)
	d.SessionStore = session.NewStore(sessionSeeder{
		users:     d.UserRepo,
		feedbacks: d.FeedbackRepo,
	}, d.Config.Bot.DefaultLanguage, d.Logger)

	var client llm.ChatClient
	if d.Config.AI.APIKey != "" {
		c, err := llm.NewGeminiChatClient(ctx, d.Config.AI.APIKey)
		if err != nil {
			return fmt.Errorf("failed to init gemini client: %w", err)
		}
		client = c
	} else {
		// A missing key is tolerated at startup; the gateway reports a
		// configuration error per request instead.
		d.Logger.Warn("GEMINI_API_KEY is not set, AI requests will fail")
	}

	limiter := rate.NewLimiter(rate.Limit(d.Config.AI.RatePerSecond), d.Config.AI.RateBurst)
	d.Gateway = planner.NewGateway(client, limiter, d.Config.AI.RequestTimeout, d.Logger)

	d.Logger.Info("services initialized")
	return nil
}

// sessionSeeder combines the user and feedback repositories into the single
// seeding surface new sessions load from.
type sessionSeeder struct {
	users     user.Repository
	feedbacks feedback.Repository
}

func (s sessionSeeder) GetLanguage(ctx context.Context, userID int64) (string, error) {
	return s.users.GetLanguage(ctx, userID)
}

func (s sessionSeeder) GetHistory(ctx context.Context, userID int64) (liked, disliked []string, err error) {
	return s.feedbacks.GetHistory(ctx, userID)
}

// Cleanup closes all resources
func (d *Dependencies) Cleanup() {
	if d.DB != nil {
		d.DB.Close()
	}
	d.Logger.Info("cleanup completed")
}
