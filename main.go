package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"cookbook/internal/handlers"
	"cookbook/internal/middleware"
	"cookbook/internal/models"
	"cookbook/internal/repositories"
	"cookbook/internal/services"
	"cookbook/pkg/imagestore"
	"cookbook/pkg/logger"
	"cookbook/pkg/rabbitmq"
)

func main() {
	logger.Init()
	defer logger.Sync()

	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_URL", "host=localhost user=cookbook password=cookbook dbname=cookbook port=5432 sslmode=disable")
	viper.SetDefault("JWT_SECRET", "change-me")
	viper.SetDefault("MEDIA_ROOT", "./media")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv() // Load environment variables

	appPort := viper.GetString("APP_PORT")
	jwtSecret := viper.GetString("JWT_SECRET")
	mediaRoot := viper.GetString("MEDIA_ROOT")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	// --- Database ---
	db, err := openDatabase(postgres.Open(viper.GetString("DATABASE_URL")), 10, 2*time.Second)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	err = db.AutoMigrate(&models.User{}, &models.Tag{}, &models.Ingredient{}, &models.Recipe{})
	if err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	// --- RabbitMQ (optional) ---
	// Recipe lifecycle events are advisory; without a broker URL the API
	// runs with events disabled.
	var events services.EventPublisher
	if rabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			logger.Fatal("failed to initialize RabbitMQ client", zap.Error(err))
		}
		defer mqClient.Close()
		events = mqClient

		// Log consumed events; downstream processing hangs off this hook.
		err = mqClient.ConsumeRecipeEvents(func(msg amqp.Delivery) error {
			logger.Info("recipe event", zap.ByteString("body", msg.Body))
			return nil
		})
		if err != nil {
			logger.Error("failed to start RabbitMQ consumer", zap.Error(err))
		}
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	tagRepo := repositories.NewGORMTagRepository(db)
	ingredientRepo := repositories.NewGORMIngredientRepository(db)
	recipeRepo := repositories.NewGORMRecipeRepository(db)

	// --- Services ---
	authService := services.NewAuthService(userRepo, jwtSecret)
	tagService := services.NewTagService(tagRepo)
	ingredientService := services.NewIngredientService(ingredientRepo)
	recipeService := services.NewRecipeService(recipeRepo, tagRepo, ingredientRepo, imagestore.New(mediaRoot), events)

	seedSuperuser(authService)

	// --- Handlers ---
	userHandler := handlers.NewUserHandler(authService)
	tagHandler := handlers.NewTagHandler(tagService)
	ingredientHandler := handlers.NewIngredientHandler(ingredientService)
	recipeHandler := handlers.NewRecipeHandler(recipeService)

	// --- Fiber app ---
	app := fiber.New()
	app.Use(fiberlogger.New()) // Request logger

	authRequired := middleware.AuthRequired(authService)
	userHandler.RegisterRoutes(app, authRequired)

	recipeGroup := app.Group("/recipe", authRequired)
	tagHandler.RegisterRoutes(recipeGroup)
	ingredientHandler.RegisterRoutes(recipeGroup)
	recipeHandler.RegisterRoutes(recipeGroup)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start HTTP server ---
	logger.Info("starting server", zap.String("port", appPort))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			logger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	logger.Info("shutting down server")

	if err := app.Shutdown(); err != nil {
		logger.Error("error during shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

// openDatabase connects with a bounded retry, since the database usually
// finishes booting after the API in a fresh compose stack. TranslateError
// lets driver unique violations surface as gorm.ErrDuplicatedKey.
func openDatabase(dial gorm.Dialector, attempts int, delay time.Duration) (*gorm.DB, error) {
	var db *gorm.DB
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		db, err = gorm.Open(dial, &gorm.Config{TranslateError: true})
		if err == nil {
			return db, nil
		}
		logger.Warn("database unavailable, retrying",
			zap.Int("attempt", attempt), zap.Error(err))
		time.Sleep(delay)
	}
	return nil, err
}

// seedSuperuser creates the administrative account from ADMIN_EMAIL and
// ADMIN_PASSWORD when both are set. An already registered email is fine:
// the seed has run before.
func seedSuperuser(authService *services.AuthService) {
	email := viper.GetString("ADMIN_EMAIL")
	password := viper.GetString("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	if _, err := authService.CreateSuperuser(email, password); err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return
		}
		logger.Error("failed to seed superuser", zap.String("email", email), zap.Error(err))
		return
	}
	logger.Info("seeded superuser", zap.String("email", email))
}
