package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/arcsino/quizquartz-backend/internal/handlers"
	"github.com/arcsino/quizquartz-backend/internal/middleware"
	"github.com/arcsino/quizquartz-backend/internal/models"
	"github.com/arcsino/quizquartz-backend/internal/repositories"
	"github.com/arcsino/quizquartz-backend/internal/services"
	"github.com/arcsino/quizquartz-backend/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=quizquartz port=5432 sslmode=disable TimeZone=UTC")
	viper.SetDefault("RABBITMQ_URL", "") // empty disables event publishing
	viper.SetDefault("REDIS_ADDR", "")   // empty selects the database token store

	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	databaseDSN := viper.GetString("DATABASE_DSN")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")
	redisAddr := viper.GetString("REDIS_ADDR")

	// --- Database ---
	// TranslateError turns driver duplicate-key failures into
	// gorm.ErrDuplicatedKey so uniqueness races surface as validation errors.
	db, err := gorm.Open(postgres.Open(databaseDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.AuthToken{},
		&models.Tag{},
		&models.QuizGroup{},
		&models.Quiz{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- RabbitMQ (optional) ---
	var mqClient *rabbitmq.Client
	if rabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	} else {
		log.Println("RABBITMQ_URL not set; event publishing disabled")
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	tagRepo := repositories.NewGORMTagRepository(db)
	groupRepo := repositories.NewGORMQuizGroupRepository(db)
	quizRepo := repositories.NewGORMQuizRepository(db)

	var tokenRepo repositories.TokenRepository
	if redisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: redisAddr})
		tokenRepo = repositories.NewRedisTokenRepository(redisClient)
		log.Printf("Using Redis token store at %s", redisAddr)
	} else {
		tokenRepo = repositories.NewGORMTokenRepository(db)
	}

	// Tags are administered out of band; seed a starter set.
	seedTags(tagRepo)

	// --- Services ---
	accountService := services.NewAccountService(userRepo, tokenRepo, mqClient)
	groupService := services.NewQuizGroupService(groupRepo, mqClient)
	quizService := services.NewQuizService(quizRepo, tagRepo, groupRepo, mqClient)

	// --- Handlers ---
	accountHandler := handlers.NewAccountHandler(accountService)
	quizHandler := handlers.NewQuizHandler(quizService, groupService)

	// --- Fiber App ---
	app := fiber.New()
	app.Use(logger.New())

	authRequired := middleware.AuthRequired(accountService)
	accountHandler.RegisterRoutes(app, authRequired)
	quizHandler.RegisterRoutes(app, authRequired)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Event Consumer ---
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for domain events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received domain event (Tag: %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil
			}
			if consumerErr := mqClient.ConsumeEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// seedTags ensures a starter set of tags exists. Duplicates are skipped.
func seedTags(repo repositories.TagRepository) {
	tags := []models.Tag{
		{Name: "math"},
		{Name: "science"},
		{Name: "history"},
		{Name: "general"},
	}

	for i := range tags {
		if err := repo.Create(&tags[i]); err != nil {
			log.Printf("Skipping tag %s: %v", tags[i].Name, err)
		} else {
			log.Printf("Seeded tag: %s (ID: %s)", tags[i].Name, tags[i].ID)
		}
	}
}
