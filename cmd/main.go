package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/customer-directory-api/docs" // Import generated docs
	"github.com/customer-directory-api/internal/config"
	"github.com/customer-directory-api/internal/controllers"
	"github.com/customer-directory-api/internal/database"
	"github.com/customer-directory-api/internal/directory"
	"github.com/customer-directory-api/internal/middleware"
	"github.com/customer-directory-api/internal/models"
	"github.com/customer-directory-api/internal/services"
	"gorm.io/gorm"
)

var (
	db                 *gorm.DB
	customerService    services.CustomerService
	customerController controllers.CustomerController
	authController     *controllers.AuthController
	configuration      *config.Config
)

// @title Customer Directory API
// @version 1.0
// @description Back end for the customer directory app: a locally cached customer roster seeded from a remote directory.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load environment variables
	loadDotenvFile()

	// Initialize logger
	setUpLogger()

	// Load configuration
	configuration = loadConfig()

	// Set JWT secret from configuration
	middleware.SetJWTSecret(configuration.JWTSecret)

	// Initialize database connection
	setupDatabase(configuration)

	// Initialize services and controllers
	directoryClient := directory.NewClient(configuration.DirectoryEndpoint, configuration.DirectoryAPIKey)
	customerService = services.NewCustomerService(db, directoryClient, configuration.SeedFallbackSamples)
	customerController = controllers.NewCustomerController(customerService)
	authController = controllers.NewAuthController(services.NewAccountService(db), configuration.JWTSecret)

	// Initialize Gin router
	var router *gin.Engine = setupRouter()

	// Start the server
	log.Infof("Starting server on %s:%d", configuration.Host, configuration.Port)
	router.Run(fmt.Sprintf("%v:%d", configuration.Host, configuration.Port))
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter and sets the log level based on the environment
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	environment := config.GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(log.DebugLevel)
	case "production":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	log.Info("Loading configuration from environment variables")
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	log.Infof("Configuration loaded: %+v", conf)
	return conf
}

// setupDatabase initializes the local store and migrates the schema.
// Seeding is owned by the customer service: the remote directory is only
// consulted when the store is empty, on the first load.
func setupDatabase(conf *config.Config) *gorm.DB {
	var err error
	db, err = database.InitDatabase(database.FromAppConfig(conf))
	checkPanicErr(err)

	// Migrate the schema
	err = db.AutoMigrate(&models.Customer{}, &models.Account{})
	checkPanicErr(err)

	var count int64
	db.Model(&models.Customer{}).Count(&count)
	if count == 0 {
		log.Info("Local store is empty, will seed from remote directory on first load")
	} else {
		log.WithField("count", count).Info("Local store already seeded")
	}
	return db
}

// setupRouter initializes the Gin router and sets up the routes
// It returns the configured router
func setupRouter() *gin.Engine {
	// Initialize Gin router
	router := gin.Default()

	// The mobile/web client is served from a different origin
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Define routes
	setupRoutes(router)

	return router
}

// setupRoutes defines the routes for the Gin router
func setupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", healthCheckHandler)

	v1 := router.Group("/api/v1")
	{
		// Staff account routes
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authController.Register)
			auth.POST("/login", authController.Login)
		}

		publicApi := v1.Group("/public")
		{
			publicApi.GET("/customers", customerController.ListCustomers)
			publicApi.POST("/customers/refresh", customerController.RefreshCustomers)
		}

		// Protected routes (requires JWT authentication)
		protectedApi := v1.Group("/protected")
		protectedApi.Use(middleware.JWTAuth())
		{
			protectedApi.POST("/customers", customerController.CreateCustomer)
			protectedApi.PUT("/customers/:id", customerController.UpdateCustomer)

			adminApi := protectedApi.Group("")
			adminApi.Use(middleware.RequireRole("admin"))
			{
				adminApi.DELETE("/customers/:id", customerController.DeleteCustomer)
			}
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "customer-directory-api",
	})
}
