package config

import (
	"Storybrush-Backend/internal/api/handlers"
	"Storybrush-Backend/internal/api/routes"
	"Storybrush-Backend/internal/middleware"
	"Storybrush-Backend/internal/utils"
	"Storybrush-Backend/internal/utils/storage"
	"Storybrush-Backend/pkg/admin"
	"Storybrush-Backend/pkg/content"
	"Storybrush-Backend/pkg/credit"
	"Storybrush-Backend/pkg/discount"
	"Storybrush-Backend/pkg/filedb"
	"Storybrush-Backend/pkg/genai"
	"Storybrush-Backend/pkg/generation"
	"Storybrush-Backend/pkg/jwt"
	"Storybrush-Backend/pkg/midtrans"
	"Storybrush-Backend/pkg/order"
	"Storybrush-Backend/pkg/sheets"
	"Storybrush-Backend/pkg/syncer"
	"Storybrush-Backend/pkg/user"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func NewApp(store *filedb.Store) (*fiber.App, syncer.Syncer, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Jakarta",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	sheetsClient := sheets.NewSheetsClient(
		utils.GetConfig("SHEETS_ENDPOINT"),
		utils.GetConfig("SHEETS_API_KEY"),
		utils.GetConfig("SHEETS_KEY_ID"),
	)

	// Repository
	userRepository := user.NewUserRepository(store)
	orderRepository := order.NewOrderRepository(store)
	contentRepository := content.NewContentRepository(store)
	discountRepository := discount.NewDiscountRepository(store)

	// Service
	jwtService := jwt.NewJWTService()
	genaiClient := genai.NewGenaiClient()
	userService := user.NewUserService(userRepository, jwtService, sheetsClient)
	creditService := credit.NewCreditService(userRepository, sheetsClient)
	discountService := discount.NewDiscountService(discountRepository)
	midtransService := midtrans.NewMidtransService()
	orderService := order.NewOrderService(
		orderRepository,
		userRepository,
		creditService,
		discountService,
		midtransService,
	)
	contentService := content.NewContentService(contentRepository, s3)
	generationService := generation.NewGenerationService(
		userRepository,
		creditService,
		contentService,
		genaiClient,
	)
	storeSyncer := syncer.NewSyncer(userRepository, sheetsClient, 15*time.Minute)
	adminService := admin.NewAdminService(userRepository, sheetsClient, storeSyncer)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	creditHandler := handlers.NewCreditHandler(creditService, discountService, validator)
	orderHandler := handlers.NewOrderHandler(orderService, validator)
	generationHandler := handlers.NewGenerationHandler(generationService, validator)
	contentHandler := handlers.NewContentHandler(contentService, validator)
	adminHandler := handlers.NewAdminHandler(adminService)

	// routes
	routesConfig := routes.Config{
		App:               app,
		UserHandler:       userHandler,
		CreditHandler:     creditHandler,
		OrderHandler:      orderHandler,
		GenerationHandler: generationHandler,
		ContentHandler:    contentHandler,
		AdminHandler:      adminHandler,
		Middleware:        middlewares,
		JWTService:        jwtService,
	}
	routesConfig.Setup()
	return app, storeSyncer, nil
}
