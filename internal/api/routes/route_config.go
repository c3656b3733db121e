package routes

import (
	"Storybrush-Backend/internal/api/handlers"
	"Storybrush-Backend/internal/middleware"
	"Storybrush-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App               *fiber.App
	UserHandler       handlers.UserHandler
	CreditHandler     handlers.CreditHandler
	OrderHandler      handlers.OrderHandler
	GenerationHandler handlers.GenerationHandler
	ContentHandler    handlers.ContentHandler
	AdminHandler      handlers.AdminHandler
	Middleware        middleware.Middleware
	JWTService        jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Credits()
	c.Generation()
	c.Content()
	c.Admin()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	// user routes
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Patch("/update", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UpdateUser)
	}
}

func (c *Config) Credits() {
	credits := c.App.Group("/api/v1/credits")
	credits.Get("/packages", c.CreditHandler.GetCreditPackages)
	credits.Get("", c.Middleware.AuthMiddleware(c.JWTService), c.CreditHandler.GetUserCredits)
	credits.Post("/discount/validate", c.Middleware.AuthMiddleware(c.JWTService), c.CreditHandler.ValidateDiscount)
	credits.Post("/checkout", c.Middleware.AuthMiddleware(c.JWTService), c.OrderHandler.Checkout)

	// Registered directly: a group middleware on /api/v1/orders would also
	// guard the guest verify route.
	c.App.Get("/api/v1/orders", c.Middleware.AuthMiddleware(c.JWTService), c.OrderHandler.GetUserOrders)
}

func (c *Config) Generation() {
	generate := c.App.Group("/api/v1/generate", c.Middleware.AuthMiddleware(c.JWTService))
	generate.Post("/story", c.GenerationHandler.GenerateStory)
	generate.Post("/coloring", c.GenerationHandler.GenerateColoring)
}

func (c *Config) Content() {
	content := c.App.Group("/api/v1/content", c.Middleware.AuthMiddleware(c.JWTService))
	content.Get("", c.ContentHandler.GetUserContent)
	content.Post("/:id/favorite", c.ContentHandler.ToggleFavorite)
	content.Post("/:id/export", c.ContentHandler.ExportContent)
	content.Delete("/:id", c.ContentHandler.DeleteContent)
}

func (c *Config) Admin() {
	admin := c.App.Group("/api/v1/admin", c.Middleware.AdminMiddleware())
	admin.Get("/users", c.AdminHandler.GetUsers)
	admin.Get("/users/export", c.AdminHandler.ExportUsers)
	admin.Post("/sync", c.AdminHandler.SyncStores)
	admin.Delete("/users/:id", c.AdminHandler.DeleteUser)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong, its works"})
	})
	c.App.Post("/webhook/midtrans", c.OrderHandler.MidtransWebhookHandler)
	c.App.Get("/api/v1/orders/verify", c.OrderHandler.VerifyOrder)
}
