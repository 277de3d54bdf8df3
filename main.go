package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"lifesource-backend/internal/catalog"
	"lifesource-backend/internal/config"
	"lifesource-backend/internal/database"
	"lifesource-backend/internal/handlers"
	"lifesource-backend/internal/mailer"
	"lifesource-backend/internal/middleware"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)
	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureCatalogIndexes(db); err != nil {
		log.Printf("catalog index warning: %v", err)
	}
	if err := database.SeedAdmin(db, config.AppEnv.AdminEmail, config.AppEnv.AdminPassword); err != nil {
		log.Printf("admin seed warning: %v", err)
	}

	products := catalog.NewStore(
		"products",
		catalog.NewMongoBackend(db.Collection("products")),
		catalog.MapProduct,
	)
	services := catalog.NewStore(
		"services",
		catalog.NewMongoBackend(db.Collection("services")),
		catalog.MapService,
	)

	warmCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := products.WarmUp(warmCtx); err != nil {
		log.Printf("product cache warm-up warning: %v", err)
	}
	if err := services.WarmUp(warmCtx); err != nil {
		log.Printf("service cache warm-up warning: %v", err)
	}
	cancel()

	// Change streams keep the cache fresh for writes this process didn't
	// make; requires a replica-set deployment, otherwise the subscription
	// just logs and exits.
	go func() {
		if err := products.Subscribe(context.Background()); err != nil {
			log.Printf("product change stream stopped: %v", err)
		}
	}()
	go func() {
		if err := services.Subscribe(context.Background()); err != nil {
			log.Printf("service change stream stopped: %v", err)
		}
	}()

	mail := mailer.New(
		config.AppEnv.SMTPHost,
		config.AppEnv.SMTPPort,
		config.AppEnv.SMTPUsername,
		config.AppEnv.SMTPPassword,
		config.AppEnv.MailFrom,
	)

	r := gin.New()
	r.Use(gin.Logger(), gin.CustomRecovery(handlers.PanicEnvelope))
	r.Static("/public", config.AppEnv.PublicDir)

	r.GET("/products", handlers.GetPublicProducts(products))
	r.GET("/products/:slug", handlers.GetProductBySlug(products))
	r.GET("/services", handlers.GetPublicServices(services))
	r.GET("/services/:slug", handlers.GetServiceBySlug(services))
	r.GET("/categories", handlers.GetCategories())
	r.POST("/contact", handlers.SubmitContact(db, mail, config.AppEnv.ContactRecipient))

	r.POST("/admin/api/login", handlers.AdminLogin(db, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL))

	admin := r.Group("/admin/api")
	admin.Use(middleware.AdminAuth(config.AppEnv.JWTSecret))
	{
		admin.GET("/products", handlers.GetAllProducts(products))
		admin.GET("/products/:id", handlers.GetProductByID(products))
		admin.POST("/products", handlers.CreateProduct(products))
		admin.PUT("/products/:id", handlers.UpdateProduct(products))
		admin.PATCH("/products/:id/toggle", handlers.ToggleProduct(products))
		admin.DELETE("/products/:id", handlers.DeleteProduct(products))

		admin.GET("/services", handlers.GetAllServices(services))
		admin.GET("/services/:id", handlers.GetServiceByID(services))
		admin.POST("/services", handlers.CreateService(services))
		admin.PUT("/services/:id", handlers.UpdateService(services))
		admin.PATCH("/services/:id/toggle", handlers.ToggleService(services))
		admin.DELETE("/services/:id", handlers.DeleteService(services))

		admin.GET("/messages", handlers.GetContactMessages(db))
		admin.POST("/uploads", handlers.UploadImage(config.AppEnv.PublicDir))
		admin.DELETE("/uploads", handlers.DeleteUpload(config.AppEnv.PublicDir))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
