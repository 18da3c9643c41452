package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/seatbook/seatbook-backend/internal/config"
	"github.com/seatbook/seatbook-backend/internal/database"
	"github.com/seatbook/seatbook-backend/internal/handlers"
	"github.com/seatbook/seatbook-backend/internal/middleware"
	"github.com/seatbook/seatbook-backend/internal/routes"
	"github.com/seatbook/seatbook-backend/internal/services"
	"github.com/seatbook/seatbook-backend/internal/store"
	"github.com/seatbook/seatbook-backend/internal/validation"
	"github.com/seatbook/seatbook-backend/pkg/utils"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	// The email codec is mandatory: without it no identity can be stored.
	if cfg.EncryptionKey == "" {
		log.Fatal("ENCRYPTION_KEY not set. Generate one with: openssl rand -base64 32")
	}
	codec, err := utils.NewCodec(cfg.EncryptionKey)
	if err != nil {
		log.Fatal("ENCRYPTION_KEY is invalid: ", err)
	}
	log.Println("✅ Encryption key configured")

	// Connect to PostgreSQL
	log.Printf("Connecting to PostgreSQL...")
	if err := database.ConnectPostgres(cfg.PostgresURI); err != nil {
		log.Fatal("Failed to connect to PostgreSQL:", err)
	}
	defer database.DisconnectPostgres()

	// Connect to Redis
	log.Printf("Connecting to Redis...")
	if err := database.ConnectRedis(cfg.RedisURI); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer database.DisconnectRedis()

	// MongoDB audit trail is optional; warn and continue without it.
	var audit handlers.AuditLog
	if cfg.MongoURI != "" {
		log.Printf("Connecting to MongoDB...")
		if err := database.ConnectMongo(cfg.MongoURI); err != nil {
			log.Printf("⚠️  WARNING: failed to connect to MongoDB: %v", err)
			log.Println("   Audit trail will not be available")
		} else {
			defer database.DisconnectMongo()
			auditLog := services.NewMongoAuditLog(database.MongoDB)
			if err := auditLog.EnsureAuditIndexes(context.Background()); err != nil {
				log.Printf("⚠️  WARNING: failed to ensure audit indexes: %v", err)
			}
			audit = auditLog
		}
	} else {
		log.Println("MONGO_URI not set. Audit trail will not be available")
	}

	policy := validation.ParsePolicy(cfg.PasswordPolicy)
	log.Printf("Password policy: %s", policy)

	h := handlers.New(
		store.NewPostgresIdentityStore(database.PostgresDB),
		store.NewPostgresEventStore(database.PostgresDB),
		store.NewPostgresReservationStore(database.PostgresDB),
		services.NewRedisSessions(database.RedisClient),
		audit,
		codec,
		policy,
	)

	// Setup router
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity() {
			r.Use(mw)
		}
		log.Println("✅ Production security enabled (security headers, per-IP auth rate limiting)")
	} else {
		r.Use(middleware.RateLimitMiddleware)
	}

	// Health check (no auth)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.SetupRoutes(r, h)

	log.Printf("🚀 seatbook backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
