package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/partpeople/lead-portal/internal/infra/database"
	"github.com/partpeople/lead-portal/internal/infra/http/handlers"
	"github.com/partpeople/lead-portal/internal/infra/http/middleware"
	"github.com/partpeople/lead-portal/internal/infra/queue"
	"github.com/partpeople/lead-portal/internal/usecase"
	"github.com/partpeople/lead-portal/internal/vault"
)

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	v, err := vault.New(os.Getenv("ENCRYPTION_KEY"))
	if err != nil {
		log.Fatal(err)
	}

	sessions, err := middleware.NewSessionService(os.Getenv("SESSION_SECRET"), 12*time.Hour)
	if err != nil {
		log.Fatal(err)
	}

	rabbitMQ, err := queue.NewRabbitMQ(
		env("RABBITMQ_USER", "guest"),
		env("RABBITMQ_PASS", "guest"),
		env("RABBITMQ_HOST", "localhost"),
		env("RABBITMQ_PORT", "5672"),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositories
	leadRepo := database.NewLeadRepository(db)
	messageRepo := database.NewMessageRepository(db)
	agentRepo := database.NewAgentRepository(db)
	taskRepo := database.NewTaskRepository(db)
	activityRepo := database.NewActivityRepository(db)
	emailLogRepo := database.NewEmailLogRepository(db)
	apiKeyRepo := database.NewApiKeyRepository(db)
	settingRepo := database.NewSettingRepository(db)
	userRepo := database.NewUserRepository(db)

	// 2. Producer and drafter
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	drafter := usecase.NewTemplateDrafter(os.Getenv("MAIL_SENDER_NAME"), os.Getenv("MAIL_SIGNATURE"))

	// 3. UseCases
	recorder := usecase.NewActivityRecorder(activityRepo, agentRepo)
	outreachUC := usecase.NewOutreachUseCase(
		leadRepo, emailLogRepo, drafter, recorder, producer,
		os.Getenv("DEMO_BASE_URL"),
	)
	messageUC := usecase.NewMessageUseCase(leadRepo, messageRepo, recorder)
	apiKeyUC := usecase.NewApiKeyUseCase(apiKeyRepo, v)

	// 4. Worker (consumes inbound replies and files them into threads)
	worker := queue.NewWorker(rabbitMQ.Ch, messageUC)
	go worker.Start(queue.ReplyQueue)

	// 5. Handlers
	authHandler := handlers.NewAuthHandler(userRepo, sessions)
	leadHandler := handlers.NewLeadHandler(outreachUC)
	messageHandler := handlers.NewMessageHandler(messageUC)
	pipelineHandler := handlers.NewPipelineHandler(outreachUC)
	agentHandler := handlers.NewAgentHandler(agentRepo)
	taskHandler := handlers.NewTaskHandler(taskRepo, agentRepo)
	activityHandler := handlers.NewActivityHandler(recorder)
	apiKeyHandler := handlers.NewApiKeyHandler(apiKeyUC)
	settingHandler := handlers.NewSettingHandler(settingRepo)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(middleware.Metrics)

	r.Post("/login", authHandler.HandleLogin)
	r.Post("/logout", authHandler.HandleLogout)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(sessions))

		r.Route("/leads", func(r chi.Router) {
			r.Get("/", leadHandler.HandleList)
			r.Post("/", leadHandler.HandleCreate)
			r.Get("/{id}", leadHandler.HandleGet)
			r.Put("/{id}", leadHandler.HandleUpdate)
			r.Delete("/{id}", leadHandler.HandleDelete)
			r.Post("/{id}/create-demo", leadHandler.HandleCreateDemo)
			r.Post("/{id}/generate-email", leadHandler.HandleGenerateEmail)
			r.Put("/{id}/draft", leadHandler.HandleEditDraft)
			r.Post("/{id}/approve", leadHandler.HandleApprove)
			r.Get("/{id}/email-logs", leadHandler.HandleEmailLogs)
			r.Post("/{id}/mark-read", messageHandler.HandleMarkRead)

			r.Route("/{id}/messages", func(r chi.Router) {
				r.Get("/", messageHandler.HandleList)
				r.Post("/", messageHandler.HandleCreate)
				r.Put("/{msgId}", messageHandler.HandleEdit)
				r.Post("/{msgId}/approve", messageHandler.HandleApprove)
			})
		})

		r.Route("/pipeline", func(r chi.Router) {
			r.Get("/", pipelineHandler.HandleGet)
			r.Post("/", pipelineHandler.HandleCreate)
			r.Put("/", pipelineHandler.HandleUpdate)
			r.Delete("/", pipelineHandler.HandleDelete)
		})

		r.Route("/admin/agents", func(r chi.Router) {
			r.Get("/", agentHandler.HandleList)
			r.Post("/", agentHandler.HandleCreate)
			r.Put("/", agentHandler.HandleUpdate)
			r.Delete("/", agentHandler.HandleDelete)
		})

		r.Route("/admin/api-keys", func(r chi.Router) {
			r.Get("/", apiKeyHandler.HandleList)
			r.Post("/", apiKeyHandler.HandleCreate)
			r.Put("/", apiKeyHandler.HandleUpdate)
			r.Patch("/", apiKeyHandler.HandleSetActive)
			r.Delete("/", apiKeyHandler.HandleDelete)
		})

		r.Route("/admin/settings", func(r chi.Router) {
			r.Get("/", settingHandler.HandleList)
			r.Put("/", settingHandler.HandleUpdate)
			r.Delete("/", settingHandler.HandleDelete)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", taskHandler.HandleList)
			r.Post("/", taskHandler.HandleCreate)
			r.Put("/", taskHandler.HandleUpdate)
			r.Delete("/", taskHandler.HandleDelete)
		})

		r.Route("/activity", func(r chi.Router) {
			r.Get("/", activityHandler.HandleList)
			r.Post("/", activityHandler.HandleCreate)
			r.Delete("/", activityHandler.HandleDelete)
		})
	})

	port := ":" + env("PORT", "8080")
	log.Printf("Lead portal listening on %s", port)
	http.ListenAndServe(port, r)
}
