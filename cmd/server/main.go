package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finmitra-backend/internal/config"
	"finmitra-backend/internal/database"
	"finmitra-backend/internal/handlers"
	"finmitra-backend/internal/knowledge"
	"finmitra-backend/internal/llm"
	"finmitra-backend/internal/memory"
	"finmitra-backend/internal/middleware"
	"finmitra-backend/internal/orchestrator"
	"finmitra-backend/internal/repository"
	"finmitra-backend/internal/router"
	"finmitra-backend/internal/websocket"
	"finmitra-backend/internal/worker"
)

func main() {
	log.Println("🚀 Starting FinMitra Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Initialize Redis Clients ────
	redisClients, err := database.NewRedisClients(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClients.Close()
	log.Println("✓ Redis connected")

	// ──── Step 4: Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Initialize LLM Provider ────
	provider := buildProvider(cfg)

	// ──── Initialize Core Services ────
	sessionStore := memory.NewRedisStore(redisClients.Sessions, time.Duration(cfg.SessionTTLMinutes)*time.Minute)
	assessmentRepo := repository.NewAssessmentRepo(pool)
	enqueuer := worker.NewEnqueuer(redisClients.Queue)
	retriever := knowledge.NewRetriever(knowledge.Docs)
	orch := orchestrator.New(provider, retriever, enqueuer)
	sessionAuth := middleware.NewSessionAuth(cfg.JWTSecret, time.Duration(cfg.SessionTTLMinutes)*time.Minute)

	// ──── Initialize Handlers ────
	sessionHandler := handlers.NewSessionHandler(sessionAuth, sessionStore)
	chatHandler := handlers.NewChatHandler(sessionStore, orch)
	reportHandler := handlers.NewReportHandler(assessmentRepo)

	// ──── Step 5: Start Archive Worker Pool ────
	workerPool := worker.NewPool(redisClients.Queue, assessmentRepo, cfg.ArchiveWorkers)
	workerPool.Start()
	log.Printf("✓ Archive worker pool started (%d goroutines)", cfg.ArchiveWorkers)

	// ──── Step 6: Start WebSocket Hub ────
	wsHub := websocket.NewHub(sessionAuth, sessionStore, orch)
	log.Println("✓ WebSocket hub started")

	// ──── Step 7: Start HTTP Server ────
	r := router.New(
		sessionAuth,
		sessionHandler,
		chatHandler,
		reportHandler,
		wsHub,
		cfg.FrontendURL,
		cfg.ChatRateLimit,
	)

	server := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.Port),
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		// No write timeout: /chat streams SSE and /ws holds the socket open.
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		workerPool.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ FinMitra Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)
	log.Printf("  WS:  ws://localhost:%s/api/v1/ws", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}

// buildProvider selects the configured LLM backend. A missing key is not
// fatal: the orchestrator answers from the local knowledge base instead.
func buildProvider(cfg *config.Config) llm.Provider {
	switch cfg.LLMProvider {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			log.Println("⚠ GEMINI_API_KEY not set, running with local answers only")
			return nil
		}
		client, err := llm.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Printf("⚠ Gemini client initialization failed (%v), running with local answers only", err)
			return nil
		}
		log.Println("✓ Gemini client initialized")
		return client
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			log.Println("⚠ OPENAI_API_KEY not set, running with local answers only")
			return nil
		}
		log.Printf("✓ OpenAI-compatible client initialized (%s)", cfg.OpenAIModel)
		return llm.NewOpenAIClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel)
	default:
		log.Printf("⚠ Unknown LLM_PROVIDER %q, running with local answers only", cfg.LLMProvider)
		return nil
	}
}
