package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"taskchat/internal/agent"
	"taskchat/internal/chatlog"
	"taskchat/internal/config"
	"taskchat/internal/llm"
	"taskchat/internal/scheduler"
	"taskchat/internal/server"
	"taskchat/internal/tasks"
	"taskchat/internal/telegram"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()
	ctx := context.Background()

	db, err := tasks.Connect(cfg.ConnString())
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	store := tasks.NewPostgresStore(db)
	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatalf("failed to ensure schema: %v", err)
	}

	ag := newAgent(cfg, store)

	var rec chatlog.Recorder
	if cfg.ChatLogPath != "" {
		fr, err := chatlog.NewFileRecorder(cfg.ChatLogPath)
		if err != nil {
			log.Printf("failed to init chat log: %v", err)
		} else {
			rec = fr
		}
	}

	hub := server.NewHub()
	srv := server.New(store, ag, hub, rec)
	mux := http.NewServeMux()
	srv.Register(mux)

	if cfg.ReminderCron != "" {
		sched := scheduler.New(store, hub, cfg.ReminderCron)
		if err := sched.Start(); err != nil {
			log.Fatalf("failed to start scheduler: %v", err)
		}
		defer sched.Stop()
	}

	if cfg.TelegramBotToken != "" {
		bot, err := telegram.New(cfg.TelegramBotToken, ag)
		if err != nil {
			log.Fatalf("failed to init telegram bot: %v", err)
		}
		go bot.Start(ctx)
		log.Println("🤖 Telegram bot started")
	}

	handler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler(mux)

	log.Printf("🚀 Listening on %s", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, handler); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

// newAgent picks the conversation strategy: rule-based by default, the
// LLM agent when enabled and a provider can be built.
func newAgent(cfg *config.Config, store tasks.Store) agent.Agent {
	if !cfg.EnableLLMAgent {
		return agent.NewDeterministic(store)
	}

	client, err := llm.NewFactory(cfg).CreateClient(string(cfg.LLMProvider))
	if err != nil {
		log.Printf("LLM agent unavailable (%v), falling back to the rule-based agent", err)
		return agent.NewDeterministic(store)
	}
	log.Printf("🧠 Using LLM agent with provider %s", cfg.LLMProvider)
	return agent.NewLLM(client, store)
}
