package config

import (
	"fmt"
	"log"

	"github.com/caarlos0/env/v6"
)

type LLMProvider string

const (
	ProviderOpenAI LLMProvider = "openai"
	ProviderYandex LLMProvider = "yandex"
)

type Config struct {
	HTTPAddr       string   `env:"HTTP_ADDR" envDefault:":8000"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://127.0.0.1:3000,http://localhost:3001,http://127.0.0.1:3001"`

	// Database
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     int    `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"task_management"`

	// LLM settings; the deterministic agent runs unless the LLM agent is
	// explicitly enabled and a provider is configured.
	EnableLLMAgent   bool        `env:"ENABLE_LLM_AGENT" envDefault:"false"`
	LLMProvider      LLMProvider `env:"LLM_PROVIDER" envDefault:"openai"`
	OpenAIAPIKey     string      `env:"OPENAI_API_KEY"`
	OpenAIBaseURL    string      `env:"OPENAI_BASE_URL"`
	OpenAIModel      string      `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	YandexOAuthToken string      `env:"YANDEX_OAUTH_TOKEN"`
	YandexFolderID   string      `env:"YANDEX_FOLDER_ID"`

	// Storage
	ChatLogPath string `env:"CHAT_LOG_PATH" envDefault:"logs/chat.jsonl"`

	// Reminders; empty disables the scheduler.
	ReminderCron string `env:"REMINDER_CRON" envDefault:"0 8 * * *"`

	// Optional Telegram transport; empty disables the bot.
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}

func (c *Config) ConnString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}
