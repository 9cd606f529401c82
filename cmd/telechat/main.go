package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"TeleChat/internal/chatbot"
	"TeleChat/internal/config"
	"TeleChat/internal/ui"
)

func main() {
	// .env is optional; the flag default below picks up ASSISTANT_API_URL
	_ = godotenv.Load()

	var cfg config.Config

	flag.StringVar(&cfg.BaseURL, "base-url", config.BaseURLFromEnv(), "Assistant backend base URL")
	flag.StringVar(&cfg.Theme, "theme", "", "UI theme (light|dark); defaults to the saved preference or terminal detection")
	flag.StringVar(&cfg.DataDir, "data-dir", ".", "Directory for logs, preferences and the local store")
	flag.BoolVar(&cfg.Debug, "debug", false, "Enable debug logging")
	flag.BoolVar(&cfg.Plain, "plain", false, "Line-oriented mode without the interactive widget")
	flag.Parse()

	if cfg.Theme == "" {
		if prefs, err := config.LoadPrefs(cfg.DataDir); err == nil {
			cfg.Theme = prefs.Theme
		}
	}

	bot, err := chatbot.NewChatBot(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize TeleChat: %v\n", err)
		os.Exit(1)
	}

	if cfg.Plain {
		if err := bot.RunPlain(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := ui.Run(bot, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
