package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"cryptofolio-telegram-bot/internal/alert"
	"cryptofolio-telegram-bot/internal/portfolio"
	"cryptofolio-telegram-bot/internal/price"
)

// BotConfig configuration of the bot
type BotConfig struct {
	Token          string
	Debug          bool
	UpdatesTimeout int
}

// Bot telegram interaction client
type Bot struct {
	Bot    *tgbotapi.BotAPI
	Config BotConfig

	store    *portfolio.Store
	registry *alert.Registry
	prices   *price.Client
}

// Message a telegram message struct
type Message struct {
	ChatID    int64
	MessageID int
	Text      string
}
