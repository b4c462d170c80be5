package telegram

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"cryptofolio-telegram-bot/internal/alert"
	"cryptofolio-telegram-bot/internal/commands"
	"cryptofolio-telegram-bot/internal/portfolio"
	"cryptofolio-telegram-bot/internal/price"
	"cryptofolio-telegram-bot/internal/types"
	"cryptofolio-telegram-bot/lib/helpers"
	"cryptofolio-telegram-bot/lib/translation"
)

// NewBot creates new telegram bot bound to the shared engine state.
func NewBot(c BotConfig, store *portfolio.Store, registry *alert.Registry, prices *price.Client) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(c.Token)
	if err != nil {
		return nil, errors.Wrap(err, "could not create telegram bot")
	}

	bot.Debug = c.Debug

	return &Bot{
		Bot:      bot,
		Config:   c,
		store:    store,
		registry: registry,
		prices:   prices,
	}, nil
}

// GetUpdatesChannel gets new updates
func (b *Bot) GetUpdatesChannel() (tgbotapi.UpdatesChannel, error) {
	updatesConfig := tgbotapi.NewUpdate(0)
	if b.Config.UpdatesTimeout > 0 {
		updatesConfig.Timeout = b.Config.UpdatesTimeout
	}
	return b.Bot.GetUpdatesChan(updatesConfig), nil
}

// SendMessage sends a telegram message
func (b *Bot) SendMessage(m Message) error {
	msg := tgbotapi.NewMessage(m.ChatID, m.Text)
	msg.ReplyToMessageID = m.MessageID
	msg.DisableWebPagePreview = true
	msg.ParseMode = "MarkdownV2"
	_, err := b.Bot.Send(msg)
	return errors.Wrapf(err, "could not send message: %v", m)
}

// Notify delivers a fired alert to the owner's private chat. It is the
// checker's notification channel.
func (b *Bot) Notify(n types.Notification) error {
	text := fmt.Sprintf(
		"🔔 *Price Alert\\!*\n\n*%s* is now *$%s* \\(%s *$%s*\\)",
		helpers.EscapeMarkdownV2(strings.ToUpper(n.Asset)),
		helpers.FormatPriceUS(n.Price, true),
		helpers.EscapeMarkdownV2(string(n.Condition)),
		helpers.FormatPriceUS(n.Target, true),
	)
	return b.SendMessage(Message{ChatID: n.ChatID, Text: text})
}

func ParseArguments(args string) (string, string) {
	re := regexp.MustCompile(`^(\S+)\s*(.+)?$`)
	matches := re.FindStringSubmatch(args)

	if len(matches) >= 2 {
		first := matches[1]
		rest := ""
		if len(matches) == 3 {
			rest = matches[2]
		}
		return first, strings.TrimSpace(rest)
	}
	return "", ""
}

// HandleUpdate processes Telegram updates
func (b *Bot) HandleUpdate(u tgbotapi.Update) string {
	text := helpText()
	log.Debugf("received command: %s", u.Message.Command())

	var err error = nil

	switch u.Message.Command() {
	case "p":
		if text, err = commands.CommandPrice(u.Message.CommandArguments()); err != nil {
			text = helpers.EscapeMarkdownV2(translation.Translate("Coin not found"))
			log.Error(err)
		}
	case "s":
		if text, err = commands.CommandStats(u.Message.CommandArguments()); err != nil {
			text = helpers.EscapeMarkdownV2(translation.Translate("Coin not found"))
			log.Error(err)
		}
	case "top":
		if text, err = commands.CommandTop(); err != nil {
			text = helpers.EscapeMarkdownV2(translation.Translate("Could not fetch data, please try again later"))
			log.Error(err)
		}
	case "global":
		if text, err = commands.CommandGlobal(); err != nil {
			text = helpers.EscapeMarkdownV2(translation.Translate("Could not fetch data, please try again later"))
			log.Error(err)
		}
	case "c":
		chartData, caption, err := commands.CommandChart(u.Message.CommandArguments())
		if err != nil {
			text = helpers.EscapeMarkdownV2(translation.Translate("Coin not found"))
			log.Error(err)
		} else if chartData != nil {
			photo := tgbotapi.NewPhoto(u.Message.Chat.ID, tgbotapi.FileBytes{
				Name:  "chart.png",
				Bytes: chartData,
			})
			photo.Caption = caption
			photo.ParseMode = "MarkdownV2"
			photo.ReplyToMessageID = u.Message.MessageID
			if _, err = b.Bot.Send(photo); err != nil {
				log.Error("error sending chart:", err)
			}
			return ""
		} else {
			text = caption
		}
	case "portfolio":
		text = b.handlePortfolioCommand(u.Message.Chat.ID, u.Message.CommandArguments())
	case "alert":
		text = b.handleAlertCommand(u.Message.Chat.ID, u.Message.CommandArguments())
	}

	return text
}

func (b *Bot) handlePortfolioCommand(chatID int64, args string) string {
	action, rest := ParseArguments(args)

	switch action {
	case "add":
		asset, amount := ParseArguments(rest)
		if asset == "" || amount == "" {
			return helpers.EscapeMarkdownV2(translation.Translate("Usage: /portfolio add <coin> <amount>"))
		}
		text, err := commands.CommandPortfolioAdd(b.store, chatID, asset, amount)
		if err != nil {
			return b.renderError(err)
		}
		return text
	case "view", "":
		text, err := commands.CommandPortfolioView(b.store, b.prices, chatID)
		if err != nil {
			return b.renderError(err)
		}
		return text
	}

	return helpers.EscapeMarkdownV2(translation.Translate("Usage: /portfolio add <coin> <amount> or /portfolio view"))
}

func (b *Bot) handleAlertCommand(chatID int64, args string) string {
	asset, rest := ParseArguments(args)
	if asset == "list" {
		return b.renderAlertList(chatID)
	}

	targetArg, conditionArg := ParseArguments(rest)
	if asset == "" || targetArg == "" {
		return helpers.EscapeMarkdownV2(translation.Translate("Usage: /alert <coin> <price> [above|below] or /alert list"))
	}

	target, err := strconv.ParseFloat(targetArg, 64)
	if err != nil {
		return b.renderError(types.Invalidf("%q is not a valid price", targetArg))
	}

	condition, err := types.ParseCondition(strings.ToLower(conditionArg))
	if err != nil {
		return b.renderError(err)
	}

	rule := types.Rule{Asset: asset, Target: target, Condition: condition}
	if err := b.registry.Add(chatID, rule); err != nil {
		return b.renderError(err)
	}

	return fmt.Sprintf(
		"🔔 Alert set: *%s* %s *$%s*",
		helpers.EscapeMarkdownV2(strings.ToUpper(asset)),
		helpers.EscapeMarkdownV2(string(condition)),
		helpers.FormatPriceUS(target, true),
	)
}

func (b *Bot) renderAlertList(chatID int64) string {
	rules := b.registry.List(chatID)
	if len(rules) == 0 {
		return helpers.EscapeMarkdownV2(translation.Translate("You have no active alerts"))
	}

	var list strings.Builder
	list.WriteString("*🔔 Your active alerts:*\n\n")
	for _, rule := range rules {
		list.WriteString(fmt.Sprintf(
			"▫️*%s* %s *$%s*\n",
			helpers.EscapeMarkdownV2(strings.ToUpper(rule.Asset)),
			helpers.EscapeMarkdownV2(string(rule.Condition)),
			helpers.FormatPriceUS(rule.Target, true),
		))
	}
	return list.String()
}

// renderError turns engine errors into user-facing replies. Validation
// problems are worth repeating back verbatim, provider internals are not.
func (b *Bot) renderError(err error) string {
	var validation *types.ValidationError
	if errors.As(err, &validation) {
		return "⚠️ " + helpers.EscapeMarkdownV2(validation.Reason)
	}
	log.Error(err)
	return helpers.EscapeMarkdownV2(translation.Translate("Could not fetch data, please try again later"))
}

func helpText() string {
	return helpers.EscapeMarkdownV2(translation.Translate(
		"Commands:\n" +
			"/p <coin> - current price\n" +
			"/s <coin> - 24h stats\n" +
			"/c <coin> - 7 day price chart\n" +
			"/top - top 10 coins by market cap\n" +
			"/global - global market stats\n" +
			"/portfolio add <coin> <amount> - record a position\n" +
			"/portfolio view - list holdings with value\n" +
			"/alert <coin> <price> [above|below] - set a price alert\n" +
			"/alert list - list active alerts",
	))
}
