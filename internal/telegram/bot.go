// Package telegram runs the task assistant as a Telegram bot. Each chat
// is its own conversation; the transcript lives in the history manager so
// follow-up messages keep their context until the user resets it.
package telegram

import (
	"context"
	"log"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"taskchat/internal/agent"
	"taskchat/internal/history"
)

const resetCmd = "reset_ctx"

const welcomeMessage = "Hi! I'm your task assistant. 😊\n\n" +
	"Tell me what you need in plain language:\n" +
	"• 'Create a task to buy groceries tomorrow'\n" +
	"• 'Show me all my tasks'\n" +
	"• 'Mark task 1 as completed'"

type Bot struct {
	s       sender
	api     *tgbotapi.BotAPI
	agent   agent.Agent
	history *history.Manager
}

func New(botToken string, ag agent.Agent) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	return &Bot{
		s:       botAPISender{api: api},
		api:     api,
		agent:   ag,
		history: history.NewManager(),
	}, nil
}

func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message != nil {
				b.handleIncomingMessage(ctx, update.Message)
				continue
			}
			if update.CallbackQuery != nil {
				b.handleCallback(update.CallbackQuery)
			}
		}
	}
}

func (b *Bot) handleIncomingMessage(ctx context.Context, msg *tgbotapi.Message) {
	log.Printf("Incoming message from %d (@%s): %q", msg.From.ID, msg.From.UserName, msg.Text)

	if msg.IsCommand() {
		b.handleCommand(msg)
		return
	}

	chatKey := conversationKey(msg.Chat.ID)
	reply, transcript, err := b.agent.Process(ctx, msg.Text, b.history.Get(chatKey))
	if err != nil {
		log.Printf("process message: %v", err)
		b.sendMessage(msg.Chat.ID, "Sorry, something went wrong.")
		return
	}
	b.history.Replace(chatKey, transcript)

	out := tgbotapi.NewMessage(msg.Chat.ID, reply)
	out.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Reset conversation", resetCmd),
		),
	)
	if _, err := b.s.Send(out); err != nil {
		log.Printf("failed to send message: %v", err)
	}
}

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start", "help":
		b.sendMessage(msg.Chat.ID, welcomeMessage)
	case "reset":
		b.history.Reset(conversationKey(msg.Chat.ID))
		b.sendMessage(msg.Chat.ID, "Conversation reset")
	default:
		b.sendMessage(msg.Chat.ID, "Unknown command. Try /help")
	}
}

func (b *Bot) handleCallback(cb *tgbotapi.CallbackQuery) {
	if cb.Data == resetCmd {
		b.history.Reset(conversationKey(cb.Message.Chat.ID))
		b.sendMessage(cb.Message.Chat.ID, "Conversation reset")
	}
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.s.Send(msg); err != nil {
		log.Printf("failed to send message: %v", err)
	}
}

func conversationKey(chatID int64) string {
	return "tg:" + strconv.FormatInt(chatID, 10)
}
