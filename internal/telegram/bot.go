package telegram

import (
	"context"
	"fmt"
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"mc-control-bot/internal/auth"
	"mc-control-bot/internal/rcon"
	"mc-control-bot/internal/server"
	"mc-control-bot/internal/session"
	"mc-control-bot/internal/status"
)

const cancelCmd = "/cancel"

type Bot struct {
	api     *tgbotapi.BotAPI
	s       sender
	authSvc *auth.Service
	servers *server.Registry
	rcon    rcon.Client
	status  status.Client

	pending   *session.PendingStore
	pickers   *session.PickerStore
	selection *session.SelectionStore
	cooldowns *session.CooldownLedger

	backendTimeout time.Duration
	sleepCooldown  time.Duration

	now func() time.Time
}

func New(
	botToken string,
	authSvc *auth.Service,
	servers *server.Registry,
	rconClient rcon.Client,
	statusClient status.Client,
	pending *session.PendingStore,
	pickers *session.PickerStore,
	selection *session.SelectionStore,
	cooldowns *session.CooldownLedger,
	backendTimeout time.Duration,
	sleepCooldown time.Duration,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	return &Bot{
		api:            api,
		s:              botAPISender{api: api},
		authSvc:        authSvc,
		servers:        servers,
		rcon:           rconClient,
		status:         statusClient,
		pending:        pending,
		pickers:        pickers,
		selection:      selection,
		cooldowns:      cooldowns,
		backendTimeout: backendTimeout,
		sleepCooldown:  sleepCooldown,
		now:            time.Now,
	}, nil
}

func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		if update.Message != nil && update.Message.Text != "" {
			b.handleIncomingMessage(ctx, update.Message)
			continue
		}
		if update.CallbackQuery != nil {
			b.handleCallback(update.CallbackQuery)
			continue
		}
	}
}

// SetupCommands registers the command menu for every chat scope.
func (b *Bot) SetupCommands() error {
	commands := []tgbotapi.BotCommand{
		{Command: "set_server", Description: "Выбрать сервер"},
		{Command: "status", Description: "Статус сервера"},
		{Command: "say", Description: "Сказать в чат сервера"},
		{Command: "save", Description: "Сохранить мир"},
		{Command: "restart", Description: "Перезапустить сервер"},
		{Command: "toggledownfall", Description: "Отключить дождь"},
		{Command: "sleep", Description: "Поспать"},
		{Command: "custom_command", Description: "Выполнить произвольную команду"},
	}
	scopes := []tgbotapi.BotCommandScope{
		tgbotapi.NewBotCommandScopeDefault(),
		tgbotapi.NewBotCommandScopeAllPrivateChats(),
		tgbotapi.NewBotCommandScopeAllGroupChats(),
		tgbotapi.NewBotCommandScopeAllChatAdministrators(),
	}
	for _, scope := range scopes {
		if _, err := b.s.Request(tgbotapi.NewSetMyCommandsWithScope(scope, commands...)); err != nil {
			return err
		}
	}
	return nil
}

// PendingExpired implements sweeper.Notifier.
func (b *Bot) PendingExpired(chatID int64, action session.PendingAction) {
	b.sendMessage(chatID, fmt.Sprintf("Время вышло. Команда %s отменена.", action.Kind.Command()))
}

// PickerExpired implements sweeper.Notifier.
func (b *Bot) PickerExpired(chatID int64, messageID int) {
	b.clearKeyboard(chatID, messageID)
	b.sendMessage(chatID, "Время вышло. Команда /set_server отменена.")
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.s.Send(msg); err != nil {
		log.Printf("failed to send message: %v", err)
	}
}

func (b *Bot) answerCallback(callbackID, text string) {
	if _, err := b.s.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		log.Printf("failed to answer callback: %v", err)
	}
}

// clearKeyboard strips the inline keyboard from a sent message. Best-effort.
func (b *Bot) clearKeyboard(chatID int64, messageID int) {
	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, messageID,
		tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}})
	if _, err := b.s.Request(edit); err != nil {
		log.Printf("failed to remove inline keyboard: %v", err)
	}
}
