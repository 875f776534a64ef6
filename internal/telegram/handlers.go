package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"mc-control-bot/internal/rcon"
	"mc-control-bot/internal/server"
	"mc-control-bot/internal/session"
	"mc-control-bot/internal/status"
)

func (b *Bot) handleIncomingMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	userID := msg.From.ID
	text := msg.Text

	selected, hasSelection := b.selection.Get(chatID)

	if action, ok := b.pending.Get(chatID); ok {
		log.Printf("chat_id=%d user_id=%d username=%s text=%q server=%s [pending action %s]",
			chatID, userID, msg.From.UserName, text, selected, action.Kind)
		b.handlePending(chatID, userID, text, action, selected)
		return
	}

	if !strings.HasPrefix(text, "/") {
		return
	}

	log.Printf("chat_id=%d user_id=%d username=%s text=%q server=%s",
		chatID, userID, msg.From.UserName, text, selected)

	cmd := stripMention(text)

	if cmd != "/set_server" && !hasSelection {
		b.sendMessage(chatID, "Сервер не определен")
		b.sendServerPicker(chatID, userID)
		return
	}

	switch cmd {
	case "/set_server":
		b.sendServerPicker(chatID, userID)
	case "/status":
		b.handleStatus(ctx, chatID, selected)
	case "/say":
		b.pending.Set(chatID, session.ActionSay, userID, b.now())
		b.sendMessage(chatID, "Введи текст для отправки в чат сервера (или /cancel)")
	case "/custom_command":
		if !b.authSvc.IsSuperUser(userID) {
			b.sendMessage(chatID, "Недостаточно прав.")
			return
		}
		b.pending.Set(chatID, session.ActionCustomCommand, userID, b.now())
		b.sendMessage(chatID, "Какую команду выполнить? (/cancel для отмены)")
	case "/save":
		if !b.authSvc.IsAuthorized(userID) {
			b.sendMessage(chatID, "Недостаточно прав.")
			return
		}
		if b.execRcon(chatID, selected, "save-all") {
			b.sendMessage(chatID, "Сохранение выполнено.")
		}
	case "/restart":
		if !b.authSvc.IsAuthorized(userID) {
			b.sendMessage(chatID, "Недостаточно прав.")
			return
		}
		if b.execRcon(chatID, selected, "stop") {
			b.sendMessage(chatID, "Сервер перезапускается. Подожди 5 минут")
		}
	case "/toggledownfall":
		if b.execRcon(chatID, selected, "weather clear") {
			b.sendMessage(chatID, "Дождь отключен")
		}
	case "/sleep":
		b.handleSleep(chatID, selected)
	default:
		b.sendMessage(chatID, "Неизвестная команда")
	}
}

// handlePending continues a multi-step action. Only the initiator's replies
// are honored; completion goes through CompareAndDelete so a reply racing the
// sweep consumes the action at most once.
func (b *Bot) handlePending(chatID, userID int64, text string, action session.PendingAction, selected server.ID) {
	if action.UserID != userID {
		return
	}

	t := strings.TrimSpace(stripMention(text))

	if t == cancelCmd {
		if !b.pending.CompareAndDelete(chatID, action) {
			return
		}
		b.sendMessage(chatID, "Ок, отменено.")
		return
	}

	switch action.Kind {
	case session.ActionSay:
		if t == "" || strings.Contains(t, "/") {
			b.sendMessage(chatID, "Недопустимый ввод. Попробуй ещё раз или /cancel")
			return
		}
		if !b.pending.CompareAndDelete(chatID, action) {
			return
		}
		if b.execRcon(chatID, selected, "say "+t) {
			b.sendMessage(chatID, "Сообщение отправлено: "+t)
		}
	case session.ActionCustomCommand:
		if !b.authSvc.IsSuperUser(userID) {
			if b.pending.CompareAndDelete(chatID, action) {
				b.sendMessage(chatID, "Недостаточно прав.")
			}
			return
		}
		if !b.pending.CompareAndDelete(chatID, action) {
			return
		}
		if b.execRcon(chatID, selected, t) {
			b.sendMessage(chatID, "Выполнено успешно: "+t)
		}
	}
}

func (b *Bot) handleStatus(ctx context.Context, chatID int64, id server.ID) {
	target, err := b.servers.Get(id)
	if err != nil {
		b.sendMessage(chatID, "Неизвестный сервер")
		return
	}

	fetchCtx, cancel := context.WithTimeout(ctx, b.backendTimeout)
	defer cancel()

	data, err := b.status.Fetch(fetchCtx, target)
	if err != nil {
		log.Printf("status fetch error: %v", err)
		switch {
		case errors.Is(err, status.ErrMalformed):
			b.sendMessage(chatID, "❌ Не удалось получить статус")
		case errors.Is(err, status.ErrTimeout):
			b.sendMessage(chatID, fmt.Sprintf("❌ Status сервер недоступен: превышено время ожидания (%d сек)",
				int(b.backendTimeout.Seconds())))
		default:
			b.sendMessage(chatID, "❌ Status сервер недоступен")
		}
		return
	}

	b.sendMessage(chatID, status.Format(data))
}

func (b *Bot) handleSleep(chatID int64, id server.ID) {
	key := session.CooldownKey{ChatID: chatID, ServerID: id, Action: "sleep"}

	if left := b.cooldowns.Remaining(key, b.sleepCooldown, b.now()); left > 0 {
		secs := int(left.Seconds())
		if m := secs / 60; m > 0 {
			b.sendMessage(chatID, fmt.Sprintf("Команда /sleep использовалась недавно. Подожди ещё %d мин. %d сек.", m, secs%60))
		} else {
			b.sendMessage(chatID, fmt.Sprintf("Команда /sleep использовалась недавно. Подожди ещё %d сек.", secs))
		}
		return
	}

	if b.execRcon(chatID, id, "time set day") {
		b.cooldowns.MarkUsed(key, b.now())
		b.sendMessage(chatID, "Настало утро")
	}
}

// execRcon runs one console line against the selected server and reports the
// classified failure to the chat. Returns true on success.
func (b *Bot) execRcon(chatID int64, id server.ID, line string) bool {
	target, err := b.servers.Get(id)
	if err != nil {
		b.sendMessage(chatID, "Неизвестный сервер")
		return false
	}
	if err := b.rcon.Command(target, line); err != nil {
		log.Printf("rcon command error (server=%s): %v", id, err)
		b.sendMessage(chatID, "❌ "+b.rconErrText(err))
		return false
	}
	return true
}

func (b *Bot) rconErrText(err error) string {
	switch {
	case errors.Is(err, rcon.ErrTimeout):
		return fmt.Sprintf("Бэкенд недоступен: превышено время ожидания (%d сек)", int(b.backendTimeout.Seconds()))
	case errors.Is(err, rcon.ErrAuthFailed):
		return "Бэкенд недоступен: ошибка авторизации RCON"
	default:
		return "Бэкенд недоступен"
	}
}

func (b *Bot) sendServerPicker(chatID, userID int64) {
	var row []tgbotapi.InlineKeyboardButton
	for _, srv := range b.servers.All() {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(srv.Label, "set_server:"+string(srv.ID)))
	}

	msg := tgbotapi.NewMessage(chatID, "Выбери сервер:")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(row)

	sent, err := b.s.Send(msg)
	if err != nil {
		log.Printf("failed to send server picker: %v", err)
		return
	}
	if sent.MessageID != 0 {
		b.pickers.Put(sent.MessageID, userID, chatID, b.now())
	}
}

func (b *Bot) handleCallback(cq *tgbotapi.CallbackQuery) {
	if cq.Message == nil || !strings.HasPrefix(cq.Data, "set_server:") {
		return
	}

	id := server.ID(strings.TrimPrefix(cq.Data, "set_server:"))
	srv, err := b.servers.Get(id)
	if err != nil {
		b.answerCallback(cq.ID, "")
		b.sendMessage(cq.Message.Chat.ID, "Неизвестный сервер")
		return
	}

	messageID := cq.Message.MessageID
	picker, st := b.pickers.Resolve(messageID, cq.From.ID)
	switch st {
	case session.ResolveNotOwner:
		b.answerCallback(cq.ID, "Выбрать может только инициатор")
		return
	case session.ResolveMissing:
		b.answerCallback(cq.ID, "")
		return
	}

	b.selection.Set(picker.ChatID, id)
	b.answerCallback(cq.ID, "")
	b.clearKeyboard(picker.ChatID, messageID)
	b.sendMessage(picker.ChatID, "Ок, выбран сервер: "+srv.Label)
}

// stripMention drops the @BotName suffix used to address the bot in groups.
func stripMention(text string) string {
	if at := strings.Index(text, "@"); at > 0 {
		return text[:at]
	}
	return text
}
