package status

import (
	"fmt"
	"strings"
)

// Format renders the status payload for chat.
func Format(s Response) string {
	version := "неизвестна"
	if s.Version != nil && s.Version.Name != "" {
		version = s.Version.Name
	}

	var online, max int
	if s.Players != nil {
		online = s.Players.Online
		max = s.Players.Max
	}

	var sb strings.Builder
	sb.WriteString("Статус сервера: 🟢 Онлайн\n")

	if strings.TrimSpace(s.Description) != "" {
		sb.WriteString("Описание: " + s.Description + "\n")
	}

	sb.WriteString("Версия: " + version + "\n")

	if max > 0 {
		sb.WriteString(fmt.Sprintf("Игроки: %d/%d\n\n", online, max))
	} else {
		sb.WriteString(fmt.Sprintf("Игроки: %d\n\n", online))
	}

	if s.Server != nil {
		sb.WriteString(fmt.Sprintf("Latency: %d ms\n\n", s.Server.Latency))
	}

	if s.Players != nil && len(s.Players.Sample) > 0 {
		for _, p := range s.Players.Sample {
			sb.WriteString(" • " + p.Name + "\n")
		}
	} else {
		sb.WriteString("Нет игроков онлайн")
	}

	return strings.TrimSpace(sb.String())
}
