package status

import (
	"strings"
	"testing"
)

func TestFormat_FullPayload(t *testing.T) {
	out := Format(Response{
		Description: "ATM10 server",
		Version:     &Version{Name: "1.21"},
		Players: &Players{
			Online: 2,
			Max:    20,
			Sample: []Player{{Name: "alex"}, {Name: "steve"}},
		},
		Server: &Info{Latency: 34},
	})

	for _, want := range []string{
		"Статус сервера: 🟢 Онлайн",
		"Описание: ATM10 server",
		"Версия: 1.21",
		"Игроки: 2/20",
		"Latency: 34 ms",
		" • alex",
		" • steve",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestFormat_EmptyServer(t *testing.T) {
	out := Format(Response{})

	if !strings.Contains(out, "Версия: неизвестна") {
		t.Fatalf("missing version fallback:\n%s", out)
	}
	if !strings.Contains(out, "Игроки: 0") {
		t.Fatalf("missing player count:\n%s", out)
	}
	if !strings.Contains(out, "Нет игроков онлайн") {
		t.Fatalf("missing empty-sample fallback:\n%s", out)
	}
}
