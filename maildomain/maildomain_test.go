package maildomain

import (
	"testing"
	"time"

	goexpando "github.com/neomutt/goexpando"
)

func TestRenderIndexLine(t *testing.T) {
	msg := &Message{
		Subject:      "Re: quarterly numbers",
		From:         "Alice Example",
		DateSent:     time.Date(2026, time.July, 29, 14, 30, 0, 0, time.UTC),
		DateReceived: time.Date(2026, time.July, 29, 14, 31, 0, 0, time.UTC),
		Unread:       true,
		Attachments:  2,
	}

	tree, err := goexpando.Parse(`%-15.15F %s %[%Y-%m-%d]`, Definitions())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	var out goexpando.Appender
	goexpando.Render(tree, RenderData(msg), 80, &out)

	got := out.String()
	want := "Alice Example   Re: quarterly numbers 2026-07-29"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFlags(t *testing.T) {
	msg := &Message{Unread: true, Attachments: 1}
	tree, err := goexpando.Parse(`%S`, Definitions())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	var out goexpando.Appender
	goexpando.Render(tree, RenderData(msg), 80, &out)
	if out.String() != "NA" {
		t.Fatalf("got %q, want %q", out.String(), "NA")
	}
}

func TestConditionalUnread(t *testing.T) {
	msg := &Message{Unread: true}
	tree, err := goexpando.Parse(`%?U?new&old?`, Definitions())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	var out goexpando.Appender
	goexpando.Render(tree, RenderData(msg), 80, &out)
	if out.String() != "new" {
		t.Fatalf("got %q, want %q", out.String(), "new")
	}
}
