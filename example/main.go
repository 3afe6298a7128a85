package main

import (
	"fmt"
	"time"

	goexpando "github.com/neomutt/goexpando"
	"github.com/neomutt/goexpando/maildomain"
)

func main() {
	tree, err := goexpando.Parse(
		`%4C %Z %-15.15F %s%> %[%Y-%m-%d]`,
		maildomain.Definitions(),
	)
	if err != nil {
		panic(err)
	}

	inbox := []*maildomain.Message{
		{
			Subject:      "Re: quarterly numbers",
			From:         "Alice Example",
			DateSent:     time.Date(2026, time.July, 29, 14, 30, 0, 0, time.Local),
			DateReceived: time.Date(2026, time.July, 29, 14, 31, 0, 0, time.Local),
			Unread:       true,
			Attachments:  2,
		},
		{
			Subject:  "Lunch?",
			From:     "Bob",
			DateSent: time.Date(2026, time.July, 30, 9, 15, 0, 0, time.Local),
			Flagged:  true,
		},
	}

	for _, msg := range inbox {
		var out goexpando.Appender
		goexpando.Render(tree, maildomain.RenderData(msg), 80, &out)
		fmt.Println(out.String())
	}
}
