// Package maildomain is a worked example host subsystem: a mail-index
// symbol table exercising the root goexpando engine end to end
// (subject, correspondents, dates, size, flags, thread-tree prefix),
// the kind of caller a real client's hdrline-equivalent would supply.
//
// Grounded on the column/colour classification in
// 9fdc8792_ajramos-giztui__internal-render-email.go.go (EmailColorer,
// ColumnCell): that file maps a message's fields and state to rendered
// columns and colours; here the same fields are mapped to
// (domain, uid) symbols the engine's parser and renderer consume.
package maildomain

import (
	"strings"
	"time"

	"github.com/neomutt/goexpando"
)

// Domain is this package's single symbol-table domain id.
const Domain = 1

// Symbol uids within Domain.
const (
	UIDSubject = iota
	UIDFrom
	UIDTo
	UIDDateSent
	UIDDateReceived
	UIDSize
	UIDFlags
	UIDAttachmentCount
	UIDThreadTreePrefix
	UIDIsUnread
	UIDIsFlagged
	UIDDateFormat // the "[" enclosed-date symbol
)

// Message is the opaque per-row object a CallbackTable's getters
// receive, standing in for whatever a real client's internal message
// representation looks like.
type Message struct {
	Subject      string
	From         string
	To           string
	DateSent     time.Time
	DateReceived time.Time
	Size         int64
	Unread       bool
	Flagged      bool
	Deleted      bool
	Attachments  int
	TreePrefix   string // pre-rendered tree-drawing glyphs for this row
}

// Definitions returns the DefinitionTable a parser needs to validate a
// mail-index format string against this domain's symbols.
func Definitions() *expando.DefinitionTable {
	return &expando.DefinitionTable{
		Domain: Domain,
		Entries: []expando.DefinitionEntry{
			{Domain: Domain, UID: UIDSubject, ShortName: "s", LongName: "subject", IsString: true},
			{Domain: Domain, UID: UIDFrom, ShortName: "F", LongName: "from", IsString: true},
			{Domain: Domain, UID: UIDTo, ShortName: "t", LongName: "to", IsString: true},
			{Domain: Domain, UID: UIDDateSent, ShortName: "d", LongName: "date-sent", IsNumber: true, DateShorthand: true},
			{Domain: Domain, UID: UIDDateReceived, ShortName: "Z", LongName: "date-received", IsNumber: true, DateShorthand: true},
			{Domain: Domain, UID: UIDSize, ShortName: "c", LongName: "size", IsNumber: true},
			{Domain: Domain, UID: UIDFlags, ShortName: "S", LongName: "flags", IsString: true},
			{Domain: Domain, UID: UIDAttachmentCount, ShortName: "X", LongName: "attachment-count", IsNumber: true},
			{Domain: Domain, UID: UIDThreadTreePrefix, ShortName: "C", LongName: "tree-prefix", IsString: true},
			{Domain: Domain, UID: UIDIsUnread, ShortName: "U", LongName: "is-unread", IsNumber: true, DateShorthand: false},
			{Domain: Domain, UID: UIDIsFlagged, ShortName: "f", LongName: "is-flagged", IsNumber: true},
			{Domain: Domain, UID: UIDDateFormat, ShortName: "[", LongName: "[", IsString: true},
		},
	}
}

// Callbacks builds the render-time CallbackTable for a single message,
// per spec.md §4.C's "domain -> table -> uid -> getter" resolution
// contract.
func Callbacks(msg *Message) *expando.CallbackTable {
	return &expando.CallbackTable{
		Domain: Domain,
		Getters: map[int]expando.Getter{
			UIDSubject: {Name: "subject", String: getSubject},
			UIDFrom:    {Name: "from", String: getFrom},
			UIDTo:      {Name: "to", String: getTo},
			UIDDateSent: {Name: "date-sent", Number: func(n *expando.Node, obj any, flags int) int64 {
				return obj.(*Message).DateSent.Unix()
			}},
			UIDDateReceived: {Name: "date-received", Number: func(n *expando.Node, obj any, flags int) int64 {
				return obj.(*Message).DateReceived.Unix()
			}},
			UIDSize: {Name: "size", Number: func(n *expando.Node, obj any, flags int) int64 {
				return obj.(*Message).Size
			}},
			UIDFlags:            {Name: "flags", String: getFlags},
			UIDAttachmentCount:  {Name: "attachment-count", Number: func(n *expando.Node, obj any, flags int) int64 {
				return int64(obj.(*Message).Attachments)
			}},
			UIDThreadTreePrefix: {Name: "tree-prefix", String: getTreePrefix},
			UIDIsUnread: {Name: "is-unread", Number: func(n *expando.Node, obj any, flags int) int64 {
				return boolToInt64(obj.(*Message).Unread)
			}},
			UIDIsFlagged: {Name: "is-flagged", Number: func(n *expando.Node, obj any, flags int) int64 {
				return boolToInt64(obj.(*Message).Flagged)
			}},
			UIDDateFormat: {Name: "[", String: getDateFormat},
		},
	}
}

// RenderData wraps msg into a ready-to-render render-data bundle.
func RenderData(msg *Message) *expando.RenderData {
	return &expando.RenderData{
		Entries: []expando.RenderDataEntry{
			{Domain: Domain, Table: Callbacks(msg), Object: msg},
		},
	}
}

func boolToInt64(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func getSubject(n *expando.Node, obj any, flags int, out *expando.Appender) {
	out.AppendString(obj.(*Message).Subject)
}

func getFrom(n *expando.Node, obj any, flags int, out *expando.Appender) {
	out.AppendString(obj.(*Message).From)
}

func getTo(n *expando.Node, obj any, flags int, out *expando.Appender) {
	out.AppendString(obj.(*Message).To)
}

func getFlags(n *expando.Node, obj any, flags int, out *expando.Appender) {
	msg := obj.(*Message)
	var sb strings.Builder
	if msg.Deleted {
		sb.WriteByte('D')
	}
	if msg.Flagged {
		sb.WriteByte('F')
	}
	if msg.Unread {
		sb.WriteByte('N')
	}
	if msg.Attachments > 0 {
		sb.WriteByte('A')
	}
	out.AppendString(sb.String())
}

func getTreePrefix(n *expando.Node, obj any, flags int, out *expando.Appender) {
	out.AppendString(obj.(*Message).TreePrefix)
}

// getDateFormat implements the "[" enclosed-date symbol: the captured
// bracket text (n's enclosed text, a strftime-like layout) is applied
// to the message's DateSent. A small builtin strftime subset is
// translated to a Go reference-time layout rather than hand-walking
// the format byte by byte, since time.Time.Format already does exactly
// that job once the directives are translated once, up front.
func getDateFormat(n *expando.Node, obj any, flags int, out *expando.Appender) {
	msg := obj.(*Message)
	layout := strftimeToGoLayout(n.Text)
	out.AppendString(msg.DateSent.Format(layout))
}

var strftimeDirectives = strings.NewReplacer(
	"%Y", "2006",
	"%y", "06",
	"%m", "01",
	"%d", "02",
	"%H", "15",
	"%M", "04",
	"%S", "05",
	"%b", "Jan",
	"%B", "January",
	"%a", "Mon",
	"%A", "Monday",
	"%p", "PM",
	"%%", "%",
)

func strftimeToGoLayout(format string) string {
	return strftimeDirectives.Replace(format)
}
