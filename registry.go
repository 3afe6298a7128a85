package expando

import (
	"fmt"
	"log/slog"
)

// GetString writes node's string payload for obj into out. Implementors
// may embed colour markers (colour.go) in the bytes they write.
type GetStringFunc func(node *Node, obj any, flags int, out *buffer)

// GetNumber returns node's scalar payload for obj. Consumed directly by
// CondBool/CondDate, or formatted as a decimal when no GetString exists.
type GetNumberFunc func(node *Node, obj any, flags int) int64

// Getter is one entry in a host's callback table: at least one of
// String/Number must be set; both may be set (e.g. a Unix timestamp
// displayed as formatted date text).
type Getter struct {
	Name   string
	String GetStringFunc
	Number GetNumberFunc
}

// CustomParse, when set on a DefinitionEntry, takes over parsing the
// text following the symbol's verb up to the specifier's natural end
// (spec.md §4.D "enclosed expandos"/"a custom sub-parser registered for
// that name"). It returns the verbatim captured text and the number of
// bytes consumed from fmt[pos:].
type CustomParseFunc func(fmtString string, pos int) (text string, consumed int, err error)

// DefinitionEntry is one symbol of a DefinitionTable. Its DateShorthand
// field marks an entry whose predicate use (inside a conditional)
// produces a CondDate node instead of CondBool, per
// spec.md §4.D: "if the caller's definition provides a date-shorthand
// custom parser for that symbol, a CondDate node is produced instead."
type DefinitionEntry struct {
	Domain      int
	UID         int
	ShortName   string
	LongName    string
	IsString    bool // data_type: string vs number, see spec.md §6
	IsNumber    bool
	CustomParse CustomParseFunc
	DateShorthand bool
}

// DefinitionTable is the caller-supplied symbol table the parser
// validates every expando against at parse time (spec.md §4.C: "Unknown
// (domain, uid) is a programming error ... it cannot arise at render
// time because the parser validates ... at parse time").
type DefinitionTable struct {
	Domain  int
	Entries []DefinitionEntry
}

func (t *DefinitionTable) lookupName(name string) (DefinitionEntry, bool) {
	for _, e := range t.Entries {
		if e.ShortName == name || e.LongName == name {
			return e, true
		}
	}
	return DefinitionEntry{}, false
}

// CallbackTable is the render-time counterpart of DefinitionTable: a
// uid -> Getter map a host subsystem supplies per render-data entry.
type CallbackTable struct {
	Domain  int
	Getters map[int]Getter
}

func (t *CallbackTable) lookup(uid int) (Getter, bool) {
	if t == nil || t.Getters == nil {
		return Getter{}, false
	}
	g, ok := t.Getters[uid]
	return g, ok
}

// RenderDataEntry is one (domain, callback table, opaque object, flags)
// tuple in a render-data bundle (spec.md §4.C).
type RenderDataEntry struct {
	Domain int
	Table  *CallbackTable
	Object any
	Flags  int
}

// RenderData is the per-render bundle the renderer consults to resolve
// Expando/CondBool/CondDate nodes. It also carries the ambient
// diagnostics logger and an optional child environment used only by
// the filter step (filter.go), per SPEC_FULL.md §9. The filter's
// context is a parameter of RenderFiltered, not a field here.
type RenderData struct {
	Entries []RenderDataEntry

	// Logger receives diagnostics for conditions the engine must not
	// treat as fatal (filter spawn/read failures, see spec.md §7.3).
	// Defaults to slog.Default() when nil.
	Logger *slog.Logger

	// Env, when non-nil, is the child shell's entire environment for a
	// filter render (SPEC_FULL.md §9); it replaces the current process
	// environment rather than being merged into it. nil means "inherit
	// the current process environment," matching os/exec's own default.
	Env []string
}

func (d *RenderData) logger() *slog.Logger {
	if d == nil || d.Logger == nil {
		return slog.Default()
	}
	return d.Logger
}

func (d *RenderData) findEntry(domain int) (RenderDataEntry, bool) {
	if d == nil {
		return RenderDataEntry{}, false
	}
	for _, e := range d.Entries {
		if e.Domain == domain {
			return e, true
		}
	}
	return RenderDataEntry{}, false
}

// resolve looks up the Getter for (domain, uid) against data, per the
// resolution rule in spec.md §4.C: "domain -> table -> uid -> first
// available of get_string / get_number." It panics (an assertion
// failure, per spec.md §7.4) if the symbol is missing, since the parser
// is responsible for validating every expando against the definition
// table before a tree can exist.
func resolve(data *RenderData, domain, uid int) (Getter, RenderDataEntry) {
	entry, ok := data.findEntry(domain)
	if !ok {
		panic(assertionFailure("no render-data entry for domain %d", domain))
	}
	getter, ok := entry.Table.lookup(uid)
	if !ok {
		panic(assertionFailure("unknown symbol (domain=%d, uid=%d)", domain, uid))
	}
	return getter, entry
}

type assertionError string

func (a assertionError) Error() string { return string(a) }

func assertionFailure(format string, args ...any) error {
	return assertionError(fmt.Sprintf(format, args...))
}
