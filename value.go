package expando

import (
	"log/slog"

	"github.com/pkg/errors"
)

// ValidateFunc vets a would-be format string before it becomes a
// Value's active tree, per spec.md §4.F: a host configuration system
// rejects a bad value rather than silently falling back to something
// else. tables is passed through so validation can use the same symbol
// tables the eventual Parse call will use.
type ValidateFunc func(format string, tables []*DefinitionTable) error

// errNonEmptyRequired is returned by SetString/SetTree when format is
// empty and the Value was built WithNonEmpty (spec.md §4.F
// "string-set": "if empty-and-non-null and the variable is marked
// non-empty, fail").
var errNonEmptyRequired = errors.New("value must not be empty")

// errStartupLocked is returned by SetString/SetTree once a
// WithStartupOnly Value has had Lock called (spec.md §4.F
// "Startup-only variables reject writes after the startup phase").
var errStartupLocked = errors.New("value is startup-only and can no longer be set")

// Value is the type handler a host configuration system registers for
// a format-valued option (spec.md §4.F), grounded on the teacher's
// HandlerOptions: a small struct with an explicit "unset -> default"
// path (NewHandler substitutes defaults for Level/TimeFormat/Theme/
// HeaderFormat) and, like WithAttrs/WithGroup, never mutates a shared
// parsed tree in place -- Set always builds a fresh Node and swaps it
// in atomically.
type Value struct {
	original string
	tree     *Node
	tables   []*DefinitionTable
	def      string
	validate ValidateFunc
	logger   *slog.Logger

	// nonEmpty rejects an empty format (spec.md §4.F "marked non-empty").
	nonEmpty bool

	// startupOnly and locked together implement spec.md §4.F's
	// "Startup-only variables reject writes after the startup phase":
	// startupOnly marks the variable at construction time, locked flips
	// once (via Lock) when the host's startup phase ends.
	startupOnly bool
	locked      bool
}

// NewValue constructs a Value defaulting to def (which must itself
// parse cleanly against tables, or NewValue panics -- a bad compiled-in
// default is a programming error, not a runtime condition).
func NewValue(def string, tables ...*DefinitionTable) *Value {
	v := &Value{def: def, tables: tables}
	if err := v.SetString(def); err != nil {
		panic(assertionFailure("invalid default format %q: %v", def, err))
	}
	return v
}

// WithValidate attaches a validator consulted before SetString commits
// a new tree. Returns v for chaining, matching the teacher's
// functional-option-adjacent builder feel without a full options type.
func (v *Value) WithValidate(fn ValidateFunc) *Value {
	v.validate = fn
	return v
}

// WithLogger overrides the logger used for SetString failures that are
// themselves worth a diagnostic (none currently; reserved for parity
// with RenderData.Logger so both halves of the contract default the
// same way).
func (v *Value) WithLogger(logger *slog.Logger) *Value {
	v.logger = logger
	return v
}

// WithNonEmpty marks v so SetString/SetTree reject an empty value
// (spec.md §4.F "marked non-empty"). Returns v for chaining.
func (v *Value) WithNonEmpty() *Value {
	v.nonEmpty = true
	return v
}

// WithStartupOnly marks v as a startup-only variable (spec.md §4.F):
// writes are accepted normally until the host calls Lock, after which
// every SetString/SetTree call fails. Returns v for chaining.
func (v *Value) WithStartupOnly() *Value {
	v.startupOnly = true
	return v
}

// Lock ends v's startup phase. Calls after Lock only have an effect on
// a Value built WithStartupOnly; on any other Value, Lock is a no-op,
// matching the same "unused option does nothing" feel as an unset
// WithValidate or WithLogger.
func (v *Value) Lock() {
	v.locked = true
}

func (v *Value) logf() *slog.Logger {
	if v.logger == nil {
		return slog.Default()
	}
	return v.logger
}

// SetString parses format and, on success, replaces v's active tree.
// On failure v is left unchanged (spec.md §4.F "string-set"), the
// teacher's NewHandler-style all-or-nothing construction applied to a
// mutable value instead of a one-shot constructor.
//
// Order follows spec.md §4.F precisely: a startup-only Value rejects
// every write once locked; an empty format is rejected outright when v
// is marked non-empty; the format must parse; equal-to-current text
// short-circuits to success without ever consulting the validator (so
// a validator with side effects, e.g. one that logs or counts, doesn't
// fire on a no-op write); only then does the validator run, and only
// then does the new tree replace the old one.
func (v *Value) SetString(format string) error {
	if v.startupOnly && v.locked {
		return errStartupLocked
	}
	if format == "" && v.nonEmpty {
		return errNonEmptyRequired
	}
	tree, err := Parse(format, v.tables...)
	if err != nil {
		return errors.Wrapf(err, "parse format %q", format)
	}
	if format == v.original {
		return nil
	}
	if v.validate != nil {
		if err := v.validate(format, v.tables); err != nil {
			return errors.Wrapf(err, "validate format %q", format)
		}
	}
	v.original = format
	v.tree = tree
	return nil
}

// String returns the original, unparsed format text (spec.md §4.F
// "string-get": the text used to construct the value, not a
// re-serialisation of the tree).
func (v *Value) String() string {
	return v.original
}

// Tree returns v's parsed tree (spec.md §4.F "native-get").
func (v *Value) Tree() *Node {
	return v.tree
}

// SetTree installs tree directly as v's active value (spec.md §4.F
// "native-set"), bypassing parsing. original is recorded as the
// serialised form so String/Equal stay consistent with a Value built
// via SetString. It honors the same startup-lock and non-empty rules
// as SetString, since it is the other half of the same §4.F contract.
func (v *Value) SetTree(tree *Node) error {
	if v.startupOnly && v.locked {
		return errStartupLocked
	}
	if tree == nil {
		tree = newEmpty()
	}
	serialized := Serialize(tree)
	if tree.Kind == KindEmpty && v.nonEmpty {
		return errNonEmptyRequired
	}
	if serialized == v.original {
		return nil
	}
	v.tree = tree
	v.original = serialized
	return nil
}

// PlusEquals implements spec.md §4.F "string-plus-equals": concatenate
// text onto the current format and reparse the whole thing, exactly
// the same all-or-nothing semantics as SetString.
func (v *Value) PlusEquals(suffix string) error {
	return v.SetString(v.original + suffix)
}

// Reset restores v to its compiled-in default (spec.md §4.F "reset").
func (v *Value) Reset() error {
	return v.SetString(v.def)
}

// Equal reports whether other was constructed from the same original
// format text (spec.md §4.F "equality: by original text," not by a
// structural tree comparison -- two different-looking but
// semantically-identical format strings are deliberately unequal).
func (v *Value) Equal(other *Value) bool {
	if other == nil {
		return false
	}
	return v.original == other.original
}

// Destroy releases v's tree (spec.md §4.F "destroy"). Go's GC makes
// this a formality rather than a resource-reclaim step, but the method
// is kept so a host configuration system's generic "destroy every
// registered value type" sweep has something to call.
func (v *Value) Destroy() {
	v.tree = nil
	v.original = ""
}
