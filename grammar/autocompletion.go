package grammar

//go:generate stringer -type Kind

// Kind tags the variant of an Autocompletion.
type Kind int

const (
	// KindLiteral inserts Text verbatim.
	KindLiteral Kind = iota
	// KindParameterized inserts the marker "${Name}".
	KindParameterized
	// KindVeto suppresses any further completions collected during the
	// same call; it never reaches a caller as a usable suggestion.
	KindVeto
	// KindDoesAutocomplete is a probe result meaning "yes, this would
	// produce at least one completion", without having computed text.
	KindDoesAutocomplete
	// KindEntireSequence carries one completion list per child of a
	// sequence rule.
	KindEntireSequence
)

// VetoText is the sentinel rendered text of a Veto completion.
const VetoText = "VETO"

// Autocompletion is a single suggested continuation of partially parsed
// input.
type Autocompletion struct {
	Kind Kind
	Text string // for KindLiteral
	Name string // for KindParameterized

	// Sequence holds, for KindEntireSequence, one completion list per
	// child of the rule, in child order.
	Sequence []EntireSequenceChild

	// AlreadyEnteredText is the substring from the autocompleting
	// ancestor's start to the current cursor position.
	AlreadyEnteredText string
}

// EntireSequenceChild is one child's contribution to a KindEntireSequence
// completion: its name (for rendering "${childName}" when it has more
// than one option) and its own completion list.
type EntireSequenceChild struct {
	ChildName   string
	Completions []Autocompletion
}

// NewLiteralCompletion builds a KindLiteral completion.
func NewLiteralCompletion(text string) Autocompletion {
	return Autocompletion{Kind: KindLiteral, Text: text}
}

// NewParameterizedCompletion builds a KindParameterized completion.
func NewParameterizedCompletion(name string) Autocompletion {
	return Autocompletion{Kind: KindParameterized, Name: name}
}

// VetoCompletion builds the Veto sentinel.
func VetoCompletion() Autocompletion {
	return Autocompletion{Kind: KindVeto, Text: VetoText}
}

// DoesAutocompleteProbe builds a probe-only completion used by
// doesAutocomplete checks; it is never rendered.
func DoesAutocompleteProbe() Autocompletion {
	return Autocompletion{Kind: KindDoesAutocomplete}
}

// GetCompletion renders this Autocompletion's suggested text. For
// KindEntireSequence, each child contributes its sole completion's text
// when it has exactly one option, or "${childName}" when it has more
// than one.
func (a Autocompletion) GetCompletion() string {
	switch a.Kind {
	case KindLiteral:
		return a.Text
	case KindParameterized:
		return "${" + a.Name + "}"
	case KindVeto:
		return VetoText
	case KindEntireSequence:
		var s string
		for _, child := range a.Sequence {
			switch len(child.Completions) {
			case 0:
			case 1:
				s += child.Completions[0].GetCompletion()
			default:
				s += "${" + child.ChildName + "}"
			}
		}
		return s
	default:
		return ""
	}
}

// Autocompleter computes completions for a ParsedNode. A nil return
// means the node does not provide autocompletion at all (the collector
// keeps looking further down the tree); a non-nil empty slice means the
// node claims the completion point but proposes nothing. justCheck asks
// only whether the result would be non-nil, allowing implementations to
// skip rendering.
type Autocompleter interface {
	Complete(node *ParsedNode, justCheck bool) []Autocompletion
}

// AutocompleterFunc adapts a plain function to Autocompleter.
type AutocompleterFunc func(node *ParsedNode, justCheck bool) []Autocompletion

// Complete calls f.
func (f AutocompleterFunc) Complete(node *ParsedNode, justCheck bool) []Autocompletion {
	return f(node, justCheck)
}

// DefaultInlineAutocompleter vetoes once the node has already parsed
// non-empty text (the user is mid-way through typing it) and proposes
// the node's name as a "${name}" placeholder otherwise. Built-in types
// like int and digit attach it so that their enclosing variable's name,
// not their internal structure, is what gets proposed.
var DefaultInlineAutocompleter = AutocompleterFunc(func(node *ParsedNode, justCheck bool) []Autocompletion {
	if node.Matcher.Parsed != "" {
		return []Autocompletion{VetoCompletion()}
	}
	return []Autocompletion{NewParameterizedCompletion(node.Name())}
})

// IfNothingYetEnteredAutocompleter returns an autocompleter that
// proposes literal as a hint while the node has parsed no text, and an
// empty (but non-nil) result afterwards — it keeps claiming the
// completion point without proposing anything, so deeper bare terminals
// do not surface their own placeholders. The whitespace built-ins use
// it with " ", time and date-time with whole-pattern hints like
// "${HH}:${MM}".
func IfNothingYetEnteredAutocompleter(literal string) Autocompleter {
	return AutocompleterFunc(func(node *ParsedNode, justCheck bool) []Autocompletion {
		if node.Matcher.Parsed != "" {
			return []Autocompletion{}
		}
		return []Autocompletion{NewLiteralCompletion(literal)}
	})
}
