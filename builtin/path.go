package builtin

import (
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/lexframe/lexframe/grammar"
)

// registerPath ports EBNF.makePath: a single-quoted path whose inner
// text excludes ' < > | ? * and newline. The inner run's autocompleter
// defers to the external PathAutocompleter collaborator, the role
// CompletePath.getCompletion plays in the source; completer may be nil,
// in which case no path continuations are ever proposed (only the
// surrounding quotes' structure exists).
func registerPath(b *grammar.Builder, completer grammar.PathAutocompleter) *grammar.Rule {
	forbidden := "'<>|?*\n"
	inner := b.Plus("", grammar.NotCharSet("<path-char>", forbidden))
	inner.SetEvaluator(func(node *grammar.ParsedNode) (interface{}, error) {
		return node.Matcher.Parsed, nil
	})
	if completer != nil {
		inner.SetAutocompleter(pathInnerAutocompleter(completer))
	}

	r := b.Sequence(PathName, grammar.Literal("'"), inner.Symbol(), grammar.Literal("'"))
	r.SetParsedChildNames("", "path", "")
	r.SetEvaluator(func(node *grammar.ParsedNode) (interface{}, error) {
		return node.Evaluate("path")
	})
	r.SetAutocompleter(grammar.NewEntireSequenceAutocompleter(b))
	return r
}

// pathInnerAutocompleter adapts a PathAutocompleter to grammar's
// Autocompleter interface, passing it the text entered so far (the
// node's own already-parsed prefix).
func pathInnerAutocompleter(completer grammar.PathAutocompleter) grammar.Autocompleter {
	return grammar.AutocompleterFunc(func(node *grammar.ParsedNode, justCheck bool) []grammar.Autocompletion {
		completions, err := completer.Complete(node.Matcher.Parsed, justCheck)
		if err != nil {
			tracer().Errorf("path autocompletion failed: %v", err)
			return nil
		}
		return completions
	})
}

// OSPathCompleter is a concrete PathAutocompleter backed by os.ReadDir,
// caching directory listings per directory so repeated keystrokes
// within the same directory don't re-stat the filesystem. It is the
// one concrete adapter this module ships for the PathAutocompleter
// contract, covering what CompletePath.getCompletion and
// clearFilesystemCache provide in the source; embedding applications
// with other filesystem layers supply their own.
type OSPathCompleter struct {
	mu    sync.Mutex
	cache map[string][]os.DirEntry
}

// NewOSPathCompleter creates an empty OSPathCompleter.
func NewOSPathCompleter() *OSPathCompleter {
	return &OSPathCompleter{cache: make(map[string][]os.DirEntry)}
}

// Complete implements grammar.PathAutocompleter: enteredSoFar is split
// into a directory and a partial basename, the directory's entries are
// listed (cached), and entries whose name has the partial basename as a
// prefix are returned as literal completions for the remaining suffix.
func (c *OSPathCompleter) Complete(enteredSoFar string, justCheck bool) ([]grammar.Autocompletion, error) {
	dir, prefix := filepath.Split(enteredSoFar)
	if dir == "" {
		dir = "."
	}
	entries, err := c.listDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if len(prefix) <= len(e.Name()) && e.Name()[:len(prefix)] == prefix {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	if justCheck {
		if len(names) > 0 {
			return []grammar.Autocompletion{grammar.DoesAutocompleteProbe()}, nil
		}
		return nil, nil
	}
	out := make([]grammar.Autocompletion, 0, len(names))
	for _, n := range names {
		out = append(out, grammar.NewLiteralCompletion(n[len(prefix):]))
	}
	return out, nil
}

func (c *OSPathCompleter) listDir(dir string) ([]os.DirEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if entries, ok := c.cache[dir]; ok {
		return entries, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	c.cache[dir] = entries
	return entries, nil
}

// ClearCache drops every cached directory listing, mirroring
// EBNF.clearFilesystemCache.
func (c *OSPathCompleter) ClearCache() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[string][]os.DirEntry)
}
