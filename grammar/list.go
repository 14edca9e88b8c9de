package grammar

// List builds the rule behind the meta-grammar's "list<T>" pattern:
// zero or more entries separated by a comma with optional surrounding
// whitespace. The delimiter's autocompleter proposes ", " only while
// nothing of it has been typed, and an empty completion (suppressing
// deeper suggestions) once the user is past it.
func (b *Builder) List(name string, element Symbol, elementName string) *Rule {
	wsStar := b.Star("", Whitespace)
	delim := b.Sequence("", wsStar.Symbol(), Literal(","), wsStar.Symbol())
	delim.SetAutocompleter(AutocompleterFunc(func(node *ParsedNode, justCheck bool) []Autocompletion {
		if node.Matcher.Parsed != "" {
			return []Autocompletion{NewLiteralCompletion("")}
		}
		return []Autocompletion{NewLiteralCompletion(", ")}
	}))
	r := b.Join(name, element, JoinOptions{
		Delimiter:   delim.Symbol(),
		Cardinality: CardinalityStar,
	})
	r.SetParsedChildNames(elementName)
	return r
}

// Tuple builds the rule behind the meta-grammar's "tuple<T,a,b,…>"
// pattern: exactly len(entryNames) entries bracketed by parentheses and
// separated by commas, whitespace-tolerant throughout. Its
// autocompleter proposes the whole shape — "(${a}, ${b})" — as long as
// nothing has been typed, and steps aside (deferring to the entries'
// own completions) afterwards.
func (b *Builder) Tuple(name string, element Symbol, entryNames ...string) *Rule {
	wsStar := b.Star("", Whitespace)
	wsStar.SetAutocompleter(AutocompleterFunc(func(*ParsedNode, bool) []Autocompletion {
		return []Autocompletion{NewLiteralCompletion("")}
	}))
	open := b.Sequence("", Literal("("), wsStar.Symbol())
	close := b.Sequence("", wsStar.Symbol(), Literal(")"))
	delim := b.Sequence("", wsStar.Symbol(), Literal(","), wsStar.Symbol())

	r := b.Join(name, element, JoinOptions{
		Open:        open.Symbol(),
		Close:       close.Symbol(),
		Delimiter:   delim.Symbol(),
		Cardinality: FixedCardinality(len(entryNames)),
	})
	r.SetParsedChildNames(entryNames...)
	r.SetAutocompleter(tupleAutocompleter(entryNames))
	return r
}

func tupleAutocompleter(names []string) Autocompleter {
	return AutocompleterFunc(func(node *ParsedNode, justCheck bool) []Autocompletion {
		if node.Matcher.Parsed != "" {
			return nil
		}
		if justCheck {
			return []Autocompletion{DoesAutocompleteProbe()}
		}
		seq := Autocompletion{Kind: KindEntireSequence}
		add := func(childName string, c Autocompletion) {
			seq.Sequence = append(seq.Sequence, EntireSequenceChild{
				ChildName:   childName,
				Completions: []Autocompletion{c},
			})
		}
		add("open", NewLiteralCompletion("("))
		for i, n := range names {
			if i > 0 {
				add("delimiter", NewLiteralCompletion(", "))
			}
			add(n, NewParameterizedCompletion(n))
		}
		add("close", NewLiteralCompletion(")"))
		return []Autocompletion{seq}
	})
}
