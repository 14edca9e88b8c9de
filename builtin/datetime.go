package builtin

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lexframe/lexframe/grammar"
)

// ClockTime is the value a time node evaluates to: hour and minute, as
// parsed from "HH:MM" (the hour may omit its leading zero).
type ClockTime struct {
	Hour, Minute int
}

// registerTime builds "time": an optional leading digit, a required
// digit, ":", then two required digits.
func registerTime(b *grammar.Builder) *grammar.Rule {
	optLeading := b.Optional("", grammar.Digit)
	r := b.Sequence(TimeName, optLeading.Symbol(), grammar.Digit, grammar.Literal(":"), grammar.Digit, grammar.Digit)
	r.SetEvaluator(func(node *grammar.ParsedNode) (interface{}, error) {
		parsed := node.Matcher.Parsed
		sep := strings.IndexByte(parsed, ':')
		if sep < 0 {
			return nil, fmt.Errorf("time: missing ':' in %q", parsed)
		}
		hour, err := strconv.Atoi(parsed[:sep])
		if err != nil {
			return nil, fmt.Errorf("time: %w", err)
		}
		minute, err := strconv.Atoi(parsed[sep+1:])
		if err != nil {
			return nil, fmt.Errorf("time: %w", err)
		}
		if hour > 23 || minute > 59 {
			return nil, fmt.Errorf("time: %q out of range", parsed)
		}
		return ClockTime{Hour: hour, Minute: minute}, nil
	})
	r.SetAutocompleter(grammar.IfNothingYetEnteredAutocompleter("${HH}:${MM}"))
	return r
}

// monthNames and weekdayNames are spelled out in full English.
var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var weekdayNames = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// orRuleOfLiterals builds name -> Or(word_0, word_1, ...), each
// alternative evaluating to its zero-based index.
func orRuleOfLiterals(b *grammar.Builder, name string, words []string) *grammar.Rule {
	alts := make([]grammar.Symbol, len(words))
	for i, w := range words {
		i := i
		alt := b.Sequence("", grammar.Literal(w))
		alt.SetEvaluator(func(*grammar.ParsedNode) (interface{}, error) {
			return int64(i), nil
		})
		alts[i] = alt.Symbol()
	}
	return b.Or(name, alts...)
}

func registerMonth(b *grammar.Builder) *grammar.Rule {
	return orRuleOfLiterals(b, MonthName, monthNames)
}

func registerWeekday(b *grammar.Builder) *grammar.Rule {
	return orRuleOfLiterals(b, WeekdayName, weekdayNames)
}

// registerDate builds "date": a two-digit day, a month name and a
// four-digit year, space-separated. The day carries the inline
// placeholder autocompleter (vetoing once a digit has been typed); the
// date rule as a whole completes as an entire sequence, so an empty
// position proposes one composite starting "${day} ${month} " (the month
// has twelve alternatives). The year sequence carries no autocompleter
// of its own, so its part of the composite is the placeholder of its
// first bare digit terminal, "${<digit>}".
func registerDate(b *grammar.Builder, monthRule *grammar.Rule) *grammar.Rule {
	day := b.Sequence("", grammar.Digit, grammar.Digit)
	day.SetAutocompleter(grammar.DefaultInlineAutocompleter)

	year := b.Sequence("", grammar.Digit, grammar.Digit, grammar.Digit, grammar.Digit)

	r := b.Sequence(DateName,
		day.Symbol(), grammar.Literal(" "), monthRule.Symbol(), grammar.Literal(" "), year.Symbol())
	r.SetParsedChildNames("day", "", "month", "", "year")
	r.SetEvaluator(func(node *grammar.ParsedNode) (interface{}, error) {
		t, err := time.Parse("2 January 2006", node.Matcher.Parsed)
		if err != nil {
			return nil, fmt.Errorf("date: %w", err)
		}
		return t, nil
	})
	r.SetAutocompleter(grammar.NewEntireSequenceAutocompleter(b))
	return r
}

// registerDateTime builds "date-time": date SP time, combined into a
// single timestamp. Its hint is a one-shot placeholder literal shown
// only while nothing has been typed, not an entire-sequence
// composition.
func registerDateTime(b *grammar.Builder, dateRule, timeRule *grammar.Rule) *grammar.Rule {
	r := b.Sequence(DateTimeName, dateRule.Symbol(), grammar.Literal(" "), timeRule.Symbol())
	r.SetParsedChildNames("date", "", "time")
	r.SetEvaluator(func(node *grammar.ParsedNode) (interface{}, error) {
		dateV, err := node.Evaluate("date")
		if err != nil {
			return nil, err
		}
		timeV, err := node.Evaluate("time")
		if err != nil {
			return nil, err
		}
		date, ok := dateV.(time.Time)
		if !ok {
			return nil, fmt.Errorf("date-time: malformed date component")
		}
		clock, ok := timeV.(ClockTime)
		if !ok {
			return nil, fmt.Errorf("date-time: malformed time component")
		}
		return time.Date(date.Year(), date.Month(), date.Day(), clock.Hour, clock.Minute, 0, 0, time.UTC), nil
	})
	r.SetAutocompleter(grammar.IfNothingYetEnteredAutocompleter("${Day} ${Month} ${Year} ${HH}:${MM}"))
	return r
}
