package rules

import (
	"fmt"
	"regexp"

	"github.com/uelog/uelog-go/pkg/uelog/record"
)

// Match is the result of one rule matching one record.
type Match struct {
	// RuleID identifies the rule that matched.
	RuleID string `json:"rule_id"`

	// Label is the rule's label.
	Label string `json:"label"`

	// Data holds the values of the regex's named capture groups.
	// Empty when the rule has none.
	Data map[string]string `json:"data,omitempty"`
}

// Matcher applies a compiled rule set to records.
// A Matcher is safe for concurrent use by multiple goroutines.
type Matcher struct {
	rules []*compiledRule
}

type compiledRule struct {
	id         string
	label      string
	category   string
	regex      *regexp.Regexp
	groupNames []string
}

// NewMatcher compiles every rule in rf. Returns a *RuleError for the first
// rule whose regex does not compile.
func NewMatcher(rf *RuleFile) (*Matcher, error) {
	if rf == nil {
		return nil, fmt.Errorf("rule file is nil")
	}

	rules := make([]*compiledRule, 0, len(rf.Rules))
	for i, r := range rf.Rules {
		re, err := regexp.Compile(r.Regex)
		if err != nil {
			return nil, &RuleError{
				Index: i, ID: r.ID, Field: "regex",
				Message: "invalid regular expression",
				Cause:   err,
			}
		}

		var names []string
		for _, n := range re.SubexpNames() {
			if n != "" {
				names = append(names, n)
			}
		}
		rules = append(rules, &compiledRule{
			id:         r.ID,
			label:      r.Label,
			category:   r.Category,
			regex:      re,
			groupNames: names,
		})
	}
	return &Matcher{rules: rules}, nil
}

// NewMatcherFromFile loads a rule file and compiles it in one step.
func NewMatcherFromFile(path string) (*Matcher, error) {
	rf, err := Load(path)
	if err != nil {
		return nil, err
	}
	return NewMatcher(rf)
}

// Match runs every rule against rec and returns the matches in rule order.
// Returns nil when nothing matched.
func (m *Matcher) Match(rec record.Record) []Match {
	var matches []Match
	for _, r := range m.rules {
		if r.category != "" && r.category != rec.Category {
			continue
		}
		sub := r.regex.FindStringSubmatch(rec.Body)
		if sub == nil {
			continue
		}

		match := Match{RuleID: r.id, Label: r.label}
		if len(r.groupNames) > 0 {
			match.Data = make(map[string]string, len(r.groupNames))
			for i, n := range r.regex.SubexpNames() {
				if n != "" && i < len(sub) {
					match.Data[n] = sub[i]
				}
			}
		}
		matches = append(matches, match)
	}
	return matches
}
