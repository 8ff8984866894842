package scenario

import (
	"regexp"
	"strings"
)

// Check is one ticket quality check.
type Check struct {
	Label string
	Pass  bool
}

var timestampRe = regexp.MustCompile(`\d{4}-\d{2}-\d{2}t\d{2}:\d{2}`)

type ticketRule struct {
	label string
	pass  func(text string) bool
}

func containsAny(words ...string) func(string) bool {
	return func(text string) bool {
		for _, w := range words {
			if strings.Contains(text, w) {
				return true
			}
		}
		return false
	}
}

var ticketRules = []ticketRule{
	{"Has timeline timestamps", timestampRe.MatchString},
	{"Mentions IP / location", containsAny("ip", "frankfurt", "sacramento")},
	{"Mentions actions taken", containsAny("revoke", "reset", "block", "remove rule")},
	{"Mentions indicators (IOC)", containsAny("device", "user agent", "forward", "rule")},
}

// SetTicketField stores the note for a ticket field. It reports false for a
// key the scenario's template does not define.
func (r *Run) SetTicketField(key, value string) bool {
	for _, f := range r.scenario.TicketFields {
		if f.Key == key {
			r.ticket[key] = value
			return true
		}
	}
	return false
}

// TicketField returns the note stored for key.
func (r *Run) TicketField(key string) string {
	return r.ticket[key]
}

// TicketText returns the ticket notes in template order, one per line,
// lower-cased.
func (r *Run) TicketText() string {
	var parts []string
	for _, f := range r.scenario.TicketFields {
		if v, ok := r.ticket[f.Key]; ok {
			parts = append(parts, v)
		}
	}
	return strings.ToLower(strings.Join(parts, "\n"))
}

// TicketChecks evaluates the ticket against the quality checks.
func (r *Run) TicketChecks() []Check {
	text := r.TicketText()
	checks := make([]Check, len(ticketRules))
	for i, rule := range ticketRules {
		checks[i] = Check{Label: rule.label, Pass: rule.pass(text)}
	}
	return checks
}

// PassedChecks counts the passing checks.
func PassedChecks(checks []Check) int {
	n := 0
	for _, c := range checks {
		if c.Pass {
			n++
		}
	}
	return n
}
