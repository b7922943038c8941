package intent

import "strings"

// Action is one device operation extracted from a natural-language command.
//
// Domain and Service name the hub service to invoke (e.g. "light.turn_on");
// Pattern is the entity-ID namespace the action targets, without the
// trailing dot (e.g. "light" matches "light.kitchen").
type Action struct {
	Domain  string `json:"domain"`
	Service string `json:"service"`
	Pattern string `json:"pattern"`
}

// Descriptor returns the "domain.service" form used in logs and results.
func (a Action) Descriptor() string {
	return a.Domain + "." + a.Service
}

// EntityPrefix returns the entity-ID prefix this action targets,
// including the namespace separator (e.g. "light.").
func (a Action) EntityPrefix() string {
	return a.Pattern + "."
}

// Classifier extracts device actions from a natural-language command.
//
// Implementations must be stateless with respect to individual calls and
// safe for concurrent use. An unrecognized command yields an empty slice,
// never an error: failure to understand is a valid classification result.
type Classifier interface {
	Classify(command string) []Action
}

// RuleClassifier classifies commands with keyword matching.
//
// It recognizes three device namespaces, always emitted in the same order
// regardless of where their keywords appear in the command:
//
//  1. light — keywords "light"/"lights", service from on/off words
//  2. switch — keywords "switch"/"fan"/"plug", service from on/off words
//  3. climate — keywords "temperature"/"thermostat"/"heat", always set_temperature
//
// When a command contains both "on" and "off", "on" wins. Climate actions
// ignore on/off words entirely.
type RuleClassifier struct{}

// NewRuleClassifier creates the keyword-based classifier.
func NewRuleClassifier() *RuleClassifier {
	return &RuleClassifier{}
}

// Classify implements Classifier.
func (c *RuleClassifier) Classify(command string) []Action {
	lower := strings.ToLower(command)

	var actions []Action

	if svc, ok := toggleService(lower); ok {
		if containsAny(lower, "light", "lights") {
			actions = append(actions, Action{Domain: "light", Service: svc, Pattern: "light"})
		}
		if containsAny(lower, "switch", "fan", "plug") {
			actions = append(actions, Action{Domain: "switch", Service: svc, Pattern: "switch"})
		}
	}

	if containsAny(lower, "temperature", "thermostat", "heat") {
		actions = append(actions, Action{Domain: "climate", Service: "set_temperature", Pattern: "climate"})
	}

	return actions
}

// toggleService picks turn_on or turn_off from the command's on/off words.
// "on" takes precedence when both appear. Commands with neither word carry
// no toggle intent, so light and switch keywords produce nothing.
func toggleService(lower string) (string, bool) {
	switch {
	case strings.Contains(lower, "on"):
		return "turn_on", true
	case strings.Contains(lower, "off"):
		return "turn_off", true
	default:
		return "", false
	}
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
