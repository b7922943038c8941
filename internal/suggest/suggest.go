package suggest

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Suggestion is a proposed hub automation rendered as importable YAML.
type Suggestion struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	AutomationYAML string `json:"automation_yaml"`
}

// automation mirrors the hub's automation document shape.
type automation struct {
	Alias       string         `yaml:"alias"`
	Description string         `yaml:"description"`
	Trigger     []triggerEntry `yaml:"trigger"`
	Condition   []any          `yaml:"condition"`
	Action      []actionEntry  `yaml:"action"`
	Mode        string         `yaml:"mode"`
}

type triggerEntry struct {
	Platform  string `yaml:"platform"`
	EventType string `yaml:"event_type"`
}

type actionEntry struct {
	Service string            `yaml:"service"`
	Data    map[string]string `yaml:"data"`
}

// Builder turns a trigger/action description pair into an automation
// scaffold. The output is a starting point the user refines in the hub's
// automation editor, not a finished rule.
type Builder struct{}

// NewBuilder creates the automation suggestion builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Suggest renders an automation for the given trigger and action text.
//
// Parameters:
//   - trigger: Free-text description of when the automation should fire
//   - action: Free-text description of what it should do
//
// Returns:
//   - Suggestion: Named suggestion with the rendered YAML document
//   - error: If YAML rendering fails
func (b *Builder) Suggest(trigger, action string) (Suggestion, error) {
	doc := automation{
		Alias:       "AI-Generated Automation",
		Description: fmt.Sprintf("When %s, %s.", trigger, action),
		Trigger: []triggerEntry{
			{Platform: "event", EventType: slug(trigger)},
		},
		Condition: []any{},
		Action: []actionEntry{
			{
				Service: "persistent_notification.create",
				Data:    map[string]string{"message": action},
			},
		},
		Mode: "single",
	}

	rendered, err := yaml.Marshal(doc)
	if err != nil {
		return Suggestion{}, fmt.Errorf("rendering automation yaml: %w", err)
	}

	return Suggestion{
		Name:           doc.Alias,
		Description:    doc.Description,
		AutomationYAML: string(rendered),
	}, nil
}

// slug converts free text into an event-type identifier: lowercase, with
// runs of non-alphanumeric characters collapsed to single underscores.
func slug(s string) string {
	var b strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
