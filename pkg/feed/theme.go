package feed

import (
	"github.com/agentlog/agentlog/pkg/model"
	"github.com/fatih/color"
)

// AgentTheme is the presentation identity of one agent name
type AgentTheme struct {
	Icon  string
	Color *color.Color
}

// agentThemes maps known agent names to their presentation identity.
// Unknown agents fall back to the "Claude" entry; that behavior is part of
// the display contract and is preserved deliberately.
var agentThemes = map[string]AgentTheme{
	"Claude":  {Icon: "🤖", Color: color.New(color.FgHiMagenta)},
	"GPT":     {Icon: "🧠", Color: color.New(color.FgHiGreen)},
	"Copilot": {Icon: "✈️", Color: color.New(color.FgHiBlue)},
	"Gemini":  {Icon: "💎", Color: color.New(color.FgHiCyan)},
}

// ThemeForAgent returns the presentation identity for an agent name,
// falling back to the Claude entry for unknown names
func ThemeForAgent(agent string) AgentTheme {
	if theme, ok := agentThemes[agent]; ok {
		return theme
	}
	return agentThemes["Claude"]
}

var typeIcons = map[model.ActivityType]string{
	model.TypeCommit:        "📝",
	model.TypeAnalysis:      "🔍",
	model.TypeDetection:     "🚨",
	model.TypeValidation:    "✔️",
	model.TypeMonitoring:    "📡",
	model.TypeDocumentation: "📚",
	model.TypeSecurity:      "🔒",
	model.TypeOptimization:  "⚡",
	model.TypeRefactoring:   "🔧",
	model.TypeDeployment:    "🚀",
	model.TypeCollaboration: "🤝",
	model.TypeInfo:          "ℹ️",
}

// IconForType returns the icon for an activity type, defaulting to the
// info icon for unknown types
func IconForType(t model.ActivityType) string {
	if icon, ok := typeIcons[t]; ok {
		return icon
	}
	return typeIcons[model.TypeInfo]
}

var statusColors = map[model.Status]*color.Color{
	model.StatusSuccess:    color.New(color.FgGreen),
	model.StatusProcessing: color.New(color.FgYellow),
	model.StatusError:      color.New(color.FgRed),
	model.StatusWarning:    color.New(color.FgHiYellow),
	model.StatusInfo:       color.New(color.FgCyan),
}

// ColorForStatus returns the color for a status, defaulting to the info
// color for unknown statuses
func ColorForStatus(s model.Status) *color.Color {
	if c, ok := statusColors[s]; ok {
		return c
	}
	return statusColors[model.StatusInfo]
}
