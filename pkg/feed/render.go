package feed

import (
	"fmt"
	"io"
	"strings"

	"github.com/agentlog/agentlog/pkg/model"
)

// Renderer maps activity records to feed lines. It never mutates the
// store; it only formats what the store hands out.
type Renderer struct {
	w     io.Writer
	plain bool
}

// NewRenderer creates a Renderer writing to w. The "plain" theme renders
// without color.
func NewRenderer(w io.Writer, theme string) *Renderer {
	return &Renderer{w: w, plain: theme == "plain"}
}

// Line formats one record as a single feed line
func (r *Renderer) Line(a *model.Activity) string {
	agent := ThemeForAgent(a.Agent)
	status := ColorForStatus(a.Status)

	name := a.Agent
	statusTag := string(a.Status)
	if !r.plain {
		name = agent.Color.Sprint(a.Agent)
		statusTag = status.Sprint(a.Status)
	}

	line := fmt.Sprintf("%s %s %s %s [%s] %s",
		a.Timestamp.Local().Format("15:04:05"),
		agent.Icon,
		name,
		IconForType(a.Type),
		statusTag,
		a.Action,
	)

	if hint := metadataHint(a.Metadata); hint != "" {
		line += " " + hint
	}
	return line
}

// Print writes one record to the feed
func (r *Renderer) Print(a *model.Activity) {
	fmt.Fprintln(r.w, r.Line(a))
}

// PrintStats writes aggregate statistics as a compact header
func (r *Renderer) PrintStats(stats *model.Stats) {
	fmt.Fprintf(r.w, "total: %d\n", stats.Total)
	fmt.Fprintf(r.w, "agents: %s\n", formatCounts(stats.ByAgent))
	fmt.Fprintf(r.w, "types: %s\n", formatCounts(stats.ByType))
	fmt.Fprintf(r.w, "status: %s\n", formatCounts(stats.ByStatus))
}

// PrintFilters writes the observed filterable values so the user knows
// what --agent / --type / --status values are available
func (r *Renderer) PrintFilters(stats *model.Stats) {
	agents := make([]string, 0, len(stats.ByAgent))
	for _, c := range stats.ByAgent {
		agents = append(agents, c.Key)
	}
	types := make([]string, 0, len(stats.ByType))
	for _, c := range stats.ByType {
		types = append(types, c.Key)
	}
	fmt.Fprintf(r.w, "filters — agents: %s | types: %s\n",
		strings.Join(agents, ", "), strings.Join(types, ", "))
}

func formatCounts(counts []model.FieldCount) string {
	parts := make([]string, 0, len(counts))
	for _, c := range counts {
		parts = append(parts, fmt.Sprintf("%s=%d", c.Key, c.Count))
	}
	if len(parts) == 0 {
		return "(none)"
	}
	return strings.Join(parts, " ")
}

// metadataHint extracts the most useful metadata fields for inline display
func metadataHint(meta model.Metadata) string {
	if len(meta) == 0 {
		return ""
	}

	var parts []string
	if repo, ok := meta["repository"].(string); ok && repo != "" {
		if branch, bok := meta["branch"].(string); bok && branch != "" {
			parts = append(parts, repo+"@"+branch)
		} else {
			parts = append(parts, repo)
		}
	}
	if hash, ok := meta["commitHash"].(string); ok && len(hash) >= 7 {
		parts = append(parts, hash[:7])
	}
	if path, ok := meta["filePath"].(string); ok && path != "" {
		parts = append(parts, path)
	}
	if dur, ok := meta["duration"].(float64); ok {
		parts = append(parts, fmt.Sprintf("%.0fms", dur))
	}

	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
