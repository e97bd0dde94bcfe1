package schema_test

import (
	"testing"

	"github.com/agentlog/agentlog/pkg/schema"
	"github.com/m-mizutani/gt"
)

func validCandidate() map[string]any {
	return map[string]any{
		"id":        "a5a3f4a0-9f25-4a9a-8f8d-0a8f6e1c2d3e",
		"timestamp": "2026-08-30T12:00:00Z",
		"agent":     "Claude",
		"action":    "Fixed syntax error",
		"type":      "commit",
		"status":    "success",
	}
}

func TestValidCandidate(t *testing.T) {
	result := schema.Validate(validCandidate())
	gt.True(t, result.OK())
	gt.NoError(t, result.Err())
}

func TestNumericID(t *testing.T) {
	candidate := validCandidate()
	candidate["id"] = float64(1693400000000)
	gt.True(t, schema.Validate(candidate).OK())
}

func TestRequiredFields(t *testing.T) {
	for _, field := range []string{"id", "timestamp", "agent", "action", "type", "status"} {
		t.Run(field, func(t *testing.T) {
			candidate := validCandidate()
			delete(candidate, field)

			result := schema.Validate(candidate)
			gt.False(t, result.OK())
			gt.Error(t, result.Err())
		})
	}
}

func TestUnknownTopLevelField(t *testing.T) {
	candidate := validCandidate()
	candidate["severity"] = "high"

	result := schema.Validate(candidate)
	gt.False(t, result.OK())
	gt.Equal(t, len(result.Issues), 1)
	gt.Equal(t, result.Issues[0].Field, "severity")
}

func TestInvalidFieldValues(t *testing.T) {
	testCases := []struct {
		name  string
		field string
		value any
	}{
		{"boolean id", "id", true},
		{"non-string timestamp", "timestamp", float64(1234)},
		{"unparseable timestamp", "timestamp", "yesterday"},
		{"empty agent", "agent", ""},
		{"non-string agent", "agent", float64(1)},
		{"empty action", "action", ""},
		{"unknown type", "type", "not-a-real-type"},
		{"unknown status", "status", "exploded"},
		{"non-string status", "status", float64(0)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			candidate := validCandidate()
			candidate[tc.field] = tc.value

			result := schema.Validate(candidate)
			gt.False(t, result.OK())
			gt.Equal(t, result.Issues[0].Field, tc.field)
		})
	}
}

func TestMultipleIssuesCollected(t *testing.T) {
	candidate := validCandidate()
	candidate["agent"] = ""
	candidate["type"] = "bogus"
	delete(candidate, "timestamp")

	result := schema.Validate(candidate)
	gt.False(t, result.OK())
	gt.Equal(t, len(result.Issues), 3)
}

func TestMetadata(t *testing.T) {
	testCases := []struct {
		name string
		meta map[string]any
		ok   bool
	}{
		{"valid full metadata", map[string]any{
			"commitHash":        "a1b2c3d4e5f6a7b8",
			"filePath":          "pkg/store/store.go",
			"lines":             []any{float64(10), float64(42)},
			"duration":          float64(350),
			"confidence":        float64(0.92),
			"tags":              []any{"parser", "hotfix"},
			"relatedActivities": []any{"abc", float64(7)},
			"repository":        "agentlog",
			"branch":            "main",
			"pullRequest":       float64(12),
			"issue":             float64(34),
			"url":               "https://example.com/pr/12",
		}, true},
		{"unknown keys tolerated", map[string]any{"custom": "anything", "nested": map[string]any{"x": 1}}, true},
		{"short commit hash", map[string]any{"commitHash": "a1b2"}, false},
		{"non-hex commit hash", map[string]any{"commitHash": "zzzzzzzz"}, false},
		{"negative duration", map[string]any{"duration": float64(-1)}, false},
		{"confidence above one", map[string]any{"confidence": float64(1.5)}, false},
		{"confidence below zero", map[string]any{"confidence": float64(-0.1)}, false},
		{"non-number lines", map[string]any{"lines": []any{"ten"}}, false},
		{"non-string tags", map[string]any{"tags": []any{float64(1)}}, false},
		{"boolean related id", map[string]any{"relatedActivities": []any{true}}, false},
		{"non-number pull request", map[string]any{"pullRequest": "12"}, false},
		{"non-string url", map[string]any{"url": float64(1)}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			candidate := validCandidate()
			candidate["metadata"] = tc.meta
			gt.Equal(t, schema.Validate(candidate).OK(), tc.ok)
		})
	}
}

func TestMetadataMustBeObject(t *testing.T) {
	candidate := validCandidate()
	candidate["metadata"] = "not an object"

	result := schema.Validate(candidate)
	gt.False(t, result.OK())
	gt.Equal(t, result.Issues[0].Field, "metadata")
}

func TestDeterministic(t *testing.T) {
	candidate := validCandidate()
	candidate["type"] = "bogus"

	first := schema.Validate(candidate)
	second := schema.Validate(candidate)
	gt.Equal(t, len(first.Issues), len(second.Issues))
	gt.Equal(t, first.Issues[0].Field, second.Issues[0].Field)
}

func TestDefinition(t *testing.T) {
	def := schema.Definition()
	gt.V(t, def).NotNil()
	gt.Equal(t, def.Type, "object")
	gt.Equal(t, len(def.Required), 6)

	typeSchema := def.Properties["type"]
	gt.V(t, typeSchema).NotNil()
	gt.Equal(t, len(typeSchema.Enum), 12)

	statusSchema := def.Properties["status"]
	gt.V(t, statusSchema).NotNil()
	gt.Equal(t, len(statusSchema.Enum), 5)

	meta := def.Properties["metadata"]
	gt.V(t, meta).NotNil()
	gt.V(t, meta.Properties["confidence"].Maximum).NotNil()
	gt.Equal(t, *meta.Properties["confidence"].Maximum, float64(1))
}
