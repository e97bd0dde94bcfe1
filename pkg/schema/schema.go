package schema

import (
	"github.com/agentlog/agentlog/pkg/model"
	"github.com/google/jsonschema-go/jsonschema"
)

// topLevelFields is the closed set of keys an activity record may carry.
// Anything else at the top level fails validation; metadata stays open.
var topLevelFields = map[string]bool{
	"id":        true,
	"timestamp": true,
	"agent":     true,
	"action":    true,
	"type":      true,
	"status":    true,
	"metadata":  true,
}

var requiredFields = []string{"id", "timestamp", "agent", "action", "type", "status"}

// Definition returns the JSON Schema describing an activity record. It is
// the declarative twin of Validate and is served to MCP clients so agents
// can discover the record contract.
func Definition() *jsonschema.Schema {
	typeEnum := make([]any, 0, len(model.ActivityTypes()))
	for _, t := range model.ActivityTypes() {
		typeEnum = append(typeEnum, string(t))
	}
	statusEnum := make([]any, 0, len(model.Statuses()))
	for _, s := range model.Statuses() {
		statusEnum = append(statusEnum, string(s))
	}

	zero := float64(0)
	one := float64(1)

	return &jsonschema.Schema{
		Type:        "object",
		Description: "A single activity event recorded by an AI coding agent",
		Properties: map[string]*jsonschema.Schema{
			"id": {
				Types:       []string{"string", "number"},
				Description: "Unique record identifier",
			},
			"timestamp": {
				Type:        "string",
				Format:      "date-time",
				Description: "Creation instant in UTC, RFC 3339",
			},
			"agent": {
				Type:        "string",
				MinLength:   ptr(1),
				Description: "Name of the originating agent",
			},
			"action": {
				Type:        "string",
				MinLength:   ptr(1),
				Description: "Human-readable description of what occurred",
			},
			"type": {
				Type:        "string",
				Enum:        typeEnum,
				Description: "Activity category",
			},
			"status": {
				Type:        "string",
				Enum:        statusEnum,
				Description: "Outcome of the activity",
			},
			"metadata": {
				Type:        "object",
				Description: "Open-ended auxiliary fields",
				Properties: map[string]*jsonschema.Schema{
					"commitHash": {Type: "string", Pattern: "^[0-9a-fA-F]{7,40}$"},
					"filePath":   {Type: "string"},
					"lines": {
						Type:  "array",
						Items: &jsonschema.Schema{Type: "number"},
					},
					"duration":   {Type: "number", Minimum: &zero},
					"confidence": {Type: "number", Minimum: &zero, Maximum: &one},
					"tags": {
						Type:  "array",
						Items: &jsonschema.Schema{Type: "string"},
					},
					"relatedActivities": {
						Type:  "array",
						Items: &jsonschema.Schema{Types: []string{"string", "number"}},
					},
					"repository":   {Type: "string"},
					"branch":       {Type: "string"},
					"pullRequest":  {Type: "number"},
					"issue":        {Type: "number"},
					"errorMessage": {Type: "string"},
					"url":          {Type: "string"},
				},
			},
		},
		Required:             requiredFields,
		AdditionalProperties: &jsonschema.Schema{Not: &jsonschema.Schema{}},
	}
}

func ptr(n int) *int {
	return &n
}
