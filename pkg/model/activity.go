package model

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

var (
	ErrInvalidType   = goerr.New("invalid activity type")
	ErrInvalidStatus = goerr.New("invalid activity status")
)

type ActivityID string

// NewActivityID generates a new unique ActivityID
func NewActivityID() ActivityID {
	return ActivityID(uuid.New().String())
}

type ActivityType string

const (
	TypeCommit        ActivityType = "commit"
	TypeAnalysis      ActivityType = "analysis"
	TypeDetection     ActivityType = "detection"
	TypeValidation    ActivityType = "validation"
	TypeMonitoring    ActivityType = "monitoring"
	TypeDocumentation ActivityType = "documentation"
	TypeSecurity      ActivityType = "security"
	TypeOptimization  ActivityType = "optimization"
	TypeRefactoring   ActivityType = "refactoring"
	TypeDeployment    ActivityType = "deployment"
	TypeCollaboration ActivityType = "collaboration"
	TypeInfo          ActivityType = "info"
)

// ActivityTypes returns all valid activity types
func ActivityTypes() []ActivityType {
	return []ActivityType{
		TypeCommit,
		TypeAnalysis,
		TypeDetection,
		TypeValidation,
		TypeMonitoring,
		TypeDocumentation,
		TypeSecurity,
		TypeOptimization,
		TypeRefactoring,
		TypeDeployment,
		TypeCollaboration,
		TypeInfo,
	}
}

// Validate checks if the activity type is valid
func (t ActivityType) Validate() error {
	for _, v := range ActivityTypes() {
		if t == v {
			return nil
		}
	}
	return goerr.Wrap(ErrInvalidType, "unknown type", goerr.V("type", t))
}

type Status string

const (
	StatusSuccess    Status = "success"
	StatusProcessing Status = "processing"
	StatusError      Status = "error"
	StatusWarning    Status = "warning"
	StatusInfo       Status = "info"
)

// Statuses returns all valid activity statuses
func Statuses() []Status {
	return []Status{
		StatusSuccess,
		StatusProcessing,
		StatusError,
		StatusWarning,
		StatusInfo,
	}
}

// Validate checks if the status is valid
func (s Status) Validate() error {
	for _, v := range Statuses() {
		if s == v {
			return nil
		}
	}
	return goerr.Wrap(ErrInvalidStatus, "unknown status", goerr.V("status", s))
}

// Metadata carries open-ended auxiliary fields of an activity. Recognized
// keys (commitHash, filePath, lines, duration, confidence, tags,
// relatedActivities, repository, branch, pullRequest, issue, errorMessage,
// url) have typed constraints enforced by pkg/schema; unknown keys pass
// through untouched.
type Metadata map[string]any

// Activity is one logged event describing an action taken by an AI agent
type Activity struct {
	ID        ActivityID   `json:"id"`
	Timestamp time.Time    `json:"timestamp"`
	Agent     string       `json:"agent"`
	Action    string       `json:"action"`
	Type      ActivityType `json:"type"`
	Status    Status       `json:"status"`
	Metadata  Metadata     `json:"metadata,omitempty"`
}

// Clone returns a deep copy of the activity. The store hands out clones so
// callers never hold references into the persisted collection.
func (a *Activity) Clone() *Activity {
	if a == nil {
		return nil
	}
	cloned := *a
	if a.Metadata != nil {
		cloned.Metadata = make(Metadata, len(a.Metadata))
		for k, v := range a.Metadata {
			cloned.Metadata[k] = v
		}
	}
	return &cloned
}

// ActivityFromMap converts a decoded JSON object into an Activity. The input
// must already be schema-valid; numeric ids are normalized to their decimal
// string form.
func ActivityFromMap(m map[string]any) *Activity {
	a := &Activity{
		Type:   TypeInfo,
		Status: StatusSuccess,
	}

	switch id := m["id"].(type) {
	case string:
		a.ID = ActivityID(id)
	case float64:
		a.ID = ActivityID(strconv.FormatFloat(id, 'f', -1, 64))
	}

	if ts, ok := m["timestamp"].(string); ok {
		if parsed, err := time.Parse(time.RFC3339, ts); err == nil {
			a.Timestamp = parsed.UTC()
		}
	}
	if agent, ok := m["agent"].(string); ok {
		a.Agent = agent
	}
	if action, ok := m["action"].(string); ok {
		a.Action = action
	}
	if typ, ok := m["type"].(string); ok {
		a.Type = ActivityType(typ)
	}
	if status, ok := m["status"].(string); ok {
		a.Status = Status(status)
	}
	if meta, ok := m["metadata"].(map[string]any); ok {
		a.Metadata = Metadata(meta)
	}

	return a
}
