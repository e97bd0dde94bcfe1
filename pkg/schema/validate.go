package schema

import (
	"fmt"
	"regexp"
	"time"

	"github.com/agentlog/agentlog/pkg/model"
	"github.com/m-mizutani/goerr/v2"
)

var ErrSchemaViolation = goerr.New("activity record violates schema")

var commitHashPtn = regexp.MustCompile(`^[0-9a-fA-F]{7,40}$`)

// Issue describes one violated constraint of a candidate record
type Issue struct {
	Field   string
	Message string
}

func (x *Issue) String() string {
	return fmt.Sprintf("%s: %s", x.Field, x.Message)
}

// Result is the outcome of validating one candidate record
type Result struct {
	Issues []*Issue
}

// OK reports whether the candidate satisfied the schema
func (r *Result) OK() bool {
	return len(r.Issues) == 0
}

// Err converts the result into an error, or nil if the candidate is valid
func (r *Result) Err() error {
	if r.OK() {
		return nil
	}
	issues := make([]string, 0, len(r.Issues))
	for _, x := range r.Issues {
		issues = append(issues, x.String())
	}
	return goerr.Wrap(ErrSchemaViolation, "validation failed", goerr.V("issues", issues))
}

func (r *Result) add(field, message string) {
	r.Issues = append(r.Issues, &Issue{Field: field, Message: message})
}

// Validate checks a decoded JSON object against the activity record schema.
// It is deterministic, has no side effects, and collects every violation
// rather than stopping at the first.
func Validate(candidate map[string]any) *Result {
	r := &Result{}

	for key := range candidate {
		if !topLevelFields[key] {
			r.add(key, "unknown field")
		}
	}

	for _, field := range requiredFields {
		if _, ok := candidate[field]; !ok {
			r.add(field, "required field is missing")
		}
	}

	if v, ok := candidate["id"]; ok {
		switch v.(type) {
		case string, float64:
		default:
			r.add("id", "must be a string or a number")
		}
	}

	if v, ok := candidate["timestamp"]; ok {
		ts, isStr := v.(string)
		if !isStr {
			r.add("timestamp", "must be a string")
		} else if _, err := time.Parse(time.RFC3339, ts); err != nil {
			r.add("timestamp", "must be a RFC 3339 date-time")
		}
	}

	validateNonEmptyString(r, candidate, "agent")
	validateNonEmptyString(r, candidate, "action")

	if v, ok := candidate["type"]; ok {
		typ, isStr := v.(string)
		if !isStr {
			r.add("type", "must be a string")
		} else if err := model.ActivityType(typ).Validate(); err != nil {
			r.add("type", fmt.Sprintf("%q is not a valid activity type", typ))
		}
	}

	if v, ok := candidate["status"]; ok {
		status, isStr := v.(string)
		if !isStr {
			r.add("status", "must be a string")
		} else if err := model.Status(status).Validate(); err != nil {
			r.add("status", fmt.Sprintf("%q is not a valid status", status))
		}
	}

	if v, ok := candidate["metadata"]; ok {
		meta, isMap := v.(map[string]any)
		if !isMap {
			r.add("metadata", "must be an object")
		} else {
			validateMetadata(r, meta)
		}
	}

	return r
}

func validateNonEmptyString(r *Result, candidate map[string]any, field string) {
	v, ok := candidate[field]
	if !ok {
		return
	}
	s, isStr := v.(string)
	if !isStr {
		r.add(field, "must be a string")
		return
	}
	if s == "" {
		r.add(field, "must not be empty")
	}
}

// validateMetadata checks the recognized metadata sub-fields. Keys outside
// the recognized set are tolerated as-is.
func validateMetadata(r *Result, meta map[string]any) {
	if v, ok := meta["commitHash"]; ok {
		if s, isStr := v.(string); !isStr || !commitHashPtn.MatchString(s) {
			r.add("metadata.commitHash", "must be a 7-40 character hex string")
		}
	}

	for _, key := range []string{"filePath", "repository", "branch", "errorMessage", "url"} {
		if v, ok := meta[key]; ok {
			if _, isStr := v.(string); !isStr {
				r.add("metadata."+key, "must be a string")
			}
		}
	}

	if v, ok := meta["duration"]; ok {
		if n, isNum := v.(float64); !isNum || n < 0 {
			r.add("metadata.duration", "must be a non-negative number")
		}
	}

	if v, ok := meta["confidence"]; ok {
		if n, isNum := v.(float64); !isNum || n < 0 || n > 1 {
			r.add("metadata.confidence", "must be a number between 0 and 1")
		}
	}

	if v, ok := meta["lines"]; ok {
		if !isArrayOf(v, func(e any) bool { _, ok := e.(float64); return ok }) {
			r.add("metadata.lines", "must be an array of numbers")
		}
	}

	if v, ok := meta["tags"]; ok {
		if !isArrayOf(v, func(e any) bool { _, ok := e.(string); return ok }) {
			r.add("metadata.tags", "must be an array of strings")
		}
	}

	if v, ok := meta["relatedActivities"]; ok {
		valid := isArrayOf(v, func(e any) bool {
			switch e.(type) {
			case string, float64:
				return true
			default:
				return false
			}
		})
		if !valid {
			r.add("metadata.relatedActivities", "must be an array of activity ids")
		}
	}

	for _, key := range []string{"pullRequest", "issue"} {
		if v, ok := meta[key]; ok {
			if _, isNum := v.(float64); !isNum {
				r.add("metadata."+key, "must be a number")
			}
		}
	}
}

func isArrayOf(v any, elem func(any) bool) bool {
	arr, ok := v.([]any)
	if !ok {
		return false
	}
	for _, e := range arr {
		if !elem(e) {
			return false
		}
	}
	return true
}
