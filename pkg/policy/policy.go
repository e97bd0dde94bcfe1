package policy

import (
	"context"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/open-policy-agent/opa/v1/rego"
)

// Gate evaluates Rego policies against candidate activity records before
// they are appended. Policies live under `package activity` and may set
// `exclude := true` (with an optional `reason`) to drop a candidate. A nil
// Gate, or one loaded from an empty directory, accepts everything.
type Gate struct {
	query *rego.PreparedEvalQuery
}

// Decision is the outcome of evaluating one candidate
type Decision struct {
	Exclude bool
	Reason  string
}

// New loads all .rego files from policyDir and prepares the activity
// query. An empty or missing directory yields a Gate that accepts all.
func New(ctx context.Context, policyDir string) (*Gate, error) {
	files, err := filepath.Glob(filepath.Join(policyDir, "*.rego"))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to glob policy files")
	}
	if len(files) == 0 {
		return &Gate{}, nil
	}

	options := make([]func(*rego.Rego), 0, len(files)+1)
	options = append(options, rego.Query("data.activity"))
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read policy file", goerr.V("path", file))
		}
		options = append(options, rego.Module(file, string(data)))
	}

	prepared, err := rego.New(options...).PrepareForEval(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to prepare activity policy")
	}

	return &Gate{query: &prepared}, nil
}

// Evaluate runs the policy against a candidate record
func (g *Gate) Evaluate(ctx context.Context, candidate any) (*Decision, error) {
	if g == nil || g.query == nil {
		return &Decision{}, nil
	}

	rs, err := g.query.Eval(ctx, rego.EvalInput(candidate))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to evaluate activity policy")
	}

	if len(rs) == 0 || len(rs[0].Expressions) == 0 {
		return &Decision{}, nil
	}

	doc, ok := rs[0].Expressions[0].Value.(map[string]any)
	if !ok {
		return &Decision{}, nil
	}

	decision := &Decision{}
	if exclude, ok := doc["exclude"].(bool); ok {
		decision.Exclude = exclude
	}
	if reason, ok := doc["reason"].(string); ok {
		decision.Reason = reason
	}
	return decision, nil
}
