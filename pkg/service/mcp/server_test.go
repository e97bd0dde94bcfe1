package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/agentlog/agentlog/pkg/adapter"
	"github.com/agentlog/agentlog/pkg/model"
	"github.com/agentlog/agentlog/pkg/policy"
	"github.com/agentlog/agentlog/pkg/store"
	"github.com/m-mizutani/gt"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	gt.V(t, result).NotNil()
	gt.Equal(t, len(result.Content), 1)
	content, ok := result.Content[0].(*mcp.TextContent)
	gt.True(t, ok)
	return content.Text
}

func TestLogAndListTools(t *testing.T) {
	ctx := context.Background()
	srv := New(store.New(adapter.NewMemory()), nil)

	result, _, err := srv.logActivity(ctx, nil, &logActivityParams{
		Agent:  "Claude",
		Action: "Implemented feature",
		Type:   "commit",
		Metadata: map[string]any{
			"repository": "agentlog",
		},
	})
	gt.NoError(t, err)
	gt.S(t, textOf(t, result)).Contains("Activity recorded")

	result, _, err = srv.listActivities(ctx, nil, &listActivitiesParams{Agent: "Claude"})
	gt.NoError(t, err)

	var activities []*model.Activity
	gt.NoError(t, json.Unmarshal([]byte(textOf(t, result)), &activities))
	gt.Equal(t, len(activities), 1)
	gt.Equal(t, activities[0].Action, "Implemented feature")
	gt.Equal(t, activities[0].Type, model.TypeCommit)
}

func TestLogToolDefaults(t *testing.T) {
	ctx := context.Background()
	st := store.New(adapter.NewMemory())
	srv := New(st, nil)

	_, _, err := srv.logActivity(ctx, nil, &logActivityParams{
		Agent:  "Claude",
		Action: "No type or status given",
	})
	gt.NoError(t, err)

	activities := st.Query(ctx, store.QueryOptions{})
	gt.Equal(t, len(activities), 1)
	gt.Equal(t, activities[0].Type, model.TypeInfo)
	gt.Equal(t, activities[0].Status, model.StatusSuccess)
}

func TestLogToolRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	srv := New(store.New(adapter.NewMemory()), nil)

	_, _, err := srv.logActivity(ctx, nil, &logActivityParams{
		Agent:  "Claude",
		Action: "bad type",
		Type:   "not-a-real-type",
	})
	gt.Error(t, err)
}

func TestStatsTool(t *testing.T) {
	ctx := context.Background()
	st := store.New(adapter.NewMemory())
	srv := New(st, nil)

	_, err := st.Append(ctx, store.AppendInput{Agent: "Claude", Action: "x"})
	gt.NoError(t, err)

	result, _, err := srv.activityStats(ctx, nil, &activityStatsParams{})
	gt.NoError(t, err)

	var stats model.Stats
	gt.NoError(t, json.Unmarshal([]byte(textOf(t, result)), &stats))
	gt.Equal(t, stats.Total, 1)
}

func TestClearTool(t *testing.T) {
	ctx := context.Background()
	st := store.New(adapter.NewMemory())
	srv := New(st, nil)

	_, err := st.Append(ctx, store.AppendInput{Agent: "Claude", Action: "x"})
	gt.NoError(t, err)

	result, _, err := srv.clearActivities(ctx, nil, &clearActivitiesParams{})
	gt.NoError(t, err)
	gt.S(t, textOf(t, result)).Contains("cleared")
	gt.Equal(t, len(st.Query(ctx, store.QueryOptions{})), 0)
}

func TestSchemaTool(t *testing.T) {
	ctx := context.Background()
	srv := New(store.New(adapter.NewMemory()), nil)

	result, _, err := srv.activitySchema(ctx, nil, &activitySchemaParams{})
	gt.NoError(t, err)

	var decoded map[string]any
	gt.NoError(t, json.Unmarshal([]byte(textOf(t, result)), &decoded))
	gt.Equal(t, decoded["type"], "object")
}

func TestLogToolPolicyExclusion(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()

	activityPolicy := `package activity

exclude if {
	input.agent == "NoisyBot"
}

reason := "noisy agent filtered" if {
	exclude
}
`
	gt.NoError(t, os.WriteFile(filepath.Join(tmpDir, "activity.rego"), []byte(activityPolicy), 0644))

	gate, err := policy.New(ctx, tmpDir)
	gt.NoError(t, err)

	st := store.New(adapter.NewMemory())
	srv := New(st, gate)

	result, _, err := srv.logActivity(ctx, nil, &logActivityParams{
		Agent:  "NoisyBot",
		Action: "spam",
	})
	gt.NoError(t, err)
	gt.S(t, textOf(t, result)).Contains("excluded by policy")
	gt.Equal(t, len(st.Query(ctx, store.QueryOptions{})), 0)

	_, _, err = srv.logActivity(ctx, nil, &logActivityParams{
		Agent:  "Claude",
		Action: "legit work",
	})
	gt.NoError(t, err)
	gt.Equal(t, len(st.Query(ctx, store.QueryOptions{})), 1)
}

func TestMCPServerRegistersTools(t *testing.T) {
	srv := New(store.New(adapter.NewMemory()), nil)
	gt.V(t, srv.MCPServer()).NotNil()
}
