package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/agentlog/agentlog/pkg/model"
	"github.com/agentlog/agentlog/pkg/policy"
	"github.com/agentlog/agentlog/pkg/schema"
	"github.com/agentlog/agentlog/pkg/store"
	"github.com/agentlog/agentlog/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server exposes the activity log as MCP tools so coding agents can record
// and inspect their own activity over stdio
type Server struct {
	store *store.Store
	gate  *policy.Gate
}

// New creates a new MCP server over the given store. The gate may be nil
// when no ingestion policy is configured.
func New(st *store.Store, gate *policy.Gate) *Server {
	return &Server{store: st, gate: gate}
}

type logActivityParams struct {
	Agent    string         `json:"agent" jsonschema:"Name of the agent recording the activity"`
	Action   string         `json:"action" jsonschema:"Human-readable description of what occurred"`
	Type     string         `json:"type,omitempty" jsonschema:"Activity category (commit, analysis, detection, ...); defaults to info"`
	Status   string         `json:"status,omitempty" jsonschema:"Outcome (success, processing, error, warning, info); defaults to success"`
	Metadata map[string]any `json:"metadata,omitempty" jsonschema:"Auxiliary fields such as commitHash, filePath, duration"`
}

type listActivitiesParams struct {
	Agent  string `json:"agent,omitempty" jsonschema:"Only activities by this agent"`
	Type   string `json:"type,omitempty" jsonschema:"Only activities of this type"`
	Status string `json:"status,omitempty" jsonschema:"Only activities with this status"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Maximum number of activities to return"`
}

type activityStatsParams struct{}

type clearActivitiesParams struct{}

type activitySchemaParams struct{}

// MCPServer builds the SDK server with all tools registered
func (s *Server) MCPServer() *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "agentlog",
		Version: "0.1.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "log_activity",
		Description: "Record one activity event into the local activity journal",
	}, s.logActivity)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_activities",
		Description: "List recorded activities, newest first, with optional filters",
	}, s.listActivities)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "activity_stats",
		Description: "Aggregate statistics over the activity journal",
	}, s.activityStats)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "clear_activities",
		Description: "Remove all recorded activities",
	}, s.clearActivities)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "activity_schema",
		Description: "JSON Schema describing an activity record",
	}, s.activitySchema)

	return server
}

// Run serves MCP over stdio until the client disconnects
func (s *Server) Run(ctx context.Context) error {
	if err := s.MCPServer().Run(ctx, &mcp.StdioTransport{}); err != nil {
		return goerr.Wrap(err, "mcp server failed")
	}
	return nil
}

func (s *Server) logActivity(ctx context.Context, req *mcp.CallToolRequest, params *logActivityParams) (*mcp.CallToolResult, any, error) {
	if s.gate != nil {
		decision, err := s.gate.Evaluate(ctx, map[string]any{
			"agent":    params.Agent,
			"action":   params.Action,
			"type":     params.Type,
			"status":   params.Status,
			"metadata": params.Metadata,
		})
		if err != nil {
			return nil, nil, err
		}
		if decision.Exclude {
			logging.From(ctx).Info("activity excluded by policy",
				"agent", params.Agent, "reason", decision.Reason)
			return textResult(fmt.Sprintf("Activity excluded by policy: %s", decision.Reason)), nil, nil
		}
	}

	activity, err := s.store.Append(ctx, store.AppendInput{
		Agent:    params.Agent,
		Action:   params.Action,
		Type:     model.ActivityType(params.Type),
		Status:   model.Status(params.Status),
		Metadata: model.Metadata(params.Metadata),
	})
	if err != nil {
		return nil, nil, err
	}

	return textResult(fmt.Sprintf("Activity recorded: %s", activity.ID)), nil, nil
}

func (s *Server) listActivities(ctx context.Context, req *mcp.CallToolRequest, params *listActivitiesParams) (*mcp.CallToolResult, any, error) {
	activities := s.store.Query(ctx, store.QueryOptions{
		Agent:  params.Agent,
		Type:   model.ActivityType(params.Type),
		Status: model.Status(params.Status),
		Limit:  params.Limit,
	})

	return jsonResult(activities)
}

func (s *Server) activityStats(ctx context.Context, req *mcp.CallToolRequest, params *activityStatsParams) (*mcp.CallToolResult, any, error) {
	return jsonResult(s.store.Aggregate(ctx))
}

func (s *Server) clearActivities(ctx context.Context, req *mcp.CallToolRequest, params *clearActivitiesParams) (*mcp.CallToolResult, any, error) {
	if err := s.store.Clear(ctx); err != nil {
		return nil, nil, err
	}
	return textResult("All activities cleared"), nil, nil
}

func (s *Server) activitySchema(ctx context.Context, req *mcp.CallToolRequest, params *activitySchemaParams) (*mcp.CallToolResult, any, error) {
	return jsonResult(schema.Definition())
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

func jsonResult(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to encode result")
	}
	return textResult(string(data)), nil, nil
}
