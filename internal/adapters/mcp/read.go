package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"vesselx/internal/application"
	"vesselx/internal/application/commands"
	"vesselx/internal/domain"
	"vesselx/internal/ports"
)

// RegisterReadTools adds all read-only session tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, store ports.SessionStore) {
	s.AddTool(sessionsTool(), sessionsHandler(store))
	s.AddTool(treeTool(), treeHandler(store))
	s.AddTool(sequenceTool(), sequenceHandler(store))
	s.AddTool(adjacencyTool(), adjacencyHandler(store))
	s.AddTool(strategiesTool(), strategiesHandler())
}

// --- sessions ---

func sessionsTool() mcp.Tool {
	return mcp.NewTool("sessions",
		mcp.WithDescription("List segmentation sessions, most recently edited first."),
	)
}

func sessionsHandler(store ports.SessionStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sessions, err := commands.NewListSessionsCommand(store).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(formatEntities(sessions, func(s domain.Session) string {
			return fmt.Sprintf("%s  %s  (%d nodes)", s.ID, s.Name, s.NodeCount)
		})), nil
	}
}

// --- tree ---

func treeTool() mcp.Tool {
	return mcp.NewTool("tree",
		mcp.WithDescription("Show the branch tree of a session as indented nodes in depth-first order."),
		mcp.WithString("session_id",
			mcp.Description("Session ID"),
			mcp.Required(),
		),
		mcp.WithString("format",
			mcp.Description("tree (indented nodes), edges (parent/child pairs) or polyline (points of one line drawn through the tree)"),
			mcp.Enum("tree", "edges", "polyline"),
			mcp.DefaultString("tree"),
		),
	)
}

func treeHandler(store ports.SessionStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewShowTreeCommand(store, req.GetString("session_id", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		switch format := req.GetString("format", "tree"); format {
		case "tree":
			header := fmt.Sprintf("%s (%d nodes)\n", result.Session.Name, result.Tree.Len())
			return mcp.NewToolResultText(header + application.FormatTree(result.Tree)), nil
		case "edges", "polyline":
			out := application.FormatEdges(result.Tree)
			if format == "polyline" {
				out = application.FormatPolyline(result.Tree)
			}
			if out == "" {
				out = "(empty tree)"
			}
			return mcp.NewToolResultText(out), nil
		default:
			return mcp.NewToolResultError(fmt.Sprintf("unknown format %q", format)), nil
		}
	}
}

// --- sequence ---

func sequenceTool() mcp.Tool {
	return mcp.NewTool("sequence",
		mcp.WithDescription("List the depth-first node sequence of a session: index, id, position and parent."),
		mcp.WithString("session_id",
			mcp.Description("Session ID"),
			mcp.Required(),
		),
	)
}

func sequenceHandler(store ports.SessionStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewShowTreeCommand(store, req.GetString("session_id", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(result.Sequence) == 0 {
			return mcp.NewToolResultText("No nodes found."), nil
		}
		return mcp.NewToolResultText(application.FormatSequence(result.Sequence)), nil
	}
}

// --- adjacency ---

func adjacencyTool() mcp.Tool {
	return mcp.NewTool("adjacency",
		mcp.WithDescription("Show the parent/child adjacency matrix of a session, rows and columns in depth-first order."),
		mcp.WithString("session_id",
			mcp.Description("Session ID"),
			mcp.Required(),
		),
	)
}

func adjacencyHandler(store ports.SessionStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewShowTreeCommand(store, req.GetString("session_id", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		m := result.Tree.AdjacencyMatrix()
		if m == nil {
			return mcp.NewToolResultText("No nodes found."), nil
		}

		var b strings.Builder
		r, c := m.Dims()
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				if j > 0 {
					b.WriteByte(' ')
				}
				fmt.Fprintf(&b, "%g", m.At(i, j))
			}
			b.WriteByte('\n')
		}
		return mcp.NewToolResultText(strings.TrimSuffix(b.String(), "\n")), nil
	}
}

// --- strategies ---

func strategiesTool() mcp.Tool {
	return mcp.NewTool("strategies",
		mcp.WithDescription("List the seed strategies accepted by the extract tool."),
	)
}

func strategiesHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText(strings.Join(domain.StrategyNames(), "\n")), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) string {
	if len(entities) == 0 {
		return "No sessions found."
	}
	lines := make([]string, len(entities))
	for i, e := range entities {
		lines[i] = format(e)
	}
	return strings.Join(lines, "\n")
}
