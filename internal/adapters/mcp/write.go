package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"vesselx/internal/application"
	"vesselx/internal/application/commands"
	"vesselx/internal/domain"
	"vesselx/internal/ports"
)

// Services are the ports the write tools drive
type Services struct {
	Store     ports.SessionStore
	Exporter  ports.TreeExporter
	Extractor ports.VesselExtractor
	Strategy  string // default extraction strategy
}

// RegisterWriteTools adds all tree editing tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, svc Services) {
	s.AddTool(newSessionTool(), newSessionHandler(svc.Store))
	s.AddTool(addRootTool(), addRootHandler(svc.Store))
	s.AddTool(addChildTool(), addChildHandler(svc.Store))
	s.AddTool(insertBeforeTool(), insertBeforeHandler(svc.Store))
	s.AddTool(placeTool(), placeHandler(svc.Store))
	s.AddTool(deleteTool(), deleteHandler(svc.Store))
	s.AddTool(setPositionTool(), setPositionHandler(svc.Store))
	s.AddTool(setLockedTool(), setLockedHandler(svc.Store))
	s.AddTool(reorderTool(), reorderHandler(svc.Store))
	s.AddTool(applyTemplateTool(), applyTemplateHandler(svc.Store))
	if svc.Exporter != nil {
		s.AddTool(exportTool(), exportHandler(svc.Store, svc.Exporter))
	}
	if svc.Extractor != nil {
		s.AddTool(extractTool(svc.Strategy), extractHandler(svc.Store, svc.Extractor, svc.Strategy))
	}
}

// --- new_session ---

func newSessionTool() mcp.Tool {
	return mcp.NewTool("new_session",
		mcp.WithDescription("Create an empty segmentation session and return its ID."),
		mcp.WithString("name",
			mcp.Description("Session name, e.g. the patient or volume label"),
			mcp.Required(),
		),
	)
}

func newSessionHandler(store ports.SessionStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewCreateSessionCommand(store, req.GetString("name", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- add_root ---

func addRootTool() mcp.Tool {
	return mcp.NewTool("add_root",
		withPosition(
			mcp.WithDescription("Place the root node of an empty tree."),
			mcp.WithString("session_id",
				mcp.Description("Session ID"),
				mcp.Required(),
			),
		)...,
	)
}

func addRootHandler(store ports.SessionStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		pos, err := positionArg(req)
		if err != nil {
			return toolError(err)
		}
		result, err := commands.NewAddRootCommand(store, req.GetString("session_id", ""), pos).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- add_child ---

func addChildTool() mcp.Tool {
	return mcp.NewTool("add_child",
		withPosition(
			mcp.WithDescription("Append a new node as the last child of an existing node."),
			mcp.WithString("session_id",
				mcp.Description("Session ID"),
				mcp.Required(),
			),
			mcp.WithString("parent_id",
				mcp.Description("Node that receives the new child"),
				mcp.Required(),
			),
		)...,
	)
}

func addChildHandler(store ports.SessionStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		pos, err := positionArg(req)
		if err != nil {
			return toolError(err)
		}
		cmd := commands.NewAddChildCommand(store,
			req.GetString("session_id", ""),
			domain.NodeID(req.GetString("parent_id", "")),
			pos,
		)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- insert_before ---

func insertBeforeTool() mcp.Tool {
	return mcp.NewTool("insert_before",
		withPosition(
			mcp.WithDescription("Insert a new node between a node and its parent. The node becomes the only child of the new node."),
			mcp.WithString("session_id",
				mcp.Description("Session ID"),
				mcp.Required(),
			),
			mcp.WithString("sibling_id",
				mcp.Description("Node that moves under the new node. Cannot be the root."),
				mcp.Required(),
			),
		)...,
	)
}

func insertBeforeHandler(store ports.SessionStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		pos, err := positionArg(req)
		if err != nil {
			return toolError(err)
		}
		cmd := commands.NewInsertBeforeCommand(store,
			req.GetString("session_id", ""),
			domain.NodeID(req.GetString("sibling_id", "")),
			pos,
		)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- place ---

func placeTool() mcp.Tool {
	return mcp.NewTool("place",
		withPosition(
			mcp.WithDescription("Place one clicked point. While template nodes are unplaced the point positions the next one. Otherwise an empty tree gets its root and anchor_id gets a new child, or with before=true a new node between it and its parent."),
			mcp.WithString("session_id",
				mcp.Description("Session ID"),
				mcp.Required(),
			),
			mcp.WithString("anchor_id",
				mcp.Description("Selected node; ignored for the root and template placement"),
			),
			mcp.WithBoolean("before",
				mcp.Description("Insert before anchor_id instead of appending a child"),
			),
		)...,
	)
}

func placeHandler(store ports.SessionStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		pos, err := positionArg(req)
		if err != nil {
			return toolError(err)
		}
		cmd := commands.NewPlaceCommand(store,
			req.GetString("session_id", ""),
			domain.NodeID(req.GetString("anchor_id", "")),
			req.GetBool("before", false),
			pos,
		)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- delete ---

func deleteTool() mcp.Tool {
	return mcp.NewTool("delete",
		mcp.WithDescription("Delete a node. Its children move up to its parent at its position. The root can only be deleted when it has exactly one child."),
		mcp.WithString("session_id",
			mcp.Description("Session ID"),
			mcp.Required(),
		),
		mcp.WithString("node_id",
			mcp.Description("Node to delete"),
			mcp.Required(),
		),
	)
}

func deleteHandler(store ports.SessionStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewDeleteNodeCommand(store,
			req.GetString("session_id", ""),
			domain.NodeID(req.GetString("node_id", "")),
		)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- set_position ---

func setPositionTool() mcp.Tool {
	return mcp.NewTool("set_position",
		withPosition(
			mcp.WithDescription("Move a node to a new RAS position. Fails when the node is locked."),
			mcp.WithString("session_id",
				mcp.Description("Session ID"),
				mcp.Required(),
			),
			mcp.WithString("node_id",
				mcp.Description("Node to move"),
				mcp.Required(),
			),
		)...,
	)
}

func setPositionHandler(store ports.SessionStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		pos, err := positionArg(req)
		if err != nil {
			return toolError(err)
		}
		cmd := commands.NewSetPositionCommand(store,
			req.GetString("session_id", ""),
			domain.NodeID(req.GetString("node_id", "")),
			pos,
		)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- set_locked ---

func setLockedTool() mcp.Tool {
	return mcp.NewTool("set_locked",
		mcp.WithDescription("Lock or unlock a node. Locked nodes keep their position."),
		mcp.WithString("session_id",
			mcp.Description("Session ID"),
			mcp.Required(),
		),
		mcp.WithString("node_id",
			mcp.Description("Node to lock or unlock"),
			mcp.Required(),
		),
		mcp.WithBoolean("locked",
			mcp.Description("true to lock, false to unlock"),
			mcp.Required(),
		),
	)
}

func setLockedHandler(store ports.SessionStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		locked, err := req.RequireBool("locked")
		if err != nil {
			return toolError(err)
		}
		cmd := commands.NewSetLockedCommand(store,
			req.GetString("session_id", ""),
			domain.NodeID(req.GetString("node_id", "")),
			locked,
		)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- reorder ---

func reorderTool() mcp.Tool {
	return mcp.NewTool("reorder",
		mcp.WithDescription("Move a node to a new index among its siblings."),
		mcp.WithString("session_id",
			mcp.Description("Session ID"),
			mcp.Required(),
		),
		mcp.WithString("node_id",
			mcp.Description("Child node to move"),
			mcp.Required(),
		),
		mcp.WithString("parent_id",
			mcp.Description("Parent of the node. Omit to use the node's current parent."),
		),
		mcp.WithNumber("index",
			mcp.Description("New zero-based index among the siblings"),
			mcp.Required(),
		),
	)
}

func reorderHandler(store ports.SessionStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		index, err := req.RequireInt("index")
		if err != nil {
			return toolError(err)
		}
		cmd := commands.NewReorderChildCommand(store,
			req.GetString("session_id", ""),
			domain.NodeID(req.GetString("parent_id", "")),
			domain.NodeID(req.GetString("node_id", "")),
			index,
		)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- apply_template ---

func applyTemplateTool() mcp.Tool {
	return mcp.NewTool("apply_template",
		mcp.WithDescription("Fill an empty tree with a named anatomical hierarchy of unplaced nodes."),
		mcp.WithString("session_id",
			mcp.Description("Session ID"),
			mcp.Required(),
		),
		mcp.WithString("template",
			mcp.Description("Template name"),
			mcp.Enum(domain.PortalVeinTemplate.Name, domain.InferiorCavaVeinTemplate.Name),
			mcp.Required(),
		),
	)
}

func applyTemplateHandler(store ports.SessionStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewApplyTemplateCommand(store,
			req.GetString("session_id", ""),
			req.GetString("template", ""),
		)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- export ---

func exportTool() mcp.Tool {
	return mcp.NewTool("export",
		mcp.WithDescription("Write the fiducial CSV and adjacency matrix CSV of a session tree to the export directory."),
		mcp.WithString("session_id",
			mcp.Description("Session ID"),
			mcp.Required(),
		),
		mcp.WithString("name",
			mcp.Description("Base file name. Defaults to the session name."),
		),
	)
}

func exportHandler(store ports.SessionStore, exporter ports.TreeExporter) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewExportCommand(store, exporter,
			req.GetString("session_id", ""),
			req.GetString("name", ""),
		)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- extract ---

func extractTool(defaultStrategy string) mcp.Tool {
	names := domain.StrategyNames()
	return mcp.NewTool("extract",
		mcp.WithDescription("Hand the tree to the external extraction program and return the resulting volume and model IDs. Every node must be placed."),
		mcp.WithString("session_id",
			mcp.Description("Session ID"),
			mcp.Required(),
		),
		mcp.WithString("strategy",
			mcp.Description(fmt.Sprintf("Seed strategy. Defaults to %s.", defaultStrategy)),
			mcp.Enum(names...),
		),
	)
}

func extractHandler(store ports.SessionStore, extractor ports.VesselExtractor, defaultStrategy string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewExtractCommand(store, extractor,
			req.GetString("session_id", ""),
			req.GetString("strategy", defaultStrategy),
		)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- helpers ---

// withPosition appends the x, y, z arguments shared by tools that place a node
func withPosition(opts ...mcp.ToolOption) []mcp.ToolOption {
	return append(opts,
		mcp.WithNumber("x", mcp.Description("R coordinate (mm)"), mcp.Required()),
		mcp.WithNumber("y", mcp.Description("A coordinate (mm)"), mcp.Required()),
		mcp.WithNumber("z", mcp.Description("S coordinate (mm)"), mcp.Required()),
	)
}

func positionArg(req mcp.CallToolRequest) (domain.Position, error) {
	var v [3]float64
	for i, key := range []string{"x", "y", "z"} {
		f, err := req.RequireFloat(key)
		if err != nil {
			return domain.Position{}, err
		}
		v[i] = f
	}
	pos := application.NewPosition(v[0], v[1], v[2])
	if err := application.ValidatePosition("position", pos); err != nil {
		return domain.Position{}, err
	}
	return pos, nil
}
