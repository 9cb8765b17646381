// Package tools exposes prompt catalog reads and prompt invocation as MCP
// tools over a stdio server. Every tool answers with a JSON text payload
// carrying a success flag; failures are reported inside that payload, not
// as protocol errors, so callers always get a parseable result.
package tools

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/spf13/cast"

	"github.com/promptkit/bedrockd/catalog"
	"github.com/promptkit/bedrockd/invoke"
	"github.com/promptkit/bedrockd/prompt"
)

// Options carries the tunables handlers fall back to when a tool call
// leaves them out. Zero values take the invoke package defaults.
type Options struct {
	// BatchWorkers is the default worker count for batch invocations.
	BatchWorkers int

	// BatchTimeout bounds each single invocation inside a batch.
	BatchTimeout time.Duration
}

// Toolset wires the catalog service and the invocation engine into MCP
// tool handlers.
type Toolset struct {
	catalog *catalog.Service
	engine  *invoke.Client
	opts    Options
	logger  zerolog.Logger
}

// NewToolset creates a Toolset over the given collaborators.
func NewToolset(cat *catalog.Service, engine *invoke.Client, opts Options, logger zerolog.Logger) *Toolset {
	if opts.BatchWorkers == 0 {
		opts.BatchWorkers = invoke.DefaultBatchWorkers
	}
	return &Toolset{
		catalog: cat,
		engine:  engine,
		opts:    opts,
		logger:  logger.With().Str("component", "tools").Logger(),
	}
}

// Register adds every tool to the MCP server.
func (t *Toolset) Register(s *server.MCPServer) {
	s.AddTool(listPromptsTool(), t.listPrompts)
	s.AddTool(getPromptDetailsTool(), t.getPromptDetails)
	s.AddTool(invokePromptTool(), t.invokePrompt)
	s.AddTool(invokePromptStreamTool(), t.invokePromptStream)
	s.AddTool(batchInvokePromptTool(), t.batchInvokePrompt)
	s.AddTool(listPromptVersionsTool(), t.listPromptVersions)
	t.logger.Info().Msg("registered prompt tools")
}

// resolve fetches a prompt document and reduces it to its effective
// variant.
func (t *Toolset) resolve(ctx context.Context, promptID, version string) (*prompt.Resolved, error) {
	doc, err := t.catalog.Get(ctx, promptID, version)
	if err != nil {
		return nil, err
	}
	return prompt.ResolveVariant(doc)
}

// jsonResult renders the envelope as the tool's text content.
func jsonResult(doc map[string]any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return mcp.NewToolResultText(`{"success": false, "error": "unencodable result"}`)
	}
	return mcp.NewToolResultText(string(data))
}

// errorResult renders a failure envelope.
func errorResult(err error) *mcp.CallToolResult {
	return errorText(err.Error())
}

func errorText(msg string) *mcp.CallToolResult {
	return jsonResult(map[string]any{"success": false, "error": msg})
}

// tokenOrNil keeps the pagination token key present but null when there is
// no further page.
func tokenOrNil(token string) any {
	if token == "" {
		return nil
	}
	return token
}

// stringMapArg reads an object argument as a string-to-string map. Values
// arrive as whatever JSON carried; they are coerced to strings.
func stringMapArg(request mcp.CallToolRequest, key string) map[string]string {
	raw, ok := request.GetArguments()[key]
	if !ok || raw == nil {
		return nil
	}
	vars, err := cast.ToStringMapStringE(raw)
	if err != nil {
		return nil
	}
	return vars
}

// variableSetsArg reads the variable_sets array argument.
func variableSetsArg(request mcp.CallToolRequest) ([]map[string]string, bool) {
	raw, ok := request.GetArguments()["variable_sets"]
	if !ok {
		return nil, false
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, false
	}
	return lo.Map(list, func(item any, _ int) map[string]string {
		vars, err := cast.ToStringMapStringE(item)
		if err != nil {
			return map[string]string{}
		}
		return vars
	}), true
}
