package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/rail-service/postman-gen/core/factory"
	"github.com/rail-service/postman-gen/core/ir"
	"github.com/rail-service/postman-gen/core/mapper"
	"github.com/rail-service/postman-gen/core/parser"
)

// Options controls server construction. The path fields become per-tool
// defaults that individual calls may override.
type Options struct {
	RoutesDir    string
	OpenAPIPath  string
	MetadataPath string
	BaseURL      string
	Name         string
	Version      string
}

// Server exposes the generator pipeline as MCP tools over stdio.
type Server struct {
	options   Options
	mcpServer *mcpsrv.MCPServer
}

// New constructs a Server and registers its tools.
func New(opts Options) *Server {
	if opts.Name == "" {
		opts.Name = "postman-gen"
	}
	if opts.Version == "" {
		opts.Version = "2.0.0"
	}

	s := &Server{
		options:   opts,
		mcpServer: mcpsrv.NewMCPServer(opts.Name, opts.Version),
	}
	s.registerTools()
	return s
}

// MCPServer exposes the underlying MCP server.
func (s *Server) MCPServer() *mcpsrv.MCPServer {
	return s.mcpServer
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("scan_routes",
			mcp.WithDescription("Scan route declaration source files and list every endpoint recovered, with scan counters"),
			mcp.WithString("routes", mcp.Description("Routes directory (defaults to the server's configured directory)")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			dir := mcp.ParseString(req, "routes", s.options.RoutesDir)
			return s.handleScanRoutes(ctx, dir)
		},
	)

	s.mcpServer.AddTool(
		mcp.NewTool("build_collection",
			mcp.WithDescription("Run the full pipeline and return the Postman collection document as JSON"),
			mcp.WithString("routes", mcp.Description("Routes directory to scan")),
			mcp.WithString("openapi", mcp.Description("OpenAPI document to extract from instead of route sources")),
			mcp.WithString("metadata", mcp.Description("Endpoint enrichment side-table path")),
			mcp.WithString("name", mcp.Description("Collection name override")),
			mcp.WithString("base_url", mcp.Description("Value for the base_url collection variable")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return s.handleBuildCollection(ctx, buildParams{
				routes:   mcp.ParseString(req, "routes", s.options.RoutesDir),
				openapi:  mcp.ParseString(req, "openapi", s.options.OpenAPIPath),
				metadata: mcp.ParseString(req, "metadata", s.options.MetadataPath),
				name:     mcp.ParseString(req, "name", ""),
				baseURL:  mcp.ParseString(req, "base_url", s.options.BaseURL),
			})
		},
	)

	s.mcpServer.AddTool(
		mcp.NewTool("list_categories",
			mcp.WithDescription("List the category taxonomy in priority order: folder name, glyph, and path substrings"),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return s.handleListCategories(ctx)
		},
	)
}

func (s *Server) handleScanRoutes(_ context.Context, dir string) (*mcp.CallToolResult, error) {
	if dir == "" {
		return mcp.NewToolResultError("routes directory is required"), nil
	}

	extractor := parser.NewPatternExtractor(dir)
	endpoints, stats, err := extractor.Extract()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to scan %s: %v", dir, err)), nil
	}

	report := struct {
		Source    string        `json:"source"`
		Stats     ir.Stats      `json:"stats"`
		Endpoints []ir.Endpoint `json:"endpoints"`
	}{
		Source:    extractor.Source(),
		Stats:     stats,
		Endpoints: endpoints,
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

type buildParams struct {
	routes   string
	openapi  string
	metadata string
	name     string
	baseURL  string
}

func (s *Server) handleBuildCollection(_ context.Context, params buildParams) (*mcp.CallToolResult, error) {
	var extractor parser.Extractor
	if params.openapi != "" {
		extractor = parser.NewOpenAPIExtractor(params.openapi)
	} else {
		if params.routes == "" {
			return mcp.NewToolResultError("either routes or openapi must be provided"), nil
		}
		extractor = parser.NewPatternExtractor(params.routes)
	}

	endpoints, _, err := extractor.Extract()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to extract from %s: %v", extractor.Source(), err)), nil
	}

	groups, _ := mapper.NewMapper(nil).Group(endpoints)

	metadata := factory.Metadata{}
	if params.metadata != "" {
		loaded, _, err := factory.LoadMetadata(params.metadata)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		metadata = loaded
	}

	collection := factory.NewCollectionFactory().
		WithName(params.name).
		WithBaseURL(params.baseURL).
		WithMetadata(metadata).
		Build(groups)

	data, err := factory.Encode(collection, factory.FormatJSON)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleListCategories(_ context.Context) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(mapper.DefaultTaxonomy(), "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
