package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/slideai/internal/session"
)

// Version is set via ldflags at build time.
var Version = "dev"

// sessionID tags history events for calls made through MCP.
const sessionID = "mcp"

// Server wraps an MCP server that exposes slide and script generation.
type Server struct {
	gen *session.Generator
	mcp *server.MCPServer
}

// NewServer creates a new MCP server backed by gen. gen may be nil, in
// which case only the offline tools succeed.
func NewServer(gen *session.Generator) *Server {
	s := &Server{gen: gen}

	s.mcp = server.NewMCPServer(
		"slideai",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(generateSlidesTool, s.handleGenerateSlides)
	s.mcp.AddTool(generateScriptTool, s.handleGenerateScript)
	s.mcp.AddTool(splitScriptTool, s.handleSplitScript)
	s.mcp.AddTool(renderSlideshowTool, s.handleRenderSlideshow)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
