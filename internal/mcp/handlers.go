package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/slideai/internal/script"
	"github.com/ziadkadry99/slideai/internal/session"
	"github.com/ziadkadry99/slideai/internal/slideshow"
)

// handleGenerateSlides asks the completion endpoint for a slide deck.
func (s *Server) handleGenerateSlides(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic, err := request.RequireString("topic")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: topic"), nil
	}
	if s.gen == nil {
		return mcp.NewToolResultError("completion endpoint not configured"), nil
	}

	req := session.Request{Topic: topic, Supplementary: request.GetString("supplementary", "")}
	slides, err := s.gen.Slides(ctx, sessionID, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%s %v", session.MsgSlidesFailed, err)), nil
	}

	return mcp.NewToolResultText(slides), nil
}

// handleGenerateScript asks the completion endpoint for narration of a deck.
func (s *Server) handleGenerateScript(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic, err := request.RequireString("topic")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: topic"), nil
	}
	slides, err := request.RequireString("slides")
	if err != nil || strings.TrimSpace(slides) == "" {
		return mcp.NewToolResultError(session.MsgNoSlides), nil
	}
	if s.gen == nil {
		return mcp.NewToolResultError("completion endpoint not configured"), nil
	}

	req := session.Request{Topic: topic, Supplementary: request.GetString("supplementary", "")}
	raw, err := s.gen.Script(ctx, sessionID, req, slides)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%s %v", session.MsgScriptFailed, err)), nil
	}

	return mcp.NewToolResultText(raw), nil
}

// handleSplitScript parses a script and returns its blocks as markdown.
func (s *Server) handleSplitScript(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := request.RequireString("script")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: script"), nil
	}

	parsed, err := script.Parse(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if idx := request.GetInt("index", -1); idx >= 0 {
		nav := script.NewNavigator(parsed)
		for nav.Index() < idx && nav.HasNext() {
			nav.Next()
		}
		i := nav.Index()
		return mcp.NewToolResultText(formatBlock(i, parsed.Blocks[i])), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d blocks\n\n", parsed.Len())
	for i, block := range parsed.Blocks {
		if i > 0 {
			b.WriteString("\n---\n\n")
		}
		b.WriteString(formatBlock(i, block))
	}
	return mcp.NewToolResultText(b.String()), nil
}

// handleRenderSlideshow wraps slides in the slideshow page.
func (s *Server) handleRenderSlideshow(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slides, err := request.RequireString("slides")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: slides"), nil
	}

	page, err := slideshow.Render(slides, request.GetInt("start", 1))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(page)), nil
}

func formatBlock(i int, block script.Block) string {
	return fmt.Sprintf("## %s\n\n%s\n", block.Heading(i), block.Body)
}
