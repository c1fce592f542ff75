package mcp

import "github.com/mark3labs/mcp-go/mcp"

// generateSlidesTool defines the generate_slides MCP tool.
var generateSlidesTool = mcp.NewTool("generate_slides",
	mcp.WithDescription("Generate an HTML slide deck for a topic. Returns the slide markup, one <div class=\"slide ...\"> per slide."),
	mcp.WithString("topic",
		mcp.Required(),
		mcp.Description("Presentation topic"),
	),
	mcp.WithString("supplementary",
		mcp.Description("Optional reference text to incorporate into the slides"),
	),
)

// generateScriptTool defines the generate_script MCP tool.
var generateScriptTool = mcp.NewTool("generate_script",
	mcp.WithDescription("Generate a spoken script for an existing slide deck, one [Slide N: Title] block per slide."),
	mcp.WithString("topic",
		mcp.Required(),
		mcp.Description("Presentation topic the slides were generated for"),
	),
	mcp.WithString("slides",
		mcp.Required(),
		mcp.Description("Slide markup returned by generate_slides"),
	),
	mcp.WithString("supplementary",
		mcp.Description("Optional reference text to incorporate into the script"),
	),
)

// splitScriptTool defines the split_script MCP tool.
var splitScriptTool = mcp.NewTool("split_script",
	mcp.WithDescription("Split a generated script into its per-slide blocks."),
	mcp.WithString("script",
		mcp.Required(),
		mcp.Description("Script text containing [Slide N: Title] headers"),
	),
	mcp.WithNumber("index",
		mcp.Description("Return only the block at this 0-based index (clamped to the available blocks)"),
	),
)

// renderSlideshowTool defines the render_slideshow MCP tool.
var renderSlideshowTool = mcp.NewTool("render_slideshow",
	mcp.WithDescription("Wrap slide markup in a standalone HTML slideshow page with previous/next navigation."),
	mcp.WithString("slides",
		mcp.Required(),
		mcp.Description("Slide markup returned by generate_slides"),
	),
	mcp.WithNumber("start",
		mcp.Description("1-based slide to show first (default 1)"),
	),
)
