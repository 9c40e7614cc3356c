package mcp

import "github.com/mark3labs/mcp-go/mcp"

// searchRulesTool defines the search_rules MCP tool.
var searchRulesTool = mcp.NewTool("search_rules",
	mcp.WithDescription("Search the SQL hunting rules catalog. Matches title, description, author, syntax and tags, case-insensitively."),
	mcp.WithString("query",
		mcp.Description("Substring to search for; empty returns every rule"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of rules to return (default 20)"),
	),
)

// getRuleTool defines the get_rule MCP tool.
var getRuleTool = mcp.NewTool("get_rule",
	mcp.WithDescription("Get a single hunting rule, including its full SQL syntax, by id."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Rule id"),
	),
)

// draftRuleTool defines the draft_rule MCP tool.
var draftRuleTool = mcp.NewTool("draft_rule",
	mcp.WithDescription("Draft a new rule file and return the repository path, its YAML content and a pre-filled URL for proposing it."),
	mcp.WithString("title",
		mcp.Required(),
		mcp.Description("Rule title; also determines the file name"),
	),
	mcp.WithString("description", mcp.Description("What the rule detects")),
	mcp.WithString("author", mcp.Description("Rule author")),
	mcp.WithString("tags", mcp.Description("Comma separated tags")),
	mcp.WithString("syntax", mcp.Description("SQL query text")),
	mcp.WithString("source", mcp.Description("Reference or origin of the rule")),
)
