package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/aj-tap/supersqlhunt/internal/rules"
	"github.com/aj-tap/supersqlhunt/internal/submit"
)

// handleSearchRules filters the catalog by query.
func (s *Server) handleSearchRules(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := request.GetString("query", "")
	limit := request.GetInt("limit", 20)
	if limit <= 0 {
		limit = 20
	}

	all, err := s.source.Fetch(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading rules failed: %v", err)), nil
	}

	matched := rules.Filter(all, query)
	if len(matched) == 0 {
		return mcp.NewToolResultText("No rules found matching your criteria."), nil
	}
	return mcp.NewToolResultText(formatRules(matched, limit)), nil
}

// handleGetRule returns one rule in full.
func (s *Server) handleGetRule(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: id"), nil
	}

	all, err := s.source.Fetch(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading rules failed: %v", err)), nil
	}

	r, ok := rules.FindByID(all, id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("no rule with id %q", id)), nil
	}
	return mcp.NewToolResultText(formatRule(r)), nil
}

// handleDraftRule builds a contribution from the arguments.
func (s *Server) handleDraftRule(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := request.RequireString("title")
	if err != nil || strings.TrimSpace(title) == "" {
		return mcp.NewToolResultError("missing required parameter: title"), nil
	}

	form := submit.NewForm()
	form.Title = title
	form.Description = request.GetString("description", "")
	form.Author = request.GetString("author", "")
	form.Tags = request.GetString("tags", "")
	form.Syntax = request.GetString("syntax", "")
	form.Source = request.GetString("source", "")

	sub := s.repo.Prepare(form)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Path: %s\n\n", sub.Path)
	sb.WriteString("Content:\n")
	sb.WriteString(sub.Content)
	fmt.Fprintf(&sb, "\nOpen this URL to propose the rule:\n%s\n", sub.URL)
	return mcp.NewToolResultText(sb.String()), nil
}

// formatRules lists up to limit rules, one summary block each.
func formatRules(rs []rules.Rule, limit int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d rule(s):\n", len(rs))

	for i, r := range rs {
		if i == limit {
			fmt.Fprintf(&sb, "\n... %d more not shown\n", len(rs)-limit)
			break
		}
		fmt.Fprintf(&sb, "\n--- %s ---\n", r.DisplayTitle())
		if r.ID != "" {
			fmt.Fprintf(&sb, "ID: %s\n", r.ID)
		}
		fmt.Fprintf(&sb, "Author: %s\n", r.DisplayAuthor())
		if len(r.Tags) > 0 {
			fmt.Fprintf(&sb, "Tags: %s\n", strings.Join(r.Tags, ", "))
		}
		if r.Description != "" {
			fmt.Fprintf(&sb, "\n%s\n", r.Description)
		}
	}

	return sb.String()
}

func formatRule(r rules.Rule) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", r.DisplayTitle())
	fmt.Fprintf(&sb, "ID: %s\n", r.ID)
	fmt.Fprintf(&sb, "Author: %s\n", r.DisplayAuthor())
	if len(r.Tags) > 0 {
		fmt.Fprintf(&sb, "Tags: %s\n", strings.Join(r.Tags, ", "))
	}
	if r.Source != "" {
		fmt.Fprintf(&sb, "Source: %s\n", r.Source)
	}
	if r.Description != "" {
		fmt.Fprintf(&sb, "\n%s\n", r.Description)
	}
	if r.Syntax != "" {
		fmt.Fprintf(&sb, "\n```sql\n%s\n```\n", strings.TrimRight(r.Syntax, "\n"))
	}
	return sb.String()
}
