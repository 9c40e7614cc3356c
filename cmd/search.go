package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aj-tap/supersqlhunt/internal/catalog"
	"github.com/aj-tap/supersqlhunt/internal/view"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the rules catalog",
	Long: `Loads the rules document and prints the rules whose title, description,
author, syntax or tags contain the query, case-insensitively. With no query
every rule is listed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("url", "", "load rules from a published site instead of the local document")
	searchCmd.Flags().Bool("syntax", false, "print each rule's SQL")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	baseURL, _ := cmd.Flags().GetString("url")
	src, err := newSource(cfg, baseURL)
	if err != nil {
		return err
	}

	page := view.NewPage()
	c := catalog.New(src, page)
	if err := c.Load(context.Background()); err != nil {
		return fmt.Errorf("loading rules: %w", err)
	}
	if len(args) == 1 && len(c.Rules()) > 0 {
		page.SetQuery(args[0])
	}

	showSyntax, _ := cmd.Flags().GetBool("syntax")
	printNodes(page.Nodes(), showSyntax)
	return nil
}

func printNodes(nodes []view.Node, showSyntax bool) {
	for i, n := range nodes {
		switch n.Kind {
		case view.KindPlaceholder:
			fmt.Println(view.PlaceholderText)
		case view.KindAlert:
			fmt.Printf("[%s] %s\n", n.Alert.Level, n.Alert.Message)
		case view.KindCard:
			if i > 0 {
				fmt.Println()
			}
			fmt.Println(n.Card.Title)
			fmt.Printf("  %s\n", n.Card.Subtitle)
			if n.Card.Description != "" {
				fmt.Printf("  %s\n", n.Card.Description)
			}
			if len(n.Card.Tags) > 0 {
				fmt.Printf("  Tags: %s\n", strings.Join(n.Card.Tags, ", "))
			}
			if showSyntax && n.Card.Syntax != "" {
				fmt.Println()
				for _, line := range strings.Split(strings.TrimRight(n.Card.Syntax, "\n"), "\n") {
					fmt.Printf("    %s\n", line)
				}
			}
		}
	}
}
