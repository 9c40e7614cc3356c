package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/aj-tap/supersqlhunt/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing rule search, lookup and drafting tools.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		baseURL, _ := cmd.Flags().GetString("url")
		src, err := newSource(cfg, baseURL)
		if err != nil {
			return err
		}

		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "sqlhunt MCP server started on stdio (rules=%s)\n", describeSource(cfg.DataPath(), baseURL))

		srv := mcpserver.NewServer(src, cfg.SubmitRepo())
		return srv.Serve()
	},
}

func init() {
	mcpCmd.Flags().String("url", "", "load rules from a published site instead of the local document")
	rootCmd.AddCommand(mcpCmd)
}

func describeSource(path, baseURL string) string {
	if baseURL != "" {
		return baseURL
	}
	return path
}
