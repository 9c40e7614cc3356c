package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aj-tap/supersqlhunt/internal/site"
)

var siteCmd = &cobra.Command{
	Use:   "site",
	Short: "Generate the static catalog website",
	Long: `Writes index.html, submit.html and their assets next to the compiled
rules document. The catalog is pre-rendered and re-loads rules.json in the
browser, so the output works on any static host.`,
	RunE: runSite,
}

func init() {
	siteCmd.Flags().Bool("serve", false, "start a local HTTP server after generating")
	siteCmd.Flags().Int("port", 0, "port for the local server (defaults to server.port)")
	siteCmd.Flags().Bool("open", false, "open browser automatically when serving")
	siteCmd.Flags().String("output", "", "override output directory (defaults to output_dir)")
	rootCmd.AddCommand(siteCmd)
}

func runSite(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if out, _ := cmd.Flags().GetString("output"); out != "" {
		cfg.OutputDir = out
	}

	html, err := newHTML(cfg, "")
	if err != nil {
		return err
	}
	generator := site.NewSiteGenerator(cfg.OutputDir, cfg.DataFile, html, cfg.SubmitRepo())
	n, err := generator.Generate(context.Background())
	if err != nil {
		return fmt.Errorf("generating site: %w", err)
	}

	fmt.Printf("Static site generated: %s (%d files)\n", cfg.OutputDir, n)

	serve, _ := cmd.Flags().GetBool("serve")
	if !serve {
		return nil
	}
	port, _ := cmd.Flags().GetInt("port")
	if port == 0 {
		port = cfg.Server.Port
	}
	openBrowser, _ := cmd.Flags().GetBool("open")
	if err := site.Serve(cfg.OutputDir, port, openBrowser); err != nil {
		return fmt.Errorf("serving site: %w", err)
	}
	return nil
}
