package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/aj-tap/supersqlhunt/internal/progress"
	"github.com/aj-tap/supersqlhunt/internal/rules"
	"github.com/aj-tap/supersqlhunt/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Compile rule files into the rules document",
	Long: `Parses every YAML rule file in the rules directory and writes them,
in file order, as a JSON array to the output directory. Files that fail to
parse are reported and skipped.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().Bool("site", false, "also generate the static site")
	buildCmd.Flags().Bool("strict", false, "fail when any rule file cannot be parsed")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Printf("Starting rule build from '%s'...\n", cfg.RulesDir)

	reporter := progress.NewReporter()
	started := false
	res, err := rules.LoadDir(cfg.RulesDir, cfg.RulesGlob, func(done, total int, path string) {
		if !started {
			reporter.Start(total)
			started = true
		}
		reporter.Update(done, path)
	})
	if started {
		reporter.Finish()
	}
	if errors.Is(err, rules.ErrNoRuleFiles) {
		fmt.Fprintf(os.Stderr, "No .yaml or .yml files found in %s. Exiting.\n", cfg.RulesDir)
		return nil
	}
	if err != nil {
		return err
	}

	for _, f := range res.Failures {
		log.Printf("Error processing file %s: %v", f.Path, f.Err)
	}
	strict, _ := cmd.Flags().GetBool("strict")
	if strict && len(res.Failures) > 0 {
		return fmt.Errorf("%d of %d rule files failed to parse", len(res.Failures), res.Files)
	}

	out := cfg.DataPath()
	if err := rules.WriteJSON(out, res.Rules); err != nil {
		return err
	}
	fmt.Printf("Successfully aggregated %d rules into '%s'.\n", len(res.Rules), out)

	withSite, _ := cmd.Flags().GetBool("site")
	if !withSite {
		return nil
	}
	html, err := newHTML(cfg, "")
	if err != nil {
		return err
	}
	n, err := site.NewSiteGenerator(cfg.OutputDir, cfg.DataFile, html, cfg.SubmitRepo()).Generate(context.Background())
	if err != nil {
		return fmt.Errorf("generating site: %w", err)
	}
	fmt.Printf("Static site generated: %s (%d files)\n", cfg.OutputDir, n)
	return nil
}
