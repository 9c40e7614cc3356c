package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/aj-tap/supersqlhunt/internal/site"
	"github.com/aj-tap/supersqlhunt/internal/submit"
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Prepare a new rule contribution",
	Long: `Builds a rule file from flags or interactive prompts and prints the
pre-filled "create new file" URL for the rules repository.`,
	RunE: runSubmit,
}

func init() {
	f := submitCmd.Flags()
	f.String("id", "", "rule id (defaults to a fresh UUID)")
	f.String("title", "", "rule title")
	f.String("description", "", "rule description")
	f.String("author", "", "rule author")
	f.String("tags", "", "comma separated tags")
	f.String("syntax", "", "SQL query text, taken verbatim")
	f.String("syntax-file", "", "read the SQL query from a file (- for stdin)")
	f.String("source", "", "reference or origin of the rule")
	f.BoolP("interactive", "i", false, "prompt for each field")
	f.Bool("open", false, "open the URL in the browser")
	rootCmd.AddCommand(submitCmd)
}

func runSubmit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	form := submit.ReadForm(func(id string) string {
		v, _ := flags.GetString(strings.TrimPrefix(id, "rule-"))
		return v
	})
	if form.ID == "" {
		form.ID = submit.NewID()
	}
	syntaxFile, _ := flags.GetString("syntax-file")
	if form.Syntax, err = resolveSyntax(form.Syntax, syntaxFile, cmd.InOrStdin()); err != nil {
		return err
	}

	interactive, _ := flags.GetBool("interactive")
	if interactive || form.Title == "" {
		if err := promptForm(&form); err != nil {
			return err
		}
	}

	sub := cfg.SubmitRepo().Prepare(form.Normalized())
	fmt.Printf("Path: %s\n\n%s\n", sub.Path, sub.Content)
	fmt.Println("Open this URL to propose the rule:")
	fmt.Println(sub.URL)

	if open, _ := flags.GetBool("open"); open {
		site.OpenBrowser(sub.URL)
	}
	return nil
}

// resolveSyntax returns the query text: the contents of file when set
// ("-" reads in), syntax otherwise. Text is kept verbatim apart from line
// endings and a single trailing newline.
func resolveSyntax(syntax, file string, in io.Reader) (string, error) {
	if file == "" {
		return syntax, nil
	}
	if syntax != "" {
		return "", fmt.Errorf("--syntax and --syntax-file are mutually exclusive")
	}
	var (
		data []byte
		err  error
	)
	if file == "-" {
		data, err = io.ReadAll(in)
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return "", fmt.Errorf("reading syntax: %w", err)
	}
	text := submit.Form{Syntax: string(data)}.Normalized().Syntax
	return strings.TrimSuffix(text, "\n"), nil
}

// promptForm asks for every form field, keeping flag values as defaults.
// A multi-line query cannot be edited on a single prompt line, so it is
// kept as given; use --syntax-file to supply one.
func promptForm(form *submit.Form) error {
	fields := []struct {
		label    string
		dst      *string
		required bool
	}{
		{"Title", &form.Title, true},
		{"Description", &form.Description, true},
		{"Author", &form.Author, true},
		{"Tags (comma separated)", &form.Tags, false},
		{"Syntax", &form.Syntax, true},
		{"Source", &form.Source, false},
	}
	for _, f := range fields {
		if f.dst == &form.Syntax && strings.Contains(form.Syntax, "\n") {
			fmt.Printf("Syntax:\n%s\n", form.Syntax)
			continue
		}
		p := promptui.Prompt{
			Label:   f.label,
			Default: *f.dst,
		}
		if f.required {
			p.Validate = func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("value is required")
				}
				return nil
			}
		}
		v, err := p.Run()
		if err != nil {
			return fmt.Errorf("%s: %w", strings.ToLower(f.label), err)
		}
		*f.dst = v
	}
	return nil
}
