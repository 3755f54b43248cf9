package cli

import (
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/harshpreet931/autoMarkdown/internal/core/config"
	apperrors "github.com/harshpreet931/autoMarkdown/internal/core/errors"
)

func newInitCommand(stderr io.Writer) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create a configuration file",
		Long:  "Writes " + config.FileName + " with the default settings into dir (default: the current directory).",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			target := filepath.Join(dir, config.FileName)
			if err := config.WriteDefault(target, force); err != nil {
				return apperrors.AddContext(apperrors.Wrap(err, apperrors.CodeIO, "write configuration"), apperrors.CtxPath, target)
			}
			console{w: stderr}.Success("Created %s", target)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration file")
	return cmd
}

type example struct {
	title   string
	command string
}

var examples = []example{
	{"Basic conversion", "automarkdown ./my-project"},
	{"Save to file", "automarkdown ./my-project -o project-docs.md"},
	{"JSON output", "automarkdown ./my-project -f json -o project.json"},
	{"Include hidden files", "automarkdown ./my-project --include-hidden"},
	{"Custom exclusions", `automarkdown ./my-project --exclude "*.test.js,coverage/**"`},
	{"Larger file limit", "automarkdown ./my-project --max-size 2097152"},
	{"Rank with structural analysis", "automarkdown ./my-project --ast"},
	{"Fit a context window", "automarkdown ./my-project --ast --max-tokens 128000 --token-report"},
	{"Regenerate on change", "automarkdown ./my-project -o context.md --watch"},
}

func newExamplesCommand(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "Show usage examples",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := console{w: stdout}
			out.line(titleStyle, "AutoMarkdown Usage Examples:\n")
			for _, ex := range examples {
				out.Warn("%s:", ex.title)
				out.Muted("  %s\n", ex.command)
			}
		},
	}
}
