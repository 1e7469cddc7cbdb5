// Package docs provides the documentation maintenance commands.
// Includes: docs bump
package docs

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pyrelease/relgate/internal/cli/shared"
	"github.com/pyrelease/relgate/internal/rewrite"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Documentation source maintenance",
}

var bumpCmd = &cobra.Command{
	Use:   "bump <version> <directory>",
	Short: `Replace "next" in version directives`,
	Long: `Replace the "next" placeholder in versionadded, versionchanged,
deprecated, deprecated-removed and versionremoved directives with the release
version, in every file under <directory> that matches --glob.

Only the directive argument is rewritten; every other byte of each file,
including line endings, is preserved.`,
	Example: `  relgate docs bump 3.14 Doc/
  relgate docs bump 3.14 Doc/ --dry-run -v
  relgate docs bump 3.14 Misc/ --glob '**/*.txt'`,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := shared.LoadConfig(cmd)
		if err != nil {
			return err
		}
		pattern, _ := cmd.Flags().GetString("glob")
		if pattern == "" {
			pattern = cfg.DocsGlob
		}
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		return runBump(cmd.Context(), cmd.OutOrStdout(), rewrite.Options{
			Version: args[0],
			Root:    args[1],
			Pattern: pattern,
			DryRun:  dryRun,
			Logger:  shared.LoggerFromFlags(cmd),
		})
	},
}

func init() {
	bumpCmd.Flags().Bool("dry-run", false, "Report changes without writing files")
	bumpCmd.Flags().String("glob", "", "Files to scan, relative to <directory> (default from docs_glob)")

	docsCmd.GroupID = shared.GroupDocs
	docsCmd.AddCommand(bumpCmd)
}

// Register adds the docs commands to the root command.
func Register(rootCmd *cobra.Command) {
	rootCmd.AddCommand(docsCmd)
}

func runBump(ctx context.Context, w io.Writer, opts rewrite.Options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	result, err := rewrite.Rewrite(ctx, opts)
	if err != nil {
		return err
	}

	changes := result.Changes()
	if changes == 0 {
		fmt.Fprintf(w, "No %q directives found in %d file(s) under %s\n", rewrite.Sentinel, result.Scanned, opts.Root)
		return nil
	}

	verb := "Updated"
	if opts.DryRun {
		verb = "Would update"
		for _, f := range result.Files {
			fmt.Fprintf(w, "  %s: lines %v\n", f.Path, f.Lines)
		}
	}
	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(w, "%s %s %d directive(s) in %d of %d file(s) to %s\n",
		green("✓"), verb, changes, len(result.Files), result.Scanned, opts.Version)
	return nil
}
