package util

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pyrelease/relgate/internal/cli/shared"
	apperrors "github.com/pyrelease/relgate/internal/errors"
	"github.com/pyrelease/relgate/internal/tag"
)

var tagCmd = &cobra.Command{
	Use:   "tag <version>",
	Short: "Show how a release tag decomposes",
	Long: `Parse a release tag (X.Y.Z, X.Y.ZaN, X.Y.ZbN or X.Y.ZrcN) and print the
values derived from it: level, serial, branch, git tag name and whether the
release ships documentation.`,
	Example: `  relgate tag 3.13.0rc1
  relgate tag 3.14.0a7 --plain`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		plain, _ := cmd.Flags().GetBool("plain")
		return runTag(cmd.OutOrStdout(), args[0], plain)
	},
}

func init() {
	tagCmd.GroupID = shared.GroupUtility
	tagCmd.Flags().Bool("plain", false, "Plain key: value output")
}

func runTag(w io.Writer, input string, plain bool) error {
	t, err := tag.Parse(input)
	if err != nil {
		return apperrors.InvalidTag(input)
	}

	fields := tagFields(t)
	if plain {
		for _, f := range fields {
			fmt.Fprintf(w, "%s: %s\n", f.label, f.value)
		}
		return nil
	}

	yellow := color.New(color.FgYellow).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()
	for _, f := range fields {
		fmt.Fprintf(w, "%s %s\n", yellow(fmt.Sprintf("%-16s", f.label+":")), bold(f.value))
	}
	return nil
}

func tagFields(t tag.Tag) []versionField {
	return []versionField{
		{"tag", t.String()},
		{"level", t.Level().String()},
		{"serial", strconv.Itoa(t.Serial())},
		{"series", t.Series()},
		{"basic_version", t.BasicVersion()},
		{"git_tag", t.GitName()},
		{"nickname", t.Nickname()},
		{"branch", t.Branch()},
		{"feature_freeze", strconv.FormatBool(t.IsFeatureFreeze())},
		{"includes_docs", strconv.FormatBool(t.IncludesDocs())},
	}
}
