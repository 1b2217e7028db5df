package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"refcheck/core/refindex"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	dryRunMissing  bool
	updateRefindex bool
	yesConfirm     bool
	outputFile     string
	outputFormat   string
)

// missingFilesCmd finds references to files that no longer exist.
var missingFilesCmd = &cobra.Command{
	Use:   "missing-files",
	Short: "Find and clear references to missing files",
	Long: `Scans the reference index for references to files that are missing
from the content root.

Managed references (relations created through the record editor) to missing
files are removed from the index. Soft references (links found inside text
content) are only reported, they must be fixed by editing the content.

Examples:
  # Report only
  refcheck missing-files --dry-run

  # Rebuild the index first, then repair without prompting
  refcheck missing-files --update-refindex --yes

  # Save the findings as YAML
  refcheck missing-files --dry-run --output report.yaml --format yaml`,
	RunE: runMissingFiles,
}

func init() {
	missingFilesCmd.Flags().BoolVar(&dryRunMissing, "dry-run", false, "Only report, never change the reference index")
	missingFilesCmd.Flags().BoolVar(&updateRefindex, "update-refindex", false, "Rebuild the reference index before scanning")
	missingFilesCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm prompts (non-interactive)")
	missingFilesCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write the result to a file")
	missingFilesCmd.Flags().StringVar(&outputFormat, "format", "json", "Format of the --output file (json or yaml)")

	RootCmd.AddCommand(missingFilesCmd)
}

func runMissingFiles(cmd *cobra.Command, args []string) error {
	if outputFormat != "json" && outputFormat != "yaml" {
		return fmt.Errorf("unsupported output format %q", outputFormat)
	}

	rt, err := bootstrap()
	if err != nil {
		return err
	}
	defer rt.close()

	ctx := cmd.Context()
	rc, err := rt.reconciler(ctx)
	if err != nil {
		return err
	}

	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	refresh := updateRefindex
	if !refresh && !yesConfirm {
		refresh = ask(in, out, "Update the reference index before scanning? [y/N] ", "y", "yes")
	}

	// Plan: a dry run always comes first so the user sees what would change.
	result, err := rc.Run(ctx, refindex.Options{DryRun: true, RefreshIndexFirst: refresh})
	if err != nil {
		return err
	}

	candidates := result.Summary().WouldRemove
	if !dryRunMissing && candidates > 0 {
		if !confirmDestructiveAction(in, out) {
			printReport(out, result)
			rt.logger.Warn("Operation cancelled by user. No changes were made.")
			return writeReport(result)
		}

		result, err = rc.Run(ctx, refindex.Options{DryRun: false})
		if err != nil {
			return err
		}
	} else if !dryRunMissing {
		// Nothing to remove: the plan is the outcome of the requested run.
		result.DryRun = false
	}

	printReport(out, result)
	if dryRunMissing {
		fmt.Fprintln(out, "Dry-run mode: no changes were made.")
		rt.logger.Info("Dry-run finished", zap.Int("candidates", candidates))
	}
	return writeReport(result)
}

// ask prints question and reports whether the answer is one of accept.
// Anything else, including EOF, counts as no.
func ask(in *bufio.Reader, out io.Writer, question string, accept ...string) bool {
	fmt.Fprint(out, question)
	response, err := in.ReadString('\n')
	if err != nil && response == "" {
		fmt.Fprintln(out)
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	for _, a := range accept {
		if response == a {
			return true
		}
	}
	return false
}

// confirmDestructiveAction prompts the user for confirmation or uses the --yes flag.
func confirmDestructiveAction(in *bufio.Reader, out io.Writer) bool {
	if yesConfirm {
		fmt.Fprintln(out, "Auto-confirmed via --yes flag")
		return true
	}
	return ask(in, out, "Type 'yes' to remove the references listed above: ", "yes")
}

// printReport writes the human readable result.
func printReport(w io.Writer, result *refindex.Result) {
	if result.RefreshError != "" {
		fmt.Fprintf(w, "Reference index was not refreshed: %s\n", result.RefreshError)
	}

	if len(result.MissingSoftReferences) > 0 {
		fmt.Fprintln(w, "\nReferences to files that were not found (soft references, fix the content manually):")
		for _, d := range result.MissingSoftReferences {
			fmt.Fprintf(w, "  - %s\n", d)
		}
	}

	if len(result.MissingManagedReferences) > 0 {
		fmt.Fprintln(w, "\nReferences to files that were not found (managed references):")
		for _, g := range result.MissingManagedReferences {
			fmt.Fprintf(w, "  %s\n", g.Path)
			for _, d := range result.ManagedDescriptors(g.Path) {
				fmt.Fprintf(w, "    - %s\n", d)
			}
		}
	}

	if failures := result.Failures(); len(failures) > 0 {
		fmt.Fprintln(w, "\nReferences that could not be removed:")
		for _, f := range failures {
			fmt.Fprintf(w, "  - %s (%s): %s\n", f.Hash, f.Path, f.Message)
		}
	}

	if result.Excluded > 0 {
		fmt.Fprintf(w, "\n%d reference(s) skipped by exclude patterns\n", result.Excluded)
	}

	s := result.Summary()
	if s.MissingFiles == 0 && s.MissingSoft == 0 {
		fmt.Fprintln(w, "\nNothing to do - no missing files found.")
		return
	}
	fmt.Fprintf(w, "\n%s\n", s)
}

// writeReport saves the result to --output when set.
func writeReport(result *refindex.Result) error {
	if outputFile == "" {
		return nil
	}
	data, err := encodeReport(result, outputFormat)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

func encodeReport(result *refindex.Result, format string) ([]byte, error) {
	switch format {
	case "yaml":
		return yaml.Marshal(result)
	case "json", "":
		return json.MarshalIndent(result, "", "  ")
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}
