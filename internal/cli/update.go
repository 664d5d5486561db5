package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func RunUpdate(cmd *cobra.Command, args []string) error {
	p, err := openProject(cmd)
	if err != nil {
		return err
	}
	register, err := OptionalBoolFlag(cmd, "register", false)
	if err != nil {
		return err
	}
	asJSON, err := OptionalBoolFlag(cmd, "json", false)
	if err != nil {
		return err
	}

	report, err := p.Update(register)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	}

	fmt.Fprintf(out, "update: untracked=%d missing=%d registered=%d skipped=%d\n",
		len(report.UntrackedAnalyses)+len(report.UntrackedData),
		len(report.MissingAnalyses)+len(report.MissingData),
		len(report.Registered),
		len(report.Skipped),
	)
	printPathList(out, "untracked analyses", report.UntrackedAnalyses)
	printPathList(out, "untracked data", report.UntrackedData)
	printPathList(out, "missing analyses", report.MissingAnalyses)
	printPathList(out, "missing data", report.MissingData)
	printPathList(out, "registered", report.Registered)
	printPathList(out, "skipped", report.Skipped)

	if !register && (len(report.UntrackedAnalyses) > 0 || len(report.UntrackedData) > 0) {
		fmt.Fprintln(out, "run with --register to track these directories")
	}
	return nil
}

func printPathList(out io.Writer, label string, paths []string) {
	if len(paths) == 0 {
		return
	}
	fmt.Fprintf(out, "%s (%d): %s\n", label, len(paths), strings.Join(paths, ", "))
}
