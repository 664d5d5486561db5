package cli

import (
	"encoding/json"
	"fmt"

	"github.com/raivivek/makebio/internal/project"
	"github.com/spf13/cobra"
)

func RunShow(cmd *cobra.Command, args []string) error {
	p, err := openProject(cmd)
	if err != nil {
		return err
	}
	asJSON, err := OptionalBoolFlag(cmd, "json", false)
	if err != nil {
		return err
	}

	st := p.Status()
	out := cmd.OutOrStdout()

	if asJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(st)
	}

	fmt.Fprintf(out, "project: %s\n", st.Name)
	fmt.Fprintf(out, "root: %s\n", st.Root)
	fmt.Fprintf(out, "created: %s\n", st.Created)
	if st.Author != "" {
		fmt.Fprintf(out, "author: %s", st.Author)
		if st.Email != "" {
			fmt.Fprintf(out, " <%s>", st.Email)
		}
		fmt.Fprintln(out)
	}
	if st.Description != "" {
		fmt.Fprintf(out, "description: %s\n", st.Description)
	}
	if st.WorkLink != "" {
		fmt.Fprintf(out, "work -> %s\n", st.WorkLink)
	}
	if st.DataLink != "" {
		fmt.Fprintf(out, "data -> %s\n", st.DataLink)
	}

	fmt.Fprintf(out, "analyses (%d):\n", len(st.Analyses))
	for _, rec := range st.Analyses {
		fmt.Fprintf(out, "  %s%s\n", rec.Dir, recordFlags(rec))
	}
	fmt.Fprintf(out, "data (%d):\n", len(st.Datasets))
	for _, rec := range st.Datasets {
		fmt.Fprintf(out, "  %s%s\n", rec.Dir, recordFlags(rec))
	}

	if st.Snapshot != nil {
		fmt.Fprintf(out, "snapshot: %.8s %s %s\n",
			st.Snapshot.Hash,
			st.Snapshot.When.Format("2006-01-02 15:04"),
			st.Snapshot.Message,
		)
	}
	return nil
}

func recordFlags(rec project.RecordStatus) string {
	flags := ""
	if rec.Frozen {
		flags += " [frozen]"
	}
	if rec.Missing {
		flags += " [missing]"
	}
	return flags
}
