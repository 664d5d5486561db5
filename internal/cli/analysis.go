package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func RunAddAnalysis(cmd *cobra.Command, args []string) error {
	p, err := openProject(cmd)
	if err != nil {
		return err
	}
	day, err := ParseDateFlag(cmd)
	if err != nil {
		return err
	}

	rec, err := p.AddAnalysis(args[0], day)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added analysis %s (control/%s, results/%s)\n", rec.Name, rec.Dir, rec.Dir)
	return nil
}

func RunRenameAnalysis(cmd *cobra.Command, args []string) error {
	p, err := openProject(cmd)
	if err != nil {
		return err
	}

	oldName, newName := args[0], args[1]
	if err := p.RenameAnalysis(oldName, newName); err != nil {
		return err
	}

	rec := p.Config.FindAnalysis(newName)
	fmt.Fprintf(cmd.OutOrStdout(), "Renamed analysis %s -> %s (%s)\n", oldName, newName, rec.Dir)
	return nil
}
