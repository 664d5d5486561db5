package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func RunAddData(cmd *cobra.Command, args []string) error {
	p, err := openProject(cmd)
	if err != nil {
		return err
	}
	day, err := ParseDateFlag(cmd)
	if err != nil {
		return err
	}
	freeze, err := OptionalBoolFlag(cmd, "freeze", false)
	if err != nil {
		return err
	}

	rec, err := p.AddData(args[0], day, freeze)
	if err != nil {
		return err
	}

	suffix := ""
	if rec.Frozen {
		suffix = " [frozen]"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added data %s (data/%s)%s\n", rec.Name, rec.Dir, suffix)
	return nil
}
