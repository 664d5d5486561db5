package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func RunFreeze(cmd *cobra.Command, args []string) error {
	p, err := openProject(cmd)
	if err != nil {
		return err
	}

	if err := p.Freeze(args[0]); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Froze %s\n", args[0])
	return nil
}
