package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func RunSave(cmd *cobra.Command, args []string) error {
	p, err := openProject(cmd)
	if err != nil {
		return err
	}
	message, err := OptionalStringFlag(cmd, "message")
	if err != nil {
		return err
	}

	hash, err := p.Save(message)
	if err != nil {
		return err
	}
	if hash == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing to save")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved snapshot %.8s\n", hash)
	return nil
}
