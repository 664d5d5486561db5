package cli

import (
	"fmt"
	"path/filepath"

	"github.com/raivivek/makebio/internal/project"
	"github.com/spf13/cobra"
)

func RunInit(cmd *cobra.Command, args []string) error {
	root, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", args[0], err)
	}

	opts := project.InitOptions{}
	if opts.Name, err = OptionalStringFlag(cmd, "name"); err != nil {
		return err
	}
	if opts.LinkTo, err = OptionalStringFlag(cmd, "linkto"); err != nil {
		return err
	}
	if opts.LinkTo != "" {
		if opts.LinkTo, err = filepath.Abs(opts.LinkTo); err != nil {
			return fmt.Errorf("failed to resolve --linkto: %w", err)
		}
	}
	if opts.Author, err = OptionalStringFlag(cmd, "author"); err != nil {
		return err
	}
	if opts.Email, err = OptionalStringFlag(cmd, "email"); err != nil {
		return err
	}
	if opts.Description, err = OptionalStringFlag(cmd, "description"); err != nil {
		return err
	}
	if opts.AllowDangling, err = OptionalBoolFlag(cmd, "allow-dangling", false); err != nil {
		return err
	}
	if opts.Git, err = OptionalBoolFlag(cmd, "git", true); err != nil {
		return err
	}

	if opts.Author == "" {
		opts.Author = promptString(cmd, "Author")
	}
	if opts.Email == "" {
		opts.Email = promptString(cmd, "Email")
	}

	p, err := project.Init(root, opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized project %s at %s\n", p.Config.Name, p.Root)
	if p.Config.Links.Work != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "work -> %s\ndata -> %s\n", p.Config.Links.Work, p.Config.Links.Data)
	}
	return nil
}
