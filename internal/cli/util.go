package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/raivivek/makebio/internal/config"
	"github.com/raivivek/makebio/internal/fsops"
	"github.com/raivivek/makebio/internal/project"
	"github.com/spf13/cobra"
)

// resolveProjectRoot honors --root when given, otherwise walks up from the
// working directory to the nearest makebio.toml. When no config is found it
// returns the working directory and leaves the not-initialized error to
// project.Open.
func resolveProjectRoot(cmd *cobra.Command) (string, error) {
	root, err := OptionalStringFlag(cmd, "root")
	if err != nil {
		return "", err
	}
	if root != "" {
		return filepath.Abs(root)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to resolve working directory: %w", err)
	}

	dir := cwd
	for {
		if fsops.Exists(filepath.Join(dir, config.ConfigFile)) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, nil
		}
		dir = parent
	}
}

func openProject(cmd *cobra.Command) (*project.Project, error) {
	root, err := resolveProjectRoot(cmd)
	if err != nil {
		return nil, err
	}
	return project.Open(root)
}

func OptionalStringFlag(cmd *cobra.Command, name string) (string, error) {
	flags := cmd.Flags()
	if flags.Lookup(name) == nil {
		flags = cmd.InheritedFlags()
	}
	if flags.Lookup(name) == nil {
		return "", nil
	}
	value, err := flags.GetString(name)
	if err != nil {
		return "", fmt.Errorf("failed to read --%s flag: %w", name, err)
	}
	return strings.TrimSpace(value), nil
}

func OptionalBoolFlag(cmd *cobra.Command, name string, fallback bool) (bool, error) {
	if cmd.Flags().Lookup(name) == nil {
		return fallback, nil
	}
	value, err := cmd.Flags().GetBool(name)
	if err != nil {
		return fallback, fmt.Errorf("failed to read --%s flag: %w", name, err)
	}
	return value, nil
}

// ParseDateFlag reads --date, defaulting to today when the flag is unset.
func ParseDateFlag(cmd *cobra.Command) (time.Time, error) {
	value, err := OptionalStringFlag(cmd, "date")
	if err != nil {
		return time.Time{}, err
	}
	if value == "" {
		return time.Now(), nil
	}
	day, err := time.Parse(project.DateFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q (want YYYY-MM-DD)", value)
	}
	return day, nil
}

// promptString asks for a value on the terminal. Non-interactive stdin
// (tests, pipes) yields an empty string so commands never block.
func promptString(cmd *cobra.Command, label string) string {
	in, ok := cmd.InOrStdin().(*os.File)
	if !ok {
		return ""
	}
	info, err := in.Stat()
	if err != nil || info.Mode()&os.ModeCharDevice == 0 {
		return ""
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: ", label)
	scanner := bufio.NewScanner(in)
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text())
	}
	return ""
}
