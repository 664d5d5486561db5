package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "makebio",
		Short: "Quickly set up and manage research projects",
		Long: `Makebio scaffolds a standardized directory layout for computational
research projects and keeps a per-project makebio.toml in sync with it.

Code and notebooks live in the project root under version control, while
large intermediate files go to a scratch area reachable through the work
and data symlinks.

Analysis and data directories are prefixed with their creation date, for
example 2019-04-20_createTracks or 2019-05-01_fastq. Freezing a finished
analysis or dataset marks it read-only so it cannot be modified by
accident.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("root", "", "Project root (default: nearest makebio.toml above the working directory)")

	initCmd := &cobra.Command{
		Use:   "init <path>",
		Short: "Initialize a new project directory",
		Args:  cobra.ExactArgs(1),
		RunE:  RunInit,
	}
	initCmd.Flags().String("linkto", "", "Scratch root for work/ and data/ symlink targets")
	initCmd.Flags().String("name", "", "Project name (default: base name of <path>)")
	initCmd.Flags().String("author", "", "Author recorded in the project metadata")
	initCmd.Flags().String("email", "", "Email recorded in the project metadata")
	initCmd.Flags().String("description", "", "One-line project description")
	initCmd.Flags().Bool("allow-dangling", false, "Permit work/data symlinks whose target does not exist yet")
	initCmd.Flags().Bool("git", true, "Initialize a snapshot repository in the project root")

	addAnalysisCmd := &cobra.Command{
		Use:   "add-analysis <name>",
		Short: "Add a date-prefixed analysis under control/ and results/",
		Args:  cobra.ExactArgs(1),
		RunE:  RunAddAnalysis,
	}
	addAnalysisCmd.Flags().String("date", "", "Creation date as YYYY-MM-DD (default: today)")

	addDataCmd := &cobra.Command{
		Use:   "add-data <name>",
		Short: "Add a date-prefixed dataset under data/",
		Args:  cobra.ExactArgs(1),
		RunE:  RunAddData,
	}
	addDataCmd.Flags().String("date", "", "Creation date as YYYY-MM-DD (default: today)")
	addDataCmd.Flags().Bool("freeze", false, "Mark the new dataset read-only immediately")

	renameAnalysisCmd := &cobra.Command{
		Use:   "rename-analysis <old> <new>",
		Short: "Rename an analysis, keeping its date prefix",
		Args:  cobra.ExactArgs(2),
		RunE:  RunRenameAnalysis,
	}

	freezeCmd := &cobra.Command{
		Use:   "freeze <name-or-path>",
		Short: "Mark an analysis, dataset, or path read-only",
		Args:  cobra.ExactArgs(1),
		RunE:  RunFreeze,
	}

	saveCmd := &cobra.Command{
		Use:   "save",
		Short: "Snapshot the tracked project files",
		Args:  cobra.NoArgs,
		RunE:  RunSave,
	}
	saveCmd.Flags().StringP("message", "m", "", "Snapshot message (default: Snapshot <timestamp>)")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show project metadata and tracked entries",
		Args:  cobra.NoArgs,
		RunE:  RunShow,
	}
	showCmd.Flags().Bool("json", false, "Print machine-readable project state")

	updateCmd := &cobra.Command{
		Use:   "update",
		Short: "Reconcile makebio.toml with directories on disk",
		Args:  cobra.NoArgs,
		RunE:  RunUpdate,
	}
	updateCmd.Flags().Bool("register", false, "Register untracked date-prefixed directories")
	updateCmd.Flags().Bool("json", false, "Print machine-readable report")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("makebio %s\n", version)
		},
	}

	rootCmd.AddCommand(
		initCmd,
		addAnalysisCmd,
		addDataCmd,
		renameAnalysisCmd,
		freezeCmd,
		saveCmd,
		showCmd,
		updateCmd,
		versionCmd,
	)

	return rootCmd
}
