package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/gitsleuth/internal/render"
)

// StatsCommand holds configuration for the stats command.
type StatsCommand struct {
	path       string
	file       string
	difference bool
	files      bool
	exclude    []string
	workers    int
}

// NewStatsCommand creates the stats command.
func NewStatsCommand() *cobra.Command {
	sc := &StatsCommand{}

	cmd := &cobra.Command{
		Use:   "stats [path]",
		Short: "Attribute repository contents per author",
		Long: `Attribute every line at HEAD to the author who last touched it,
classified per language as code, comment, or blank. With --difference the
output is per-author insertion and deletion totals across history; with
--files it is the set of files each author has committed changes to.`,
		Args: cobra.MaximumNArgs(1),
		RunE: sc.run,
	}

	cmd.Flags().StringVar(&sc.file, "file", "", "Attribute a single file instead of the whole tree")
	cmd.Flags().BoolVar(&sc.difference, "difference", false, "Show per-author insertion/deletion totals")
	cmd.Flags().BoolVar(&sc.files, "files", false, "Show files each author has contributed to")
	cmd.Flags().StringSliceVarP(&sc.exclude, "exclude", "e", nil, "Paths to exclude from attribution")
	cmd.Flags().IntVar(&sc.workers, "workers", 0, "Number of parallel file workers (0 = config or CPU count)")

	return cmd
}

func (sc *StatsCommand) run(cmd *cobra.Command, args []string) error {
	sc.path = "."
	if len(args) > 0 {
		sc.path = args[0]
	}

	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.shutdown()

	if sc.workers > 0 {
		rt.cfg.Analysis.Workers = sc.workers
	}

	d, err := rt.openDetective(sc.path)
	if err != nil {
		return err
	}
	defer d.Close()

	for _, excluded := range sc.exclude {
		d.ExcludeFile(excluded)
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	switch {
	case sc.file != "":
		language, contributions, fileErr := d.FinalContributionsFile(ctx, sc.file)
		if fileErr != nil {
			return fileErr
		}

		fmt.Fprintln(out, render.FileContributions(sc.file, language, contributions))
	case sc.difference:
		diffs, diffErr := d.DiffStats(ctx)
		if diffErr != nil {
			return diffErr
		}

		fmt.Fprintln(out, render.DiffStats(diffs))
	case sc.files:
		touched, touchErr := d.FilesContributedTo(ctx)
		if touchErr != nil {
			return touchErr
		}

		fmt.Fprintln(out, render.TouchedFiles(touched))
	default:
		project, finalErr := d.FinalContributions(ctx)
		if finalErr != nil {
			return finalErr
		}

		fmt.Fprintln(out, render.Contributions(project))
	}

	return nil
}
