package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/gitsleuth/internal/render"
)

const shortHashLen = 8

// ListCommand holds configuration for the list command.
type ListCommand struct {
	commits      bool
	tags         bool
	branches     bool
	contributors bool
	all          bool
}

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	lc := &ListCommand{}

	cmd := &cobra.Command{
		Use:   "list [path]",
		Short: "List commits, tags, branches, contributors, or tracked files",
		Long: `List repository contents. Without flags the tracked files at HEAD are
listed, with excluded paths filtered out.`,
		Args: cobra.MaximumNArgs(1),
		RunE: lc.run,
	}

	cmd.Flags().BoolVar(&lc.commits, "commits", false, "List commits, newest first")
	cmd.Flags().BoolVar(&lc.tags, "tags", false, "List tags")
	cmd.Flags().BoolVar(&lc.branches, "branches", false, "List local branches")
	cmd.Flags().BoolVar(&lc.contributors, "contributors", false, "List unique commit authors")
	cmd.Flags().BoolVar(&lc.all, "all", false, "Include excluded paths in the file listing")

	return cmd
}

func (lc *ListCommand) run(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}

	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.shutdown()

	d, err := rt.openDetective(path)
	if err != nil {
		return err
	}
	defer d.Close()

	out := cmd.OutOrStdout()

	switch {
	case lc.commits:
		commits, listErr := d.Commits(cmd.Context())
		if listErr != nil {
			return listErr
		}

		for _, commit := range commits {
			fmt.Fprintf(out, "%s %s (%s)\n",
				color.New(color.FgYellow).Sprint(commit.Hash.String()[:shortHashLen]),
				commit.Summary,
				commit.Author)
		}
	case lc.tags:
		tags, listErr := d.Tags()
		if listErr != nil {
			return listErr
		}

		for _, tag := range tags {
			fmt.Fprintf(out, "%s %s\n",
				color.New(color.FgYellow).Sprint(tag.Hash.String()[:shortHashLen]),
				tag.Name)
		}
	case lc.branches:
		branches, listErr := d.Branches()
		if listErr != nil {
			return listErr
		}

		for _, branch := range branches {
			fmt.Fprintf(out, "%s %s\n",
				color.New(color.FgYellow).Sprint(branch.Hash.String()[:shortHashLen]),
				branch.Name)
		}
	case lc.contributors:
		authors, listErr := d.Contributors(cmd.Context())
		if listErr != nil {
			return listErr
		}

		fmt.Fprintln(out, render.Contributors(authors))
	default:
		files, listErr := d.Ls()
		if lc.all {
			files, listErr = d.LsAll()
		}

		if listErr != nil {
			return listErr
		}

		for _, file := range files {
			if file.Excluded {
				fmt.Fprintf(out, "%s (excluded)\n", color.New(color.Faint).Sprint(file.Path))

				continue
			}

			fmt.Fprintln(out, file.Path)
		}
	}

	return nil
}
