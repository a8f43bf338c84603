package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/gitsleuth/pkg/detective"
)

// CloneCommand holds configuration for the clone command.
type CloneCommand struct {
	recursive bool
}

// NewCloneCommand creates the clone command.
func NewCloneCommand() *cobra.Command {
	cc := &CloneCommand{}

	cmd := &cobra.Command{
		Use:   "clone <url> <path>",
		Short: "Clone a repository for inspection",
		Args:  cobra.ExactArgs(2),
		RunE:  cc.run,
	}

	cmd.Flags().BoolVar(&cc.recursive, "recursive", false, "Also clone submodules")

	return cmd
}

func (cc *CloneCommand) run(cmd *cobra.Command, args []string) error {
	url, path := args[0], args[1]

	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.shutdown()

	recursive := cc.recursive || rt.cfg.Clone.Recursive

	d, err := detective.Clone(url, path, recursive,
		detective.WithObservability(rt.providers),
	)
	if err != nil {
		return err
	}
	defer d.Close()

	fmt.Fprintf(cmd.OutOrStdout(), "Cloned %s into %s\n", url, path)

	return nil
}
