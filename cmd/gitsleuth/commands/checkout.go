package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/gitsleuth/pkg/detective"
	"github.com/Sumatoshi-tech/gitsleuth/pkg/gitlib"
)

// ErrUnknownRef is returned when a checkout target matches no branch, tag,
// or commit hash.
var ErrUnknownRef = errors.New("unknown reference")

// CheckoutCommand holds configuration for the checkout command.
type CheckoutCommand struct {
	path string
}

// NewCheckoutCommand creates the checkout command.
func NewCheckoutCommand() *cobra.Command {
	cc := &CheckoutCommand{}

	cmd := &cobra.Command{
		Use:   "checkout <ref>",
		Short: "Check out a commit, branch, or tag",
		Long: `Check out the given reference. The target is resolved as a local
branch name first, then a tag name, then a full commit hash. The
repository state must be clean; checking out a commit or tag detaches
HEAD.`,
		Args: cobra.ExactArgs(1),
		RunE: cc.run,
	}

	cmd.Flags().StringVarP(&cc.path, "path", "p", ".", "Repository path")

	return cmd
}

func (cc *CheckoutCommand) run(cmd *cobra.Command, args []string) error {
	target := args[0]

	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.shutdown()

	d, err := rt.openDetective(cc.path)
	if err != nil {
		return err
	}
	defer d.Close()

	ref, err := resolveRef(d, target)
	if err != nil {
		return err
	}

	err = d.Checkout(ref)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Checked out %s\n", target)

	return nil
}

// resolveRef maps a user-supplied name to a checkoutable reference:
// branch name, tag name, or full commit hash, in that order.
func resolveRef(d *detective.Detective, target string) (gitlib.Checkoutable, error) {
	branches, err := d.Branches()
	if err != nil {
		return nil, err
	}

	for _, branch := range branches {
		if branch.Name == target {
			return gitlib.BranchRef{Name: branch.Name}, nil
		}
	}

	tags, err := d.Tags()
	if err != nil {
		return nil, err
	}

	for _, tag := range tags {
		if tag.Name == target {
			return gitlib.TagRef{Hash: tag.Hash}, nil
		}
	}

	if len(target) == gitlib.HashHexSize {
		return gitlib.CommitRef{Hash: gitlib.NewHash(target)}, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownRef, target)
}
