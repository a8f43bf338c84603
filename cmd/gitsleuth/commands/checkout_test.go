package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/gitsleuth/internal/gittest"
	"github.com/Sumatoshi-tech/gitsleuth/pkg/detective"
	"github.com/Sumatoshi-tech/gitsleuth/pkg/gitlib"
)

func TestResolveRef(t *testing.T) {
	repo := gittest.New(t)
	repo.WriteFile("a.txt", "a\n")
	hash := repo.Commit("alice", "first")

	commit, err := repo.Native().LookupCommit(hash.ToOid())
	require.NoError(t, err)

	defer commit.Free()

	_, err = repo.Native().Tags.CreateLightweight("v1.0.0", commit, false)
	require.NoError(t, err)

	d, err := detective.Open(repo.Path())
	require.NoError(t, err)

	t.Cleanup(d.Close)

	branches, err := d.Branches()
	require.NoError(t, err)
	require.NotEmpty(t, branches)

	ref, err := resolveRef(d, branches[0].Name)
	require.NoError(t, err)
	assert.IsType(t, gitlib.BranchRef{}, ref)

	ref, err = resolveRef(d, "v1.0.0")
	require.NoError(t, err)
	assert.IsType(t, gitlib.TagRef{}, ref)

	ref, err = resolveRef(d, hash.String())
	require.NoError(t, err)
	assert.IsType(t, gitlib.CommitRef{}, ref)

	_, err = resolveRef(d, "no-such-ref")
	require.ErrorIs(t, err, ErrUnknownRef)
}
