package adapter

import (
	"context"
	"fmt"
	"os/exec"

	m "github.com/graybeam/testpolicy/internal/model"
)

// GitClient produces unified diffs for the changed-scope scan modes. All
// diffs are taken with zero context lines so hunk ranges equal the added
// extent exactly.
type GitClient interface {
	DiffUnstaged(ctx context.Context, root m.Path) (string, error)
	DiffStaged(ctx context.Context, root m.Path) (string, error)
	DiffBase(ctx context.Context, root m.Path, base string) (string, error)
}

// LocalGitClient shells out to the git binary.
type LocalGitClient struct{}

// NewLocalGitClient constructs a LocalGitClient ready to be wired into the
// workflow.
func NewLocalGitClient() *LocalGitClient {
	return &LocalGitClient{}
}

// DiffUnstaged compares the working tree against the index.
func (g *LocalGitClient) DiffUnstaged(ctx context.Context, root m.Path) (string, error) {
	return g.diff(ctx, root)
}

// DiffStaged compares the index against HEAD.
func (g *LocalGitClient) DiffStaged(ctx context.Context, root m.Path) (string, error) {
	return g.diff(ctx, root, "--cached")
}

// DiffBase compares the working tree against a named base revision.
func (g *LocalGitClient) DiffBase(ctx context.Context, root m.Path, base string) (string, error) {
	return g.diff(ctx, root, base)
}

func (g *LocalGitClient) diff(ctx context.Context, root m.Path, extra ...string) (string, error) {
	args := append([]string{"diff", "--unified=0", "--no-color", "--no-ext-diff"}, extra...)

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = string(root)

	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git diff: %w", err)
	}

	return string(out), nil
}
