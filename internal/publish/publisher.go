// Package publish synchronizes generated calendar files into a public git
// repository so every calendar stays fetchable at a constant URL.
package publish

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5/osfs"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	gogitfs "github.com/go-git/go-git/v5/storage/filesystem"
	"go.uber.org/zap"

	"github.com/beekeepergroup/legislative-calendar/internal/app"
)

const (
	RemoteName        = "origin"
	DefaultBranch     = "main"
	DefaultCommitName = "legislative-calendar"
)

// Publisher mirrors an output directory of calendar files into a git
// repository and pushes it. File paths inside the repository never change
// across syncs, so the host's raw-file URLs stay stable.
type Publisher struct {
	cfg     app.PublishConfig
	workDir string
	log     *zap.Logger
}

// New creates a Publisher using workDir as the local checkout.
func New(cfg app.PublishConfig, workDir string, log *zap.Logger) *Publisher {
	if cfg.Branch == "" {
		cfg.Branch = DefaultBranch
	}
	if cfg.CommitName == "" {
		cfg.CommitName = DefaultCommitName
	}
	return &Publisher{cfg: cfg, workDir: workDir, log: log}
}

// Sync copies the calendar files from outDir into the repository, commits
// and pushes. A sync with no content changes is a successful no-op.
func (p *Publisher) Sync(ctx context.Context, outDir string) error {
	auth, err := p.auth()
	if err != nil {
		return err
	}

	repo, err := p.openOrClone(ctx, auth)
	if err != nil {
		return err
	}

	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}

	names, err := p.copyFiles(outDir)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return fmt.Errorf("no calendar files found in %s", outDir)
	}

	for _, name := range names {
		gitPath := filepath.ToSlash(filepath.Join(p.cfg.Subdir, name))
		if _, err := wt.Add(gitPath); err != nil {
			return fmt.Errorf("failed to stage %s: %w", gitPath, err)
		}
	}

	commit, err := wt.Commit(
		fmt.Sprintf("Update legislative calendars (%s)", time.Now().UTC().Format(app.DateFormat)),
		&gogit.CommitOptions{
			Author: &object.Signature{
				Name:  p.cfg.CommitName,
				Email: p.cfg.CommitEmail,
				When:  time.Now(),
			},
		},
	)
	switch {
	case err == nil:
		p.log.Info("committed calendars",
			zap.String("commit", commit.String()),
			zap.Int("files", len(names)))
	case errors.Is(err, gogit.ErrEmptyCommit):
		// An earlier push may have failed after its commit landed, so an
		// unchanged worktree still pushes to deliver it.
		p.log.Info("no calendar changes to commit")
	default:
		return fmt.Errorf("failed to commit calendars: %w", err)
	}

	return p.push(ctx, repo, auth)
}

// openOrClone opens the local checkout, cloning it first when absent. A
// fresh, still-empty hosting repository is wired up locally so the first
// publish works too.
func (p *Publisher) openOrClone(ctx context.Context, auth transport.AuthMethod) (*gogit.Repository, error) {
	if err := os.MkdirAll(p.workDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create work directory: %w", err)
	}

	fs := osfs.New(p.workDir)
	if err := fs.MkdirAll(".git", 0755); err != nil {
		return nil, fmt.Errorf("failed to create .git dir: %w", err)
	}
	dotGitFS, err := fs.Chroot(".git")
	if err != nil {
		return nil, fmt.Errorf("failed to chroot .git dir: %w", err)
	}
	storage := gogitfs.NewStorage(dotGitFS, cache.NewObjectLRUDefault())

	repo, err := gogit.Open(storage, fs)
	if err == nil {
		return repo, nil
	}
	if !errors.Is(err, gogit.ErrRepositoryNotExists) {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	p.log.Info("cloning calendar repository",
		zap.String("remote", p.cfg.Remote),
		zap.String("branch", p.cfg.Branch))

	repo, err = gogit.CloneContext(ctx, storage, fs, &gogit.CloneOptions{
		URL:           p.cfg.Remote,
		ReferenceName: plumbing.NewBranchReferenceName(p.cfg.Branch),
		SingleBranch:  true,
		Auth:          auth,
	})
	if err == nil {
		return repo, nil
	}
	if !errors.Is(err, transport.ErrEmptyRemoteRepository) {
		return nil, fmt.Errorf("git clone failed: %w", err)
	}

	// Remote exists but has no commits yet. The failed clone has already
	// initialized the local storage, so open it and finish the wiring.
	repo, err = gogit.Open(storage, fs)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}
	if _, err := repo.Remote(RemoteName); err != nil {
		if !errors.Is(err, gogit.ErrRemoteNotFound) {
			return nil, fmt.Errorf("failed to look up remote: %w", err)
		}
		if _, err := repo.CreateRemote(&config.RemoteConfig{
			Name: RemoteName,
			URLs: []string{p.cfg.Remote},
		}); err != nil {
			return nil, fmt.Errorf("failed to create remote: %w", err)
		}
	}
	head := plumbing.NewSymbolicReference(plumbing.HEAD, plumbing.NewBranchReferenceName(p.cfg.Branch))
	if err := repo.Storer.SetReference(head); err != nil {
		return nil, fmt.Errorf("failed to set branch %s: %w", p.cfg.Branch, err)
	}

	return repo, nil
}

// copyFiles copies calendar artifacts from outDir into the checkout and
// returns their names. Only .ics files, the optional CSV/JSON companions
// and the manifest are published.
func (p *Publisher) copyFiles(outDir string) ([]string, error) {
	entries, err := os.ReadDir(outDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read output directory: %w", err)
	}

	destDir := filepath.Join(p.workDir, p.cfg.Subdir)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create publish directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !isPublishable(entry.Name()) {
			continue
		}

		data, err := os.ReadFile(filepath.Join(outDir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", entry.Name(), err)
		}
		if err := os.WriteFile(filepath.Join(destDir, entry.Name()), data, app.FilePermissions); err != nil {
			return nil, fmt.Errorf("failed to copy %s: %w", entry.Name(), err)
		}
		names = append(names, entry.Name())
	}

	return names, nil
}

func isPublishable(name string) bool {
	if name == app.ManifestFile {
		return true
	}
	switch filepath.Ext(name) {
	case ".ics", ".csv", ".json":
		return true
	}
	return false
}

// push pushes the branch, retrying with exponential backoff per the
// configured policy before surfacing the error to the operator.
func (p *Publisher) push(ctx context.Context, repo *gogit.Repository, auth transport.AuthMethod) error {
	refSpec := config.RefSpec(fmt.Sprintf("refs/heads/%s:refs/heads/%s", p.cfg.Branch, p.cfg.Branch))

	attempts := p.cfg.Retry.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if delay := p.cfg.Retry.GetRetryDelay(attempt); delay > 0 {
			p.log.Warn("retrying push",
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay))
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		err = repo.PushContext(ctx, &gogit.PushOptions{
			RemoteName: RemoteName,
			RefSpecs:   []config.RefSpec{refSpec},
			Auth:       auth,
		})
		if err == nil || errors.Is(err, gogit.NoErrAlreadyUpToDate) {
			p.log.Info("pushed calendars",
				zap.String("remote", p.cfg.Remote),
				zap.String("branch", p.cfg.Branch))
			return nil
		}
	}

	return fmt.Errorf("git push failed after %d attempts: %w", attempts, err)
}

// isSSHRemote reports whether the remote uses SSH transport.
func isSSHRemote(remote string) bool {
	return strings.HasPrefix(remote, "git@") || strings.HasPrefix(remote, "ssh://")
}

// isHTTPRemote reports whether the remote uses HTTP(S) transport.
func isHTTPRemote(remote string) bool {
	return strings.HasPrefix(remote, "https://") || strings.HasPrefix(remote, "http://")
}
