package gogit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/merkletrie"

	"github.com/rios0rios0/diffaudit/internal/domain/entities"
	"github.com/rios0rios0/diffaudit/internal/domain/repositories"
)

// HistoryRepository reads commit history straight from the object database
// with go-git, without spawning any process.
type HistoryRepository struct{}

var _ repositories.HistoryRepository = (*HistoryRepository)(nil)

// NewHistoryRepository creates a go-git backed history reader.
func NewHistoryRepository() *HistoryRepository {
	return &HistoryRepository{}
}

// Open resolves HEAD of the repository at path and prepares an iterator in
// the requested order. An unborn HEAD yields an empty history.
func (r *HistoryRepository) Open(
	ctx context.Context,
	path string,
	order entities.Order,
) (repositories.CommitIterator, error) {
	//nolint:exhaustruct // only dot-git detection is relevant
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, entities.NewRepositoryAccessError(path, err)
	}

	head, err := repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return &commitIterator{repo: repo}, nil
	}
	if err != nil {
		return nil, entities.NewRepositoryAccessError(path, fmt.Errorf("resolve HEAD: %w", err))
	}

	//nolint:exhaustruct // walk everything reachable from HEAD
	log, err := repo.Log(&git.LogOptions{From: head.Hash(), Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, entities.NewRepositoryAccessError(path, fmt.Errorf("read log: %w", err))
	}

	if order == entities.OrderNative {
		return &commitIterator{repo: repo, log: log}, nil
	}

	// Oldest first needs the whole walk up front; only hashes are kept.
	hashes := make([]plumbing.Hash, 0)
	walkErr := log.ForEach(func(c *object.Commit) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		hashes = append(hashes, c.Hash)
		return nil
	})
	log.Close()
	if walkErr != nil {
		return nil, entities.NewRepositoryAccessError(path, fmt.Errorf("walk log: %w", walkErr))
	}
	slices.Reverse(hashes)

	return &commitIterator{repo: repo, hashes: hashes}, nil
}

// commitIterator pulls either from a live log iterator or from a
// precomputed hash list.
type commitIterator struct {
	repo   *git.Repository
	log    object.CommitIter
	hashes []plumbing.Hash
	pos    int
}

func (it *commitIterator) Next(ctx context.Context) (*entities.Commit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		commit *object.Commit
		err    error
	)
	switch {
	case it.log != nil:
		commit, err = it.log.Next()
	case it.pos < len(it.hashes):
		commit, err = it.repo.CommitObject(it.hashes[it.pos])
		it.pos++
	default:
		return nil, io.EOF
	}
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("read commit: %w", err)
	}

	return toCommit(ctx, commit)
}

func (it *commitIterator) Close() {
	if it.log != nil {
		it.log.Close()
	}
}

// toCommit converts a go-git commit, listing its files against the first
// parent. Root commits have nothing to diff against and carry no files.
func toCommit(ctx context.Context, commit *object.Commit) (*entities.Commit, error) {
	parents := make([]string, 0, len(commit.ParentHashes))
	for _, hash := range commit.ParentHashes {
		parents = append(parents, hash.String())
	}

	converted := &entities.Commit{
		Hash:    commit.Hash.String(),
		Parents: parents,
		Message: commit.Message,
	}
	if commit.NumParents() == 0 {
		return converted, nil
	}

	files, err := modifiedFiles(ctx, commit)
	if err != nil {
		return nil, fmt.Errorf("list files of %s: %w", commit.Hash, err)
	}
	converted.Files = files
	return converted, nil
}

func modifiedFiles(ctx context.Context, commit *object.Commit) ([]entities.ModifiedFile, error) {
	tree, err := commit.Tree()
	if err != nil {
		return nil, err
	}

	parent, err := commit.Parent(0)
	if err != nil {
		return nil, err
	}
	parentTree, err := parent.Tree()
	if err != nil {
		return nil, err
	}

	changes, err := object.DiffTreeWithOptions(ctx, parentTree, tree, object.DefaultDiffTreeOptions)
	if err != nil {
		return nil, err
	}

	files := make([]entities.ModifiedFile, 0, len(changes))
	for _, change := range changes {
		action, actionErr := change.Action()
		if actionErr != nil {
			return nil, actionErr
		}
		files = append(files, entities.ModifiedFile{
			OldPath: change.From.Name,
			NewPath: change.To.Name,
			Kind:    changeKind(action, change.From.Name, change.To.Name),
		})
	}
	return files, nil
}

func changeKind(action merkletrie.Action, from, to string) entities.ChangeKind {
	switch action {
	case merkletrie.Insert:
		return entities.ChangeAdd
	case merkletrie.Delete:
		return entities.ChangeDelete
	case merkletrie.Modify:
		if from != to {
			return entities.ChangeRename
		}
		return entities.ChangeModify
	default:
		return entities.ChangeUnknown
	}
}
