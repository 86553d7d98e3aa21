//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"fmt"

	"github.com/rios0rios0/diffaudit/internal/domain/entities"
)

// LinearHistory returns count commits oldest first: a root commit followed
// by count-1 commits, each modifying every path against its predecessor.
func LinearHistory(count int, paths ...string) []*entities.Commit {
	commits := make([]*entities.Commit, 0, count)
	for i := range count {
		builder := NewCommitBuilder().
			WithHash(HashAt(i)).
			WithMessage(fmt.Sprintf("commit %d", i))
		if i == 0 {
			builder.WithParents()
		} else {
			builder.WithParents(HashAt(i - 1))
			for _, path := range paths {
				builder.WithModified(path)
			}
		}
		commits = append(commits, builder.BuildCommit())
	}
	return commits
}

// HashAt is the deterministic hash LinearHistory assigns to position i.
func HashAt(i int) string {
	return fmt.Sprintf("%040x", i+1)
}
