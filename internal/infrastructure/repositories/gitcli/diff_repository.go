package gitcli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/rios0rios0/diffaudit/internal/domain/entities"
	"github.com/rios0rios0/diffaudit/internal/domain/repositories"
)

const maxStderrLen = 200

// DiffRepository shells out to the git binary, the only engine that lets
// the line-matching algorithm be selected per invocation.
type DiffRepository struct {
	gitBin string
}

var _ repositories.DiffRepository = (*DiffRepository)(nil)

// NewDiffRepository creates a DiffRepository using the given git binary.
func NewDiffRepository(gitBin string) *DiffRepository {
	if strings.TrimSpace(gitBin) == "" {
		gitBin = entities.DefaultGitBinary
	}
	return &DiffRepository{gitBin: gitBin}
}

// Args returns the git arguments used for one invocation.
func Args(algorithm entities.Algorithm, req repositories.DiffRequest) []string {
	return []string{
		"diff",
		"--no-color",
		"--no-ext-diff",
		"--diff-algorithm=" + string(algorithm),
		req.From,
		req.To,
		"--",
		req.Path,
	}
}

// Diff runs git diff for one file between two revisions. The deadline of
// ctx bounds the process; any failure is reported in the result.
func (r *DiffRepository) Diff(
	ctx context.Context,
	algorithm entities.Algorithm,
	req repositories.DiffRequest,
) entities.DiffResult {
	start := time.Now()

	cmd := exec.CommandContext(ctx, r.gitBin, Args(algorithm, req)...)
	cmd.Dir = req.RepositoryPath
	cmd.WaitDelay = time.Second

	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb

	if err := cmd.Run(); err != nil {
		result := entities.Failed(algorithm, failureReason(ctx, err, errb.String()))
		result.Elapsed = time.Since(start)
		return result
	}

	result := entities.Succeeded(algorithm, strings.ToValidUTF8(out.String(), "\uFFFD"))
	result.Elapsed = time.Since(start)
	return result
}

func failureReason(ctx context.Context, err error, stderr string) string {
	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return "timed out"
		}
		return ctxErr.Error()
	}

	msg := strings.TrimSpace(stderr)
	if len(msg) > maxStderrLen {
		msg = msg[:maxStderrLen]
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if msg == "" {
			return fmt.Sprintf("exit status %d", exitErr.ExitCode())
		}
		return fmt.Sprintf("exit status %d: %s", exitErr.ExitCode(), msg)
	}
	return err.Error()
}
