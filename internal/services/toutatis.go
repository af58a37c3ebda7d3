// Subprocess implementation of [ProfileFetcher]
//
// Shells out to the toutatis OSINT tool: `toutatis -u <username> -s <session>`.
package services

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/atredan/sheetgram/internal/shared"
)

// ToutatisFetcher invokes the lookup tool as a subprocess and captures its stdout.
type ToutatisFetcher struct {
	tool    string
	timeout time.Duration
}

var _ ProfileFetcher = (*ToutatisFetcher)(nil)

// NewToutatisFetcher creates a fetcher for the given tool binary. An empty tool
// name defaults to "toutatis". A zero timeout means the subprocess is trusted to
// finish on its own.
func NewToutatisFetcher(tool string, timeout time.Duration) *ToutatisFetcher {
	if tool == "" {
		tool = "toutatis"
	}
	return &ToutatisFetcher{tool: tool, timeout: timeout}
}

// Name returns the tool binary name.
func (t *ToutatisFetcher) Name() string {
	return t.tool
}

// Fetch runs the lookup tool for username and returns its standard output.
//
// A non-zero exit or a failure to start the process is an error wrapping
// [shared.ErrLookupFailed]; callers treat it as a soft failure for that username.
func (t *ToutatisFetcher) Fetch(ctx context.Context, username, session string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", shared.ErrEmptyUsername
	}

	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, t.tool, "-u", username, "-s", session)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("%w: %s: %s", shared.ErrLookupFailed, username, msg)
	}

	return stdout.String(), nil
}
