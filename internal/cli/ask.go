package cli

import (
	"context"
	"io"
	"strings"

	"go.uber.org/zap"

	"termagent/config"
	"termagent/internal/chat"
)

// Ask runs a single request through the configured agent and prints the
// result block. It returns exit code 1 when the result has an error status.
func Ask(ctx context.Context, cfg *config.Config, request string, out io.Writer, logger *zap.Logger) (int, error) {
	session, err := NewSession(cfg, strings.NewReader(""), out, logger)
	if err != nil {
		return 1, err
	}

	result, err := session.Chat.Submit(ctx, strings.TrimSpace(request))
	if err != nil {
		return 1, err
	}
	if result.Status() == chat.StatusError {
		return 1, nil
	}
	return 0, nil
}
