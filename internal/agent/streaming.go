package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"termagent/internal/chat"
	"termagent/internal/status"
)

// Streaming upper-cases the request one word at a time, reporting progress
// after each word.
type Streaming struct {
	base
}

func (a *Streaming) ProcessRequest(ctx context.Context, request string) (*chat.Result, error) {
	if err := a.step(ctx, status.Thinking, "Preparing response stream...", 500*time.Millisecond); err != nil {
		return nil, err
	}

	tokens := strings.Fields(request)
	processed := make([]string, 0, len(tokens))
	if err := a.display.Update(status.Processing, fmt.Sprintf("Processing 0/%d tokens...", len(tokens))); err != nil {
		return nil, err
	}
	for i, tok := range tokens {
		if err := a.pause(ctx, 200*time.Millisecond); err != nil {
			return nil, err
		}
		processed = append(processed, strings.ToUpper(tok))
		if err := a.display.Update(status.Processing, fmt.Sprintf("Processing %d/%d tokens...", i+1, len(tokens))); err != nil {
			return nil, err
		}
	}

	if err := a.display.Complete("Stream complete"); err != nil {
		return nil, err
	}
	return chat.NewResult(
		chat.KeyStatus, chat.StatusSuccess,
		"type", "streaming",
		"original", request,
		"processed", strings.Join(processed, " "),
		"tokens_processed", len(tokens),
	), nil
}
