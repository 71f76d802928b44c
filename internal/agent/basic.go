package agent

import (
	"context"
	"fmt"
	"time"

	"termagent/internal/chat"
	"termagent/internal/status"
	"termagent/internal/timeutil"
)

// Basic walks every request through the same four stages.
type Basic struct {
	base
}

func (a *Basic) ProcessRequest(ctx context.Context, request string) (*chat.Result, error) {
	start := time.Now()

	if err := a.step(ctx, status.Thinking, "Analyzing request...", time.Second); err != nil {
		return nil, err
	}
	if err := a.step(ctx, status.Processing, "Breaking down the task...", 500*time.Millisecond); err != nil {
		return nil, err
	}
	if err := a.spin(ctx, "Processing components", 2*time.Second); err != nil {
		return nil, err
	}
	if err := a.step(ctx, status.Info, "Generating response...", 500*time.Millisecond); err != nil {
		return nil, err
	}
	if err := a.display.Complete("Task completed successfully"); err != nil {
		return nil, err
	}

	return chat.NewResult(
		chat.KeyStatus, chat.StatusSuccess,
		"response", fmt.Sprintf("Processed request: '%s'", request),
		"steps_completed", 4,
		"processing_time", timeutil.FormatDuration(time.Since(start)),
	), nil
}
