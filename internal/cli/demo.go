package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"termagent/config"
	"termagent/internal/agent"
)

var taskDemoRequests = []string{
	"Calculate (17 + 25) * 2",
	"Search for Go tutorials",
	"Analyze this dataset for patterns",
	"Help me with my project",
}

const streamingDemoRequest = "Process this text word by word"

// Demo runs a scripted tour of the task and streaming agents.
func Demo(ctx context.Context, cfg *config.Config, out io.Writer, logger *zap.Logger) error {
	rule := strings.Repeat("=", 60)
	fmt.Fprintf(out, "\n%s\n  AGENT DEMONSTRATION\n%s\n", rule, rule)

	fmt.Fprintf(out, "\n1. Task Agent Demo:\n%s\n", strings.Repeat("-", 40))
	if err := demoAgent(ctx, cfg, agent.NameTask, taskDemoRequests, out, logger); err != nil {
		return err
	}

	fmt.Fprintf(out, "\n2. Streaming Agent Demo:\n%s\n", strings.Repeat("-", 40))
	return demoAgent(ctx, cfg, agent.NameStreaming, []string{streamingDemoRequest}, out, logger)
}

func demoAgent(ctx context.Context, cfg *config.Config, name string, requests []string, out io.Writer, logger *zap.Logger) error {
	c := *cfg
	c.Agent = name

	session, err := NewSession(&c, strings.NewReader(""), out, logger)
	if err != nil {
		return err
	}

	for i, req := range requests {
		if i > 0 {
			if err := sleep(ctx, time.Duration(float64(time.Second)*cfg.Pace)); err != nil {
				return err
			}
		}
		fmt.Fprintf(out, "\nRequest: '%s'\n", req)
		if _, err := session.Chat.Submit(ctx, req); err != nil {
			return err
		}
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
