package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"termagent/internal/calc"
	"termagent/internal/chat"
	"termagent/internal/status"
)

var (
	calculationWords = []string{"calculate", "compute", "math"}
	searchWords      = []string{"search", "find", "look"}
	analysisWords    = []string{"analyze", "review", "check"}
)

var analysisSteps = []string{
	"Loading data...",
	"Preprocessing input...",
	"Running analysis algorithms...",
	"Validating results...",
	"Generating insights...",
}

// Task picks a handling strategy from keywords in the request.
type Task struct {
	base
}

func (a *Task) ProcessRequest(ctx context.Context, request string) (*chat.Result, error) {
	if err := a.step(ctx, status.Thinking, "Analyzing request type...", 500*time.Millisecond); err != nil {
		return nil, err
	}

	lower := strings.ToLower(request)
	switch {
	case containsAny(lower, calculationWords):
		return a.calculate(ctx, request)
	case containsAny(lower, searchWords):
		return a.search(ctx, request)
	case containsAny(lower, analysisWords):
		return a.analyze(ctx, request)
	default:
		return a.general(ctx, request)
	}
}

func (a *Task) calculate(ctx context.Context, request string) (*chat.Result, error) {
	if err := a.step(ctx, status.Processing, "Parsing mathematical expression...", 500*time.Millisecond); err != nil {
		return nil, err
	}
	expr := expression(request)

	if err := a.step(ctx, status.Processing, "Computing result...", 500*time.Millisecond); err != nil {
		return nil, err
	}
	value, err := calc.Eval(expr)
	if err != nil {
		return nil, err
	}

	if err := a.display.Complete("Calculation complete"); err != nil {
		return nil, err
	}
	return chat.NewResult(
		chat.KeyStatus, chat.StatusSuccess,
		"type", "calculation",
		"request", request,
		"expression", expr,
		"result", value,
	), nil
}

func (a *Task) search(ctx context.Context, request string) (*chat.Result, error) {
	if err := a.spin(ctx, "Searching database", 1500*time.Millisecond); err != nil {
		return nil, err
	}
	if err := a.step(ctx, status.Processing, "Ranking results...", 500*time.Millisecond); err != nil {
		return nil, err
	}
	if err := a.step(ctx, status.Info, "Formatting output...", 300*time.Millisecond); err != nil {
		return nil, err
	}
	if err := a.display.Complete("Search complete"); err != nil {
		return nil, err
	}

	return chat.NewResult(
		chat.KeyStatus, chat.StatusSuccess,
		"type", "search",
		"request", request,
		"results_found", a.between(5, 50),
		"top_result", "Example result item",
		"relevance_score", fmt.Sprintf("%d%%", a.between(60, 99)),
	), nil
}

func (a *Task) analyze(ctx context.Context, request string) (*chat.Result, error) {
	for _, s := range analysisSteps {
		if err := a.step(ctx, status.Processing, s, 600*time.Millisecond); err != nil {
			return nil, err
		}
	}
	if err := a.display.Complete("Analysis complete"); err != nil {
		return nil, err
	}

	return chat.NewResult(
		chat.KeyStatus, chat.StatusSuccess,
		"type", "analysis",
		"request", request,
		"insights_generated", a.between(3, 8),
		"confidence_level", "High",
		"recommendation", "Consider reviewing the detailed report",
	), nil
}

func (a *Task) general(ctx context.Context, request string) (*chat.Result, error) {
	if err := a.step(ctx, status.Thinking, "Understanding request...", 800*time.Millisecond); err != nil {
		return nil, err
	}
	if err := a.spin(ctx, "Processing request", 1200*time.Millisecond); err != nil {
		return nil, err
	}
	if err := a.display.Complete("Request processed"); err != nil {
		return nil, err
	}

	return chat.NewResult(
		chat.KeyStatus, chat.StatusSuccess,
		"type", "general",
		"request", request,
		"response", "Your request has been processed successfully",
		"next_steps", "You can continue with another request",
	), nil
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// expression returns the text following the first calculation keyword,
// without surrounding punctuation: "calculate 2+2?" yields "2+2".
func expression(request string) string {
	lower := strings.ToLower(request)
	start, end := -1, -1
	for _, w := range calculationWords {
		if i := strings.Index(lower, w); i >= 0 && (start < 0 || i < start) {
			start, end = i, i+len(w)
		}
	}
	if start < 0 {
		return strings.TrimSpace(request)
	}
	return strings.Trim(lower[end:], " \t:=?")
}
