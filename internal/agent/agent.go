// Package agent provides the built-in request handlers. Each one simulates
// a different kind of work and reports its progress through the status
// display it was built with.
package agent

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"termagent/internal/chat"
	"termagent/internal/status"
)

const (
	NameBasic     = "basic"
	NameTask      = "task"
	NameStreaming = "streaming"

	DefaultName = NameTask
)

var ErrUnknownAgent = errors.New("unknown agent")

// Settings are shared by every built-in agent.
type Settings struct {
	Display *status.Display

	// Pace scales the simulated work delays. Zero disables them.
	Pace float64

	// Rand feeds the mock figures in results; nil uses a random seed.
	Rand *rand.Rand
}

// Definition describes a built-in agent.
type Definition struct {
	Name        string
	Description string
	build       func(base) chat.Handler
}

var definitions = map[string]Definition{
	NameBasic: {
		Name:        NameBasic,
		Description: "Walks through a fixed sequence of status updates",
		build:       func(b base) chat.Handler { return &Basic{base: b} },
	},
	NameTask: {
		Name:        NameTask,
		Description: "Routes calculation, search and analysis requests",
		build:       func(b base) chat.Handler { return &Task{base: b} },
	},
	NameStreaming: {
		Name:        NameStreaming,
		Description: "Processes the request word by word",
		build:       func(b base) chat.Handler { return &Streaming{base: b} },
	},
}

// Lookup returns the definition registered under name.
func Lookup(name string) (Definition, bool) {
	def, ok := definitions[strings.ToLower(strings.TrimSpace(name))]
	return def, ok
}

// All returns every definition, sorted by name.
func All() []Definition {
	out := make([]Definition, 0, len(definitions))
	for _, def := range definitions {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns the registered agent names, sorted.
func Names() []string {
	defs := All()
	names := make([]string, len(defs))
	for i, def := range defs {
		names[i] = def.Name
	}
	return names
}

// New builds the agent registered under name.
func New(name string, s Settings) (chat.Handler, error) {
	def, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownAgent, name, strings.Join(Names(), ", "))
	}
	return def.build(newBase(s)), nil
}

type base struct {
	display *status.Display
	pace    float64
	rng     *rand.Rand
}

func newBase(s Settings) base {
	b := base{display: s.Display, pace: s.Pace, rng: s.Rand}
	if b.display == nil {
		b.display = status.New(io.Discard, status.Options{})
	}
	if b.rng == nil {
		b.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if b.pace < 0 {
		b.pace = 0
	}
	return b
}

// pause simulates d of work, scaled by pace, and gives up when ctx ends.
func (b base) pause(ctx context.Context, d time.Duration) error {
	if b.pace == 0 {
		return ctx.Err()
	}
	t := time.NewTimer(time.Duration(float64(d) * b.pace))
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// step shows a status line and then pauses.
func (b base) step(ctx context.Context, kind status.Kind, message string, d time.Duration) error {
	if err := b.display.Update(kind, message); err != nil {
		return err
	}
	return b.pause(ctx, d)
}

// spin runs a spinner for d of simulated work.
func (b base) spin(ctx context.Context, message string, d time.Duration) error {
	if err := b.display.StartSpinner(message); err != nil {
		return err
	}
	waitErr := b.pause(ctx, d)
	if err := b.display.StopSpinner(); err != nil {
		return err
	}
	return waitErr
}

func (b base) between(lo, hi int) int {
	return lo + b.rng.IntN(hi-lo+1)
}
