// MinAgent - minimal conversational agent
// License: MIT
//
// Copyright (c) 2026 MinAgent contributors

package agent

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dotsetgreg/minagent/pkg/config"
	"github.com/dotsetgreg/minagent/pkg/logger"
	"github.com/dotsetgreg/minagent/pkg/memory"
	"github.com/google/uuid"
)

type Agent struct {
	memory      memory.Store
	completer   Completer
	memoryLines int
	out         io.Writer
}

// NewAgent wires the file-backed memory log and the completion client from
// cfg. A missing credential fails here, before any interaction.
func NewAgent(cfg *config.Config) (*Agent, error) {
	client, err := NewCompletionClient(cfg)
	if err != nil {
		return nil, err
	}
	store, err := memory.NewFileStore(cfg.MemoryPath())
	if err != nil {
		return nil, err
	}

	logger.DebugCF("agent", "Agent initialized", map[string]interface{}{
		"model":       client.Model(),
		"memory_file": store.Path(),
	})
	return NewAgentWith(store, client, cfg.Memory.Lines), nil
}

// NewAgentWith builds an agent from explicit collaborators. memoryLines <= 0
// falls back to the store's default.
func NewAgentWith(store memory.Store, completer Completer, memoryLines int) *Agent {
	return &Agent{
		memory:      store,
		completer:   completer,
		memoryLines: memoryLines,
		out:         os.Stdout,
	}
}

// SetOutput redirects the banner, replies and notices printed by Run.
func (a *Agent) SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	a.out = w
}

// processTurn runs one round-trip: read recent memory, build the prompt,
// complete it, hand the reply to show, then record the user and agent
// lines. Memory is written only after the completion succeeds.
func (a *Agent) processTurn(ctx context.Context, input string, show func(reply string)) error {
	turnID := "turn-" + uuid.NewString()

	recent, err := a.memory.Read(a.memoryLines)
	if err != nil {
		return fmt.Errorf("read memory: %w", err)
	}

	prompt := BuildPrompt(input, recent)
	logger.DebugCF("agent", "Sending completion request", map[string]interface{}{
		"turn_id":       turnID,
		"prompt_chars":  len(prompt),
		"memory_loaded": recent != "",
	})

	reply, err := a.completer.Complete(ctx, prompt)
	if err != nil {
		// not logged on interrupt
		if ctx.Err() == nil {
			logger.DebugCF("agent", "Completion failed", map[string]interface{}{
				"turn_id": turnID,
				"error":   err.Error(),
			})
		}
		return fmt.Errorf("completion: %w", err)
	}

	show(reply)

	if err := memory.AppendTurn(a.memory, input, reply); err != nil {
		return fmt.Errorf("write memory: %w", err)
	}
	logger.InfoCF("agent", "Turn completed", map[string]interface{}{
		"turn_id":     turnID,
		"reply_chars": len(reply),
	})
	return nil
}
