package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chzyer/readline"
	"github.com/dotsetgreg/minagent/pkg/agent"
	"github.com/dotsetgreg/minagent/pkg/config"
	"github.com/dotsetgreg/minagent/pkg/logger"
)

func runAgent(ctx context.Context, overrides config.Overrides, in io.Reader, out io.Writer) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.Apply(overrides)

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	logger.SetLevel(level)

	a, err := agent.NewAgent(cfg)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	reader, closeReader := newLineReader(in, out)
	defer closeReader()
	if rl, ok := reader.(*readlineReader); ok {
		a.SetOutput(rl.rl.Stdout())
	} else {
		a.SetOutput(out)
	}

	return a.Run(ctx, reader)
}

// newLineReader prefers readline on the process's own stdin and falls back
// to plain buffered line reads when readline is unavailable or input is injected.
func newLineReader(in io.Reader, out io.Writer) (agent.LineReader, func()) {
	if in == os.Stdin {
		rl, err := readline.NewEx(&readline.Config{
			Prompt:          agent.InputPrompt,
			HistoryFile:     filepath.Join(os.TempDir(), "."+appName+"_history"),
			HistoryLimit:    100,
			InterruptPrompt: "^C",
			EOFPrompt:       "exit",
		})
		if err == nil {
			return &readlineReader{rl: rl}, func() { _ = rl.Close() }
		}
		logger.WarnCF("cli", "Falling back to simple input mode", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return agent.NewBufferedReader(in, out), func() {}
}

type readlineReader struct {
	rl *readline.Instance
}

func (r *readlineReader) ReadLine() (string, error) {
	line, err := r.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", agent.ErrInterrupted
	}
	return line, err
}
