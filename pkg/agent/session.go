package agent

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	Banner            = "AI Agent started. Type 'exit' or 'quit' to stop."
	InputPrompt       = "You: "
	ReplyLabel        = "Agent:"
	farewellMessage   = "Goodbye."
	interruptedNotice = "\nInterrupted. Exiting."
)

// ErrInterrupted is reported by a LineReader when the user interrupts a
// blocking read (Ctrl-C).
var ErrInterrupted = errors.New("interrupted")

// LineReader yields one line of user input per call, without the trailing
// newline. io.EOF ends the session.
type LineReader interface {
	ReadLine() (string, error)
}

// IsExitCommand reports whether input asks the session to stop.
func IsExitCommand(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "exit", "quit":
		return true
	default:
		return false
	}
}

// Run is the read-eval-print loop. It returns nil when the user exits,
// interrupts, or closes input; any completion or memory failure ends the
// session and is returned. Cancelling ctx is treated as an interrupt.
func (a *Agent) Run(ctx context.Context, in LineReader) error {
	fmt.Fprintln(a.out, Banner)

	for {
		line, err := readLine(ctx, in)
		if err != nil {
			switch {
			case errors.Is(err, ErrInterrupted):
				fmt.Fprintln(a.out, interruptedNotice)
				return nil
			case errors.Is(err, io.EOF):
				fmt.Fprintln(a.out, farewellMessage)
				return nil
			default:
				return fmt.Errorf("read input: %w", err)
			}
		}

		if IsExitCommand(line) {
			fmt.Fprintln(a.out, farewellMessage)
			return nil
		}

		err = a.processTurn(ctx, line, func(reply string) {
			fmt.Fprintln(a.out, ReplyLabel, reply)
		})
		if err != nil {
			if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
				fmt.Fprintln(a.out, interruptedNotice)
				return nil
			}
			return err
		}
	}
}

// readLine waits for the next line or for ctx to be cancelled, whichever
// comes first. A read abandoned on cancellation is left to finish on its
// own; the session is over by then.
func readLine(ctx context.Context, in LineReader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", ErrInterrupted
	}

	type result struct {
		line string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		line, err := in.ReadLine()
		done <- result{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ErrInterrupted
	case res := <-done:
		return res.line, res.err
	}
}

// BufferedReader reads lines of any length from an io.Reader, printing the
// input prompt before each read. It backs non-terminal input and tests.
type BufferedReader struct {
	reader *bufio.Reader
	prompt string
	out    io.Writer
}

func NewBufferedReader(r io.Reader, out io.Writer) *BufferedReader {
	return &BufferedReader{reader: bufio.NewReader(r), prompt: InputPrompt, out: out}
}

func (b *BufferedReader) ReadLine() (string, error) {
	if b.out != nil {
		fmt.Fprint(b.out, b.prompt)
	}
	line, err := b.reader.ReadString('\n')
	if err != nil {
		// a final line without a newline is still input
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSuffix(line, "\r"), nil
		}
		return "", err
	}
	return strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r"), nil
}
