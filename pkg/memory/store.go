package memory

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	// DefaultReadLines is the number of trailing lines Read returns when
	// the caller passes n <= 0.
	DefaultReadLines = 20

	UserPrefix  = "User: "
	AgentPrefix = "Agent: "
)

// Store is the conversation log the agent folds back into its prompts.
type Store interface {
	Read(n int) (string, error)
	Append(text string) error
}

// FileStore is an append-only, line-oriented text log. Every Read and
// Append opens and closes the file; no handle is held between calls and no
// locking is done against other writers.
type FileStore struct {
	path string
}

func NewFileStore(path string) (*FileStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, ErrPathRequired
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Path() string {
	return s.path
}

// Read returns the last n lines of the log joined by "\n". A log that does
// not exist yet reads as the empty string.
func (s *FileStore) Read(n int) (string, error) {
	if n <= 0 {
		n = DefaultReadLines
	}

	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("open memory log %s: %w", s.path, err)
	}
	defer f.Close()

	// ring of the last n lines
	tail := make([]string, 0, n)
	start := 0
	push := func(line string) {
		if len(tail) < n {
			tail = append(tail, line)
			return
		}
		tail[start] = line
		start = (start + 1) % n
	}

	reader := bufio.NewReader(f)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			push(strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r"))
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("read memory log %s: %w", s.path, err)
		}
	}

	ordered := make([]string, 0, len(tail))
	ordered = append(ordered, tail[start:]...)
	ordered = append(ordered, tail[:start]...)
	return strings.Join(ordered, "\n"), nil
}

// Append writes text, trimmed of surrounding whitespace, as one line.
func (s *FileStore) Append(text string) error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open memory log %s: %w", s.path, err)
	}
	if _, err := f.WriteString(strings.TrimSpace(text) + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("append memory log %s: %w", s.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close memory log %s: %w", s.path, err)
	}
	return nil
}

// AppendTurn records one completed turn as two lines, user first. The two
// writes are independent; a failure after the first leaves only the user
// line behind.
func AppendTurn(s Store, user, reply string) error {
	if err := s.Append(UserPrefix + user); err != nil {
		return err
	}
	return s.Append(AgentPrefix + reply)
}
