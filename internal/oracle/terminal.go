package oracle

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"context"
)

// TerminalPrompter asks questions on a terminal: the message, the
// numbered button labels, then a choice read from input. Questions
// issued concurrently are serialized with a mutex so only one is on
// screen at a time.
type TerminalPrompter struct {
	mu  sync.Mutex
	in  *bufio.Reader
	out io.Writer
}

// NewTerminalPrompter creates a prompter over the given streams
func NewTerminalPrompter(in io.Reader, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Prompt shows the message and buttons and returns the chosen index
func (p *TerminalPrompter) Prompt(ctx context.Context, message string, buttons []string) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.out, "\n%s\n", message)
	for i, label := range buttons {
		fmt.Fprintf(p.out, "  [%d] %s\n", i+1, label)
	}

	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		fmt.Fprintf(p.out, "choice [1-%d]: ", len(buttons))

		line, err := p.in.ReadString('\n')
		if err != nil && line == "" {
			return 0, fmt.Errorf("read choice: %w", err)
		}
		n, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr != nil || n < 1 || n > len(buttons) {
			fmt.Fprintf(p.out, "please enter a number between 1 and %d\n", len(buttons))
			if err != nil {
				return 0, fmt.Errorf("read choice: %w", err)
			}
			continue
		}
		return n - 1, nil
	}
}
