package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/progress-keeper/progress-keeper/internal/service"
)

// promptPicker satisfies [service.FilePicker] by asking on the terminal where
// the backup file should live. An empty answer is treated as a dismissed
// prompt, which the services surface as cancellation rather than failure.
type promptPicker struct {
	in  *bufio.Reader
	out io.Writer
}

func newPromptPicker(in io.Reader, out io.Writer) service.FilePicker {
	return &promptPicker{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (p *promptPicker) PickFile(ctx context.Context, suggestedName string) (string, error) {
	fmt.Fprintf(p.out, "Backup file path (suggested: %s, empty cancels): ", suggestedName)

	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", service.ErrCancelled
	}

	path := strings.TrimSpace(line)
	if path == "" {
		return "", service.ErrCancelled
	}

	return path, nil
}
