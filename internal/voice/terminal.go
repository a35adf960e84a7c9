package voice

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"
)

// LineRecognizer treats one line of input as one utterance. ReadLine lets a
// terminal UI share the same input.
type LineRecognizer struct {
	mu      sync.Mutex
	scanner *bufio.Scanner
	prompt  io.Writer
}

func NewLineRecognizer(in io.Reader, prompt io.Writer) *LineRecognizer {
	return &LineRecognizer{scanner: bufio.NewScanner(in), prompt: prompt}
}

func (l *LineRecognizer) Recognize(ctx context.Context, locale string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if l.prompt != nil {
		fmt.Fprintf(l.prompt, "[listening %s] ", locale)
	}
	return l.ReadLine()
}

func (l *LineRecognizer) ReadLine() (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.scanner.Scan() {
		if err := l.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return l.scanner.Text(), nil
}

// WriterSynthesizer prints what would be spoken.
type WriterSynthesizer struct {
	W io.Writer
}

func (s WriterSynthesizer) Speak(text, locale string) {
	fmt.Fprintf(s.W, "(%s) %s\n", locale, text)
}
