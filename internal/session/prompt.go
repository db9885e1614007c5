package session

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"tasklist/internal/models"
)

func (s *Session) say(line string) {
	fmt.Fprintln(s.out, line)
}

// readLine returns the next input line without its line terminator, or
// io.EOF once input is exhausted. Lines have no length limit.
func (s *Session) readLine() (string, error) {
	line, err := s.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		if line == "" {
			return "", io.EOF
		}
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

func (s *Session) ask(prompt string) (string, error) {
	s.say(prompt)
	return s.readLine()
}

// askUntil repeats prompt until parse accepts the answer. There is no
// retry limit.
func askUntil[T any](s *Session, prompt, invalid string, parse func(string) (T, error)) (T, error) {
	for {
		answer, err := s.ask(prompt)
		if err != nil {
			var zero T
			return zero, err
		}
		value, err := parse(answer)
		if err == nil {
			return value, nil
		}
		s.logger.Debug("rejected input", "prompt", prompt, "input", answer, "error", err)
		s.say(invalid)
	}
}

func (s *Session) askPriority() (models.Priority, error) {
	return askUntil(s, "Input the task priority (C, H, N, L):", "The input priority is invalid", models.ParsePriority)
}

func (s *Session) askDate() (string, error) {
	return askUntil(s, "Input the date (yyyy-mm-dd):", "The input date is invalid", models.ParseDate)
}

func (s *Session) askTime() (string, error) {
	return askUntil(s, "Input the time (hh:mm):", "The input time is invalid", models.ParseTime)
}

func (s *Session) askIndex() (int, error) {
	prompt := fmt.Sprintf("Input the task number (1-%d):", s.list.Len())
	return askUntil(s, prompt, "Invalid task number", s.list.ParseIndex)
}

// askBody collects trimmed lines up to the first blank one and wraps them.
// It returns models.ErrBlankTask when the first line is already blank.
func (s *Session) askBody() ([]string, error) {
	s.say("Input a new task (enter a blank line to end):")
	var raw []string
	for {
		line, err := s.readLine()
		if err != nil {
			return nil, err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		raw = append(raw, line)
	}
	return models.Wrap(raw)
}
