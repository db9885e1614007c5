// Package session runs the line-based dialogue: it reads one action at a
// time, asks for each field until the answer is valid, and saves the list
// when the user ends the session.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"tasklist/internal/models"
	"tasklist/internal/store"
	"tasklist/internal/tasklist"
)

// Session owns the task list for the lifetime of one interactive run.
type Session struct {
	in      *bufio.Reader
	out     io.Writer
	list    *tasklist.List
	store   store.Store
	palette tasklist.Palette
	logger  *slog.Logger
}

// New creates a Session reading answers from in and writing prompts and
// tables to out. st receives the list when the session ends.
func New(in io.Reader, out io.Writer, list *tasklist.List, st store.Store, palette tasklist.Palette, logger *slog.Logger) *Session {
	return &Session{
		in:      bufio.NewReader(in),
		out:     out,
		list:    list,
		store:   st,
		palette: palette,
		logger:  logger.With("component", "session"),
	}
}

// Run processes actions until "end" or the end of input, then saves the
// list. A failed read also ends the session with a save; the returned error
// is non-nil only if reading input or saving failed.
func (s *Session) Run(ctx context.Context) error {
	for {
		action, err := s.ask("Input an action (add, print, edit, delete, end):")
		if err != nil {
			return s.stop(ctx, err)
		}

		switch strings.ToLower(strings.TrimSpace(action)) {
		case "end":
			return s.end(ctx)
		case "add":
			err = s.add()
		case "print":
			s.print()
		case "edit":
			s.print()
			if s.list.Len() == 0 {
				continue
			}
			err = s.edit()
		case "delete":
			s.print()
			if s.list.Len() == 0 {
				continue
			}
			err = s.delete()
		default:
			s.say("The input action is invalid")
		}

		if err != nil {
			return s.stop(ctx, err)
		}
	}
}

// stop ends the session after input could not be read. The list is saved
// whatever the read error was.
func (s *Session) stop(ctx context.Context, readErr error) error {
	if errors.Is(readErr, io.EOF) {
		s.logger.Info("input closed, ending session")
		return s.end(ctx)
	}
	s.logger.Error("reading input failed, ending session", "error", readErr)
	return errors.Join(readErr, s.end(ctx))
}

func (s *Session) end(ctx context.Context) error {
	s.say("Tasklist exiting!")
	tasks := s.list.Tasks()
	if err := s.store.Save(ctx, tasks); err != nil {
		s.logger.Error("saving tasks failed", "error", err)
		return fmt.Errorf("failed to save tasks: %w", err)
	}
	s.logger.Info("saved tasks", "count", len(tasks))
	return nil
}

func (s *Session) add() error {
	priority, err := s.askPriority()
	if err != nil {
		return err
	}
	date, err := s.askDate()
	if err != nil {
		return err
	}
	tm, err := s.askTime()
	if err != nil {
		return err
	}
	lines, err := s.askBody()
	if errors.Is(err, models.ErrBlankTask) {
		s.say("The task is blank")
		return nil
	}
	if err != nil {
		return err
	}

	if err := s.list.Add(priority, date, tm, lines); err != nil {
		s.logger.Error("add rejected a validated task", "error", err)
		s.say(err.Error())
	}
	return nil
}

func (s *Session) print() {
	for line := range s.list.Render(s.palette) {
		s.say(line)
	}
}

func (s *Session) edit() error {
	index, err := s.askIndex()
	if err != nil {
		return err
	}
	field, err := askUntil(s, "Input a field to edit (priority, date, time, task):", "Invalid field", models.ParseField)
	if err != nil {
		return err
	}

	var e tasklist.Edit
	switch field {
	case models.FieldPriority:
		p, err := s.askPriority()
		if err != nil {
			return err
		}
		e = tasklist.SetPriority(p)
	case models.FieldDate:
		date, err := s.askDate()
		if err != nil {
			return err
		}
		e = tasklist.SetDate(date)
	case models.FieldTime:
		tm, err := s.askTime()
		if err != nil {
			return err
		}
		e = tasklist.SetTime(tm)
	case models.FieldTask:
		lines, err := s.askBody()
		if errors.Is(err, models.ErrBlankTask) {
			s.say("The task is blank")
			return nil
		}
		if err != nil {
			return err
		}
		e = tasklist.SetLines(lines)
	}

	if err := s.list.EditField(index, e); err != nil {
		s.logger.Error("edit rejected a validated value", "field", field, "error", err)
		s.say(err.Error())
		return nil
	}
	s.say("The task is changed")
	return nil
}

func (s *Session) delete() error {
	index, err := s.askIndex()
	if err != nil {
		return err
	}
	if err := s.list.Delete(index); err != nil {
		s.say(err.Error())
		return nil
	}
	s.say("The task is deleted")
	return nil
}
