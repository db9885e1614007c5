package models

import (
	"strings"
	"unicode/utf8"
)

// Wrap turns the raw lines of a task body into LineWidth-wide rows. Lines
// longer than LineWidth are cut into consecutive chunks and every row is
// right-padded with spaces. Blank input lines are skipped; if nothing is
// left, Wrap returns ErrBlankTask.
func Wrap(raw []string) ([]string, error) {
	var out []string
	for _, line := range raw {
		if strings.TrimSpace(line) == "" {
			continue
		}
		runes := []rune(line)
		for len(runes) > LineWidth {
			out = append(out, string(runes[:LineWidth]))
			runes = runes[LineWidth:]
		}
		out = append(out, pad(string(runes)))
	}

	if len(out) == 0 {
		return nil, ErrBlankTask
	}
	return out, nil
}

func pad(s string) string {
	if n := utf8.RuneCountInString(s); n < LineWidth {
		return s + strings.Repeat(" ", LineWidth-n)
	}
	return s
}
