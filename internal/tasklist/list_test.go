package tasklist

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"tasklist/internal/clock"
	"tasklist/internal/models"
)

var today = time.Date(2023, 1, 5, 10, 0, 0, 0, time.UTC)

func setupList(t *testing.T, n int) *List {
	t.Helper()
	l := New(clock.Fixed(today), nil)
	for i := 0; i < n; i++ {
		body := mustWrap(t, "task "+string(rune('A'+i)))
		if err := l.Add(models.PriorityNormal, "2023-01-06", "12:00", body); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}
	return l
}

func mustWrap(t *testing.T, lines ...string) []string {
	t.Helper()
	wrapped, err := models.Wrap(lines)
	if err != nil {
		t.Fatalf("Wrap failed: %v", err)
	}
	return wrapped
}

func TestAdd_Example(t *testing.T) {
	l := New(clock.Fixed(today), nil)

	priority, err := models.ParsePriority("h")
	if err != nil {
		t.Fatalf("ParsePriority failed: %v", err)
	}
	date, err := models.ParseDate("2023-1-5")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	tm, err := models.ParseTime("9:3")
	if err != nil {
		t.Fatalf("ParseTime failed: %v", err)
	}

	if err := l.Add(priority, date, tm, mustWrap(t, "Buy milk")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	got, err := l.Get(1)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	want := models.Task{
		Date:     "2023-01-05",
		Time:     "09:03",
		Priority: models.PriorityHigh,
		Due:      models.DueToday,
		Lines:    []string{"Buy milk" + strings.Repeat(" ", 36)},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestAdd_DerivesDueTag(t *testing.T) {
	tests := []struct {
		date string
		want models.DueTag
	}{
		{date: "2023-01-04", want: models.DueOverdue},
		{date: "2023-01-05", want: models.DueToday},
		{date: "2023-01-06", want: models.DueInTime},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			l := New(clock.Fixed(today), nil)
			if err := l.Add(models.PriorityLow, tt.date, "08:00", mustWrap(t, "x")); err != nil {
				t.Fatalf("Add failed: %v", err)
			}
			got, _ := l.Get(1)
			if got.Due != tt.want {
				t.Errorf("expected due tag %q, got %q", tt.want, got.Due)
			}
		})
	}
}

func TestAdd_RejectsInvalidRecord(t *testing.T) {
	l := New(clock.Fixed(today), nil)

	tests := []struct {
		name     string
		priority models.Priority
		date     string
		time     string
		lines    []string
		wantErr  error
	}{
		{name: "blank body", priority: models.PriorityHigh, date: "2023-01-05", time: "10:00", wantErr: models.ErrBlankTask},
		{name: "raw date", priority: models.PriorityHigh, date: "2023-1-5", time: "10:00", lines: mustWrap(t, "x"), wantErr: models.ErrInvalidDate},
		{name: "raw time", priority: models.PriorityHigh, date: "2023-01-05", time: "1:00", lines: mustWrap(t, "x"), wantErr: models.ErrInvalidTime},
		{name: "bad priority", priority: "Q", date: "2023-01-05", time: "10:00", lines: mustWrap(t, "x"), wantErr: models.ErrInvalidPriority},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := l.Add(tt.priority, tt.date, tt.time, tt.lines)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if l.Len() != 0 {
				t.Fatalf("expected no task to be stored, got %d", l.Len())
			}
		})
	}
}

func TestGet_Bounds(t *testing.T) {
	l := setupList(t, 3)

	for _, index := range []int{-1, 0, 4} {
		if _, err := l.Get(index); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Get(%d): expected ErrIndexOutOfRange, got %v", index, err)
		}
	}
	for _, index := range []int{1, 2, 3} {
		if _, err := l.Get(index); err != nil {
			t.Errorf("Get(%d): unexpected error %v", index, err)
		}
	}
}

func TestGet_ReturnsCopy(t *testing.T) {
	l := setupList(t, 1)

	task, _ := l.Get(1)
	task.Lines[0] = "mutated"
	task.Priority = models.PriorityCritical

	again, _ := l.Get(1)
	if again.Lines[0] == "mutated" || again.Priority == models.PriorityCritical {
		t.Error("mutating the returned task changed the stored task")
	}
}

func TestDelete_ShiftsLaterTasks(t *testing.T) {
	l := setupList(t, 4)
	before := l.Tasks()

	if err := l.Delete(2); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	after := l.Tasks()
	if len(after) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(after))
	}
	want := []models.Task{before[0], before[2], before[3]}
	if !reflect.DeepEqual(after, want) {
		t.Errorf("unexpected order after delete:\n got %+v\nwant %+v", after, want)
	}
}

func TestDelete_LastAndFirst(t *testing.T) {
	l := setupList(t, 2)
	second, _ := l.Get(2)

	if err := l.Delete(1); err != nil {
		t.Fatalf("Delete(1) failed: %v", err)
	}
	first, _ := l.Get(1)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected former second task at position 1")
	}

	if err := l.Delete(1); err != nil {
		t.Fatalf("Delete(1) failed: %v", err)
	}
	if l.Len() != 0 {
		t.Fatalf("expected empty list, got %d", l.Len())
	}
}

func TestDelete_Errors(t *testing.T) {
	empty := New(clock.Fixed(today), nil)
	if err := empty.Delete(1); !errors.Is(err, ErrEmptyCollection) {
		t.Errorf("expected ErrEmptyCollection, got %v", err)
	}

	l := setupList(t, 2)
	if err := l.Delete(3); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
	if l.Len() != 2 {
		t.Errorf("failed delete changed the list length to %d", l.Len())
	}
}

func TestEditField_DateChangesOnlyDateAndDue(t *testing.T) {
	l := setupList(t, 3)
	before := l.Tasks()

	if err := l.EditField(2, SetDate("2022-12-31")); err != nil {
		t.Fatalf("EditField failed: %v", err)
	}

	after := l.Tasks()
	want := before[1].Clone()
	want.Date = "2022-12-31"
	want.Due = models.DueOverdue

	if !reflect.DeepEqual(after[1], want) {
		t.Errorf("expected %+v, got %+v", want, after[1])
	}
	if before[1].Due == after[1].Due {
		t.Errorf("due tag was not recomputed")
	}
	if !reflect.DeepEqual(after[0], before[0]) || !reflect.DeepEqual(after[2], before[2]) {
		t.Errorf("other tasks changed")
	}
}

func TestEditField_OtherFields(t *testing.T) {
	tests := []struct {
		name  string
		edit  Edit
		check func(t *testing.T, before, after models.Task)
	}{
		{
			name: "priority",
			edit: SetPriority(models.PriorityCritical),
			check: func(t *testing.T, before, after models.Task) {
				before.Priority = models.PriorityCritical
				if !reflect.DeepEqual(before, after) {
					t.Errorf("expected %+v, got %+v", before, after)
				}
			},
		},
		{
			name: "time",
			edit: SetTime("23:59"),
			check: func(t *testing.T, before, after models.Task) {
				before.Time = "23:59"
				if !reflect.DeepEqual(before, after) {
					t.Errorf("expected %+v, got %+v", before, after)
				}
			},
		},
		{
			name: "task",
			edit: SetLines([]string{strings.Repeat("z", 44), strings.Repeat("y", 44)}),
			check: func(t *testing.T, before, after models.Task) {
				before.Lines = []string{strings.Repeat("z", 44), strings.Repeat("y", 44)}
				if !reflect.DeepEqual(before, after) {
					t.Errorf("expected %+v, got %+v", before, after)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := setupList(t, 1)
			before, _ := l.Get(1)
			if err := l.EditField(1, tt.edit); err != nil {
				t.Fatalf("EditField failed: %v", err)
			}
			after, _ := l.Get(1)
			tt.check(t, before, after)
		})
	}
}

func TestEditField_Errors(t *testing.T) {
	l := setupList(t, 1)
	before := l.Tasks()

	tests := []struct {
		name    string
		index   int
		edit    Edit
		wantErr error
	}{
		{name: "zero edit", index: 1, edit: Edit{}, wantErr: ErrUnknownField},
		{name: "out of range", index: 2, edit: SetTime("10:00"), wantErr: ErrIndexOutOfRange},
		{name: "blank body", index: 1, edit: SetLines(nil), wantErr: models.ErrBlankTask},
		{name: "raw time", index: 1, edit: SetTime("7:5"), wantErr: models.ErrInvalidTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := l.EditField(tt.index, tt.edit); !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if !reflect.DeepEqual(l.Tasks(), before) {
				t.Fatalf("failed edit changed the list")
			}
		})
	}

	empty := New(clock.Fixed(today), nil)
	if err := empty.EditField(1, SetTime("10:00")); !errors.Is(err, ErrEmptyCollection) {
		t.Errorf("expected ErrEmptyCollection, got %v", err)
	}
}

type steppingClock struct{ now time.Time }

func (c *steppingClock) Now() time.Time { return c.now }

func TestDueTag_OnlyRecomputedOnDateEdit(t *testing.T) {
	c := &steppingClock{now: today}
	l := New(c, nil)
	if err := l.Add(models.PriorityHigh, "2023-01-05", "10:00", mustWrap(t, "x")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	c.now = today.AddDate(0, 0, 2)
	if err := l.EditField(1, SetTime("11:00")); err != nil {
		t.Fatalf("EditField failed: %v", err)
	}
	task, _ := l.Get(1)
	if task.Due != models.DueToday {
		t.Errorf("time edit recomputed the due tag: got %q", task.Due)
	}

	if err := l.EditField(1, SetDate("2023-01-05")); err != nil {
		t.Fatalf("EditField failed: %v", err)
	}
	task, _ = l.Get(1)
	if task.Due != models.DueOverdue {
		t.Errorf("expected %q after date edit, got %q", models.DueOverdue, task.Due)
	}
}

func TestNew_KeepsStoredDueTags(t *testing.T) {
	stored := models.Task{
		Date:     "2020-01-01",
		Time:     "00:00",
		Priority: models.PriorityLow,
		Due:      models.DueInTime,
		Lines:    mustWrap(t, "old"),
	}
	l := New(clock.Fixed(today), []models.Task{stored})

	got, _ := l.Get(1)
	if got.Due != models.DueInTime {
		t.Errorf("expected stored tag %q to be kept, got %q", models.DueInTime, got.Due)
	}
}

func TestParseIndex(t *testing.T) {
	l := setupList(t, 10)

	tests := []struct {
		input   string
		want    int
		wantErr error
	}{
		{input: "1", want: 1},
		{input: "10", want: 10},
		{input: "007", want: 7},
		{input: "0", wantErr: ErrIndexOutOfRange},
		{input: "11", wantErr: ErrIndexOutOfRange},
		{input: "99999999999999999999999", wantErr: ErrIndexOutOfRange},
		{input: "-1", wantErr: ErrInvalidIndex},
		{input: "one", wantErr: ErrInvalidIndex},
		{input: " 1", wantErr: ErrInvalidIndex},
		{input: "", wantErr: ErrInvalidIndex},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := l.ParseIndex(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}
