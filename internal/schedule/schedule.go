// Package schedule holds the beat schedule: named periodic jobs and the
// triggers that decide when each one is enqueued.
package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel-booking/pkg/common"

	"github.com/robfig/cron/v3"
)

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

var (
	ErrDuplicateEntry = errors.New("duplicate schedule entry")
	ErrEmptyName      = errors.New("schedule entry name is required")
	ErrEmptyTask      = errors.New("schedule entry task is required")
	ErrNoTrigger      = errors.New("schedule entry has no trigger")
)

// Trigger resolves the next fire time strictly after the given instant.
type Trigger interface {
	Next(after time.Time) time.Time
	Validate() error
	String() string
}

// Crontab fires when the wall-clock minute and hour match. Day, month and
// weekday are unconstrained.
type Crontab struct {
	Minute string
	Hour   string

	schedule cron.Schedule
}

func NewCrontab(minute, hour string) (*Crontab, error) {
	c := &Crontab{Minute: minute, Hour: hour}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Crontab) Expression() string {
	return fmt.Sprintf("%s %s * * *", c.Minute, c.Hour)
}

func (c *Crontab) Validate() error {
	if strings.TrimSpace(c.Minute) == "" || strings.TrimSpace(c.Hour) == "" {
		return fmt.Errorf("crontab minute and hour are required")
	}
	s, err := cronParser.Parse(c.Expression())
	if err != nil {
		return fmt.Errorf("invalid crontab %q: %w", c.Expression(), err)
	}
	c.schedule = s
	return nil
}

// Next evaluates the crontab in the location of after.
func (c *Crontab) Next(after time.Time) time.Time {
	if c.schedule == nil {
		if err := c.Validate(); err != nil {
			return time.Time{}
		}
	}
	return c.schedule.Next(after)
}

func (c *Crontab) String() string {
	return fmt.Sprintf("crontab(minute=%s, hour=%s)", c.Minute, c.Hour)
}

// Interval fires every Every, counted from the moment the beat starts.
type Interval struct {
	Every time.Duration
}

func Every(seconds int) *Interval {
	return &Interval{Every: time.Duration(seconds) * time.Second}
}

func (i *Interval) Validate() error {
	if i.Every <= 0 {
		return fmt.Errorf("interval must be positive, got %s", i.Every)
	}
	return nil
}

func (i *Interval) Next(after time.Time) time.Time {
	return after.Add(i.Every)
}

func (i *Interval) String() string {
	return fmt.Sprintf("every %s", i.Every)
}

// Entry is one row of the beat schedule.
type Entry struct {
	Name    string
	Task    string
	Trigger Trigger
}

func (e Entry) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(e.Task) == "" {
		return fmt.Errorf("%s: %w", e.Name, ErrEmptyTask)
	}
	if e.Trigger == nil {
		return fmt.Errorf("%s: %w", e.Name, ErrNoTrigger)
	}
	if err := e.Trigger.Validate(); err != nil {
		return fmt.Errorf("%s: %w", e.Name, err)
	}
	return nil
}

// Table is an immutable, validated set of entries keyed by name.
type Table struct {
	entries []Entry
	byName  map[string]int
}

func NewTable(entries ...Entry) (*Table, error) {
	t := &Table{byName: make(map[string]int, len(entries))}
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, err
		}
		if _, exists := t.byName[e.Name]; exists {
			return nil, fmt.Errorf("%s: %w", e.Name, ErrDuplicateEntry)
		}
		t.byName[e.Name] = len(t.entries)
		t.entries = append(t.entries, e)
	}
	return t, nil
}

// Entries returns the entries in declaration order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

func (t *Table) Get(name string) (Entry, bool) {
	i, ok := t.byName[name]
	if !ok {
		return Entry{}, false
	}
	return t.entries[i], true
}

func (t *Table) Len() int {
	return len(t.entries)
}

// Default is the beat schedule of the booking service.
func Default() *Table {
	reminder1Day, err := NewCrontab("0", "9")
	if err != nil {
		panic(err)
	}
	reminder3Days, err := NewCrontab("0", "13")
	if err != nil {
		panic(err)
	}

	t, err := NewTable(
		Entry{
			Name:    common.TASK_BOOKING_REMINDER_1DAY,
			Task:    common.TASK_BOOKING_REMINDER_1DAY,
			Trigger: reminder1Day, // every morning at 09:00
		},
		Entry{
			Name:    common.TASK_BOOKING_REMINDER_3DAYS,
			Task:    common.TASK_BOOKING_REMINDER_3DAYS,
			Trigger: reminder3Days,
		},
		Entry{
			Name:    "luboe-nazvanie",
			Task:    common.TASK_PERIODIC,
			Trigger: Every(5),
		},
	)
	if err != nil {
		panic(err)
	}
	return t
}
