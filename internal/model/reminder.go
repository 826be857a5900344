package model

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidPriority = errors.New("invalid priority")
	ErrInvalidFilter   = errors.New("invalid filter")
)

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Priorities в порядке возрастания срочности. Эти же метки уходят в схему ответа ИИ.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// ParsePriority - единственное место, где внешний текст превращается в Priority.
// Пустая строка дает Medium, старые португальские метки тоже принимаются.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return PriorityMedium, nil
	case "low", "baixa":
		return PriorityLow, nil
	case "medium", "média", "media":
		return PriorityMedium, nil
	case "high", "alta":
		return PriorityHigh, nil
	}
	return "", ErrInvalidPriority
}

func (p Priority) Valid() bool {
	return p.Rank() > 0
}

// Rank: Low=1, Medium=2, High=3, 0 для неизвестной метки.
func (p Priority) Rank() int {
	for i, v := range Priorities {
		if v == p {
			return i + 1
		}
	}
	return 0
}

func (p Priority) String() string {
	return string(p)
}

type Reminder struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	IsCompleted bool     `json:"isCompleted"`
	CreatedAt   int64    `json:"createdAt"` // epoch ms
}

// Draft - изменяемая часть напоминания (то, что приходит из формы).
type Draft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
}

func (d Draft) Normalize() Draft {
	if d.Priority == "" {
		d.Priority = PriorityMedium
	}
	return d
}

func (r Reminder) Draft() Draft {
	return Draft{Title: r.Title, Description: r.Description, Priority: r.Priority}
}

// Apply меняет только title, description и priority.
func (r Reminder) Apply(d Draft) Reminder {
	r.Title = d.Title
	r.Description = d.Description
	r.Priority = d.Priority
	return r
}

// Enhancement - ответ ИИ, в базу не сохраняется.
type Enhancement struct {
	ImprovedTitle       string   `json:"improvedTitle"`
	ImprovedDescription string   `json:"improvedDescription"`
	SuggestedPriority   Priority `json:"suggestedPriority"`
}

type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterActive, FilterCompleted:
		return f, nil
	}
	return "", ErrInvalidFilter
}

// Row - форма строки в таблице reminders (snake_case).
type Row struct {
	ID          string    `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Priority    string    `db:"priority"`
	IsCompleted bool      `db:"is_completed"`
	CreatedAt   time.Time `db:"created_at"`
}

func (r Row) Reminder() Reminder {
	p, err := ParsePriority(r.Priority)
	if err != nil {
		p = PriorityMedium
	}
	return Reminder{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Priority:    p,
		IsCompleted: r.IsCompleted,
		CreatedAt:   r.CreatedAt.UnixMilli(),
	}
}

func RowFromReminder(r Reminder) Row {
	return Row{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Priority:    string(r.Priority),
		IsCompleted: r.IsCompleted,
		CreatedAt:   time.UnixMilli(r.CreatedAt).UTC(),
	}
}
