// Package view строит отображаемый список напоминаний: фильтр и сортировка.
package view

import (
	"sort"

	"github.com/BuzzLyutic/reminders-api/internal/model"
)

type Stats struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
}

// Apply возвращает новый срез: сначала невыполненные, потом выполненные,
// внутри каждой группы от новых к старым. При равном createdAt порядок входа сохраняется.
func Apply(reminders []model.Reminder, f model.Filter) []model.Reminder {
	out := make([]model.Reminder, 0, len(reminders))
	for _, r := range reminders {
		if matches(r, f) {
			out = append(out, r)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsCompleted != out[j].IsCompleted {
			return !out[i].IsCompleted
		}
		return out[i].CreatedAt > out[j].CreatedAt
	})
	return out
}

func matches(r model.Reminder, f model.Filter) bool {
	switch f {
	case model.FilterActive:
		return !r.IsCompleted
	case model.FilterCompleted:
		return r.IsCompleted
	}
	return true
}

func Summarize(reminders []model.Reminder) Stats {
	s := Stats{Total: len(reminders)}
	for _, r := range reminders {
		if r.IsCompleted {
			s.Completed++
		} else {
			s.Active++
		}
	}
	return s
}
