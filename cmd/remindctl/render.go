package main

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/BuzzLyutic/reminders-api/internal/model"
)

var (
	doneStyle  = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("8"))
	idStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	descStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("7")).PaddingLeft(4)
	emptyStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("8"))

	priorityStyles = map[model.Priority]lipgloss.Style{
		model.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		model.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		model.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
)

func renderList(w io.Writer, reminders []model.Reminder) {
	if len(reminders) == 0 {
		fmt.Fprintln(w, emptyStyle.Render("No reminders"))
		return
	}

	for _, r := range reminders {
		fmt.Fprintln(w, renderReminder(r))
		if r.Description != "" {
			fmt.Fprintln(w, descStyle.Render(r.Description))
		}
	}
}

func renderReminder(r model.Reminder) string {
	box := "[ ]"
	title := r.Title
	if r.IsCompleted {
		box = "[x]"
		title = doneStyle.Render(title)
	}

	prio := priorityStyles[r.Priority].Render(fmt.Sprintf("%-6s", r.Priority))
	created := time.UnixMilli(r.CreatedAt).Format("2006-01-02 15:04")
	return fmt.Sprintf("%s %s %s  %s  %s", box, prio, title, idStyle.Render(created), idStyle.Render(r.ID))
}
