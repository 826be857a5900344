package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BuzzLyutic/reminders-api/internal/model"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "y\n", want: true},
		{input: "YES\n", want: true},
		{input: "n\n", want: false},
		{input: "\n", want: false},
		{input: "", want: false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			got, err := confirm(strings.NewReader(tt.input), &out, "Delete?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "[y/N]")
		})
	}
}

func TestRenderList(t *testing.T) {
	var out bytes.Buffer
	renderList(&out, []model.Reminder{
		{ID: "r1", Title: "Buy milk", Description: "2l", Priority: model.PriorityHigh},
		{ID: "r2", Title: "Call mom", Priority: model.PriorityLow, IsCompleted: true},
	})

	s := out.String()
	assert.Contains(t, s, "[ ]")
	assert.Contains(t, s, "[x]")
	assert.Contains(t, s, "Buy milk")
	assert.Contains(t, s, "2l")
	assert.Contains(t, s, "r2")

	out.Reset()
	renderList(&out, nil)
	assert.Contains(t, out.String(), "No reminders")
}

func TestCLI_AddListRemove(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("BACKEND", "local")
	t.Setenv("STORAGE_KIND", "file")
	t.Setenv("STORAGE_PATH", t.TempDir())
	t.Setenv("API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	run := func(stdin string, args ...string) (string, error) {
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetIn(strings.NewReader(stdin))
		rootCmd.SetArgs(args)
		err := rootCmd.Execute()
		return out.String(), err
	}

	out, err := run("", "add", "Buy", "milk", "-p", "High", "-d", "2l")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved: Buy milk [High]")
	draftDescription, draftPriority = "", ""

	out, err = run("", "add", "Water plants", "--enhance")
	require.NoError(t, err)
	assert.Contains(t, out, "AI is not configured")
	assert.Contains(t, out, "Saved: Water plants [Medium]")
	draftEnhance = false

	out, err = run("", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "2 pending, 0 completed, 2 total")

	_, err = run("", "list", "--filter", "later")
	assert.ErrorIs(t, err, model.ErrInvalidFilter)
	listFilter = "all"

	_, err = run("", "rm", "missing", "--yes")
	assert.Error(t, err)
	rmYes = false

	_, err = run("", "add", "  ")
	assert.Error(t, err)
}
