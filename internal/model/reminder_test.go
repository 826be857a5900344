package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		in      string
		want    Priority
		wantErr bool
	}{
		{in: "", want: PriorityMedium},
		{in: "Low", want: PriorityLow},
		{in: " high ", want: PriorityHigh},
		{in: "MEDIUM", want: PriorityMedium},
		{in: "Média", want: PriorityMedium},
		{in: "Alta", want: PriorityHigh},
		{in: "Baixa", want: PriorityLow},
		{in: "urgent", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePriority(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPriority)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPriority_Rank(t *testing.T) {
	assert.Less(t, PriorityLow.Rank(), PriorityMedium.Rank())
	assert.Less(t, PriorityMedium.Rank(), PriorityHigh.Rank())
	assert.Equal(t, 0, Priority("Urgent").Rank())
	assert.False(t, Priority("").Valid())
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter("")
	require.NoError(t, err)
	assert.Equal(t, FilterAll, f)

	f, err = ParseFilter("Completed")
	require.NoError(t, err)
	assert.Equal(t, FilterCompleted, f)

	_, err = ParseFilter("done")
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestRow_Reminder(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 500_000_000, time.UTC)
	row := Row{
		ID:          "b8e1",
		Title:       "Pay rent",
		Description: "before friday",
		Priority:    "High",
		IsCompleted: true,
		CreatedAt:   created,
	}

	r := row.Reminder()
	assert.Equal(t, "b8e1", r.ID)
	assert.Equal(t, PriorityHigh, r.Priority)
	assert.True(t, r.IsCompleted)
	assert.Equal(t, created.UnixMilli(), r.CreatedAt)

	back := RowFromReminder(r)
	assert.True(t, created.Equal(back.CreatedAt))
	assert.Equal(t, "High", back.Priority)
}

func TestReminder_ApplyKeepsIdentity(t *testing.T) {
	r := Reminder{ID: "1", Title: "a", Priority: PriorityLow, IsCompleted: true, CreatedAt: 42}
	got := r.Apply(Draft{Title: "b", Description: "d", Priority: PriorityHigh})

	assert.Equal(t, "1", got.ID)
	assert.Equal(t, int64(42), got.CreatedAt)
	assert.True(t, got.IsCompleted)
	assert.Equal(t, "b", got.Title)
	assert.Equal(t, PriorityHigh, got.Priority)
}
