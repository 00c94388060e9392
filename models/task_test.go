package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-01-10")

	require.NoError(t, err)
	assert.Equal(t, "2026-01-10", d.String())
}

func TestParseDate_RejectsOtherLayouts(t *testing.T) {
	for _, input := range []string{"not-a-date", "01-10-2026", "2023-02-30", "2026/01/10", ""} {
		_, err := ParseDate(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := NewDate(2026, 1, 10)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-01-10"`, string(b))

	var parsed Date
	require.NoError(t, json.Unmarshal(b, &parsed))
	assert.True(t, d.Equal(parsed))
}

func TestPriority_NumericRoundTrip(t *testing.T) {
	b, err := json.Marshal(NumericPriority(3))
	require.NoError(t, err)
	assert.Equal(t, "3", string(b))

	var p Priority
	require.NoError(t, json.Unmarshal(b, &p))
	n, ok := p.Number()
	require.True(t, ok)
	assert.Equal(t, 3, n)
	_, ok = p.Level()
	assert.False(t, ok)
}

func TestPriority_LevelRoundTrip(t *testing.T) {
	b, err := json.Marshal(LevelPriority(PriorityHigh))
	require.NoError(t, err)
	assert.Equal(t, `"High"`, string(b))

	var p Priority
	require.NoError(t, json.Unmarshal(b, &p))
	level, ok := p.Level()
	require.True(t, ok)
	assert.Equal(t, PriorityHigh, level)
}

func TestPriority_NullIsZero(t *testing.T) {
	var p Priority
	require.NoError(t, json.Unmarshal([]byte("null"), &p))
	assert.True(t, p.IsZero())

	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
}

func TestPriority_RejectsNonIntegerNumber(t *testing.T) {
	var p Priority
	assert.Error(t, json.Unmarshal([]byte("2.5"), &p))
}

func TestViewOf_PendingTask(t *testing.T) {
	desc := "Milk, eggs, bread"
	tag := "Personal"
	due := NewDate(2026, 1, 10)
	task := Task{
		ID:          "abc123",
		Title:       "Buy groceries",
		Description: &desc,
		Priority:    NumericPriority(2),
		Category:    &tag,
		DueDate:     &due,
		Completed:   false,
	}

	view := ViewOf(task)

	assert.Equal(t, "abc123", view.ID)
	assert.Equal(t, "Buy groceries", view.Title)
	assert.Equal(t, &desc, view.Description)
	assert.Equal(t, &tag, view.Tag)
	assert.Equal(t, StatusPending, view.Status)
}

func TestViewOf_CompletedTask(t *testing.T) {
	view := ViewOf(Task{ID: "1", Completed: true})

	assert.Equal(t, StatusCompleted, view.Status)
}

func TestTaskView_JSONShape(t *testing.T) {
	view := ViewOf(Task{
		ID:       "abc123",
		Title:    "No tag",
		Priority: NumericPriority(3),
	})

	b, err := json.Marshal(view)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, "Pending", decoded["status"])
	assert.Contains(t, decoded, "tag")
	assert.Nil(t, decoded["tag"])
	assert.Contains(t, decoded, "description")
	assert.Nil(t, decoded["description"])
	assert.Equal(t, float64(3), decoded["priority"])
}
