package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MihkelHunter/mkTasks/internal/todo"
)

var (
	sampleTasks   = []todo.Task{{ID: "1", Text: "Buy milk"}, {ID: "2", Text: "Walk, dog", Completed: true}}
	sampleDeleted = []todo.Task{{ID: "3", Text: "Old"}}
)

func TestExport_JSON(t *testing.T) {
	out, err := Export("json", sampleTasks, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"tasks": [{"text":"Buy milk","completed":false},{"text":"Walk, dog","completed":true}],
		"deletedTasks": []
	}`, string(out))
}

func TestExport_CSV(t *testing.T) {
	out, err := Export("CSV", sampleTasks, sampleDeleted)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"list", "text", "completed"},
		{"tasks", "Buy milk", "false"},
		{"tasks", "Walk, dog", "true"},
		{"deletedTasks", "Old", "false"},
	}, records)
}

func TestExport_PDF(t *testing.T) {
	out, err := Export("pdf", sampleTasks, sampleDeleted)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestExport_UnknownFormat(t *testing.T) {
	_, err := Export("xml", nil, nil)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", ContentType("pdf"))
	assert.Equal(t, "text/csv", ContentType("csv"))
	assert.Equal(t, "application/json", ContentType("json"))
}
