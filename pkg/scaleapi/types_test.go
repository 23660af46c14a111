package scaleapi

import (
	"encoding/json"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskTypes(t *testing.T) {
	types := TaskTypes()
	assert.Len(t, types, 16)
	assert.True(t, sort.SliceIsSorted(types, func(i, j int) bool { return types[i] < types[j] }))
	for _, tt := range types {
		assert.True(t, tt.Valid(), tt)
	}
}

func TestParseTaskType(t *testing.T) {
	tt, ok := ParseTaskType("videocuboidannotation")
	assert.True(t, ok)
	assert.Equal(t, TaskTypeVideoCuboidAnnotation, tt)

	_, ok = ParseTaskType("ImageAnnotation")
	assert.False(t, ok, "task types are case sensitive")

	_, ok = ParseTaskType("")
	assert.False(t, ok)
}

func TestTaskStatus_IsFinal(t *testing.T) {
	assert.False(t, TaskStatusPending.IsFinal())
	assert.True(t, TaskStatusCompleted.IsFinal())
	assert.True(t, TaskStatusCanceled.IsFinal())
}

func TestDocument_Accessors(t *testing.T) {
	doc, err := ParseDocument([]byte(`{
		"name": "x",
		"count": 3,
		"big": 9007199254740993,
		"flag": true,
		"when": "2024-06-01T10:00:00.5Z",
		"bad_when": "yesterday",
		"nested": {"a": 1}
	}`))
	require.NoError(t, err)

	assert.Equal(t, "x", doc.String("name"))
	assert.Equal(t, "", doc.String("count"))
	assert.Equal(t, 3, doc.Int("count"))
	assert.Equal(t, json.Number("9007199254740993"), doc["big"])
	assert.True(t, doc.Bool("flag"))
	assert.Equal(t, 500000000, doc.Time("when").Nanosecond())
	assert.True(t, doc.Time("bad_when").IsZero())
	assert.True(t, doc.Time("missing").IsZero())
	assert.Equal(t, 1, doc.Object("nested").Int("a"))
	assert.Nil(t, doc.Object("name"))
}

func TestDocument_CloneNil(t *testing.T) {
	var doc Document
	assert.Nil(t, doc.Clone())
}

func TestParseDocument_Invalid(t *testing.T) {
	_, err := ParseDocument([]byte(`[1, 2]`))
	assert.Error(t, err)
}
