package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type notePatch struct {
	Title Optional[string] `json:"title"`
	Notes Optional[string] `json:"notes"`
	Count Optional[int]    `json:"count"`
}

func TestOptionalDistinguishesAbsentNullAndValue(t *testing.T) {
	var p notePatch
	require.NoError(t, json.Unmarshal([]byte(`{"notes": null, "count": 3}`), &p))

	assert.False(t, p.Title.Set)
	assert.False(t, p.Title.HasValue())

	assert.True(t, p.Notes.Set)
	assert.True(t, p.Notes.Null)
	assert.False(t, p.Notes.HasValue())
	assert.Nil(t, p.Notes.Ptr())

	assert.True(t, p.Count.HasValue())
	assert.Equal(t, 3, p.Count.Value)
	require.NotNil(t, p.Count.Ptr())
	assert.Equal(t, 3, *p.Count.Ptr())
}

func TestOptionalRejectsWrongType(t *testing.T) {
	var p notePatch
	assert.Error(t, json.Unmarshal([]byte(`{"count": "three"}`), &p))
}

func TestOptionalMarshal(t *testing.T) {
	out, err := json.Marshal(notePatch{Title: Some("hello"), Notes: Null[string]()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"hello","notes":null,"count":null}`, string(out))
}
