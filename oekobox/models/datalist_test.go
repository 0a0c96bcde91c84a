package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDataLists(t *testing.T) {
	raw := []byte(`[{"type":"Group","version":2,"cnt":2,"data":[[1,"Obst","",12],[0,"","",0]]}]`)

	lists, err := DecodeDataLists(raw)
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, "Group", lists[0].Type)
	assert.Equal(t, 2, lists[0].Version)
	assert.Len(t, lists[0].Data, 2)
}

func TestDecodeDataListsRejectsObjects(t *testing.T) {
	_, err := DecodeDataLists([]byte(`{"result":"ok"}`))
	assert.Error(t, err)
}

func TestDecodeDataListsRejectsPlainText(t *testing.T) {
	_, err := DecodeDataLists([]byte(`logged out`))
	assert.Error(t, err)
}

func TestRowsCollectsMatchingBlocks(t *testing.T) {
	lists := []DataList{
		{Type: "Group", Data: [][]interface{}{{1}, {2}}},
		{Type: "SubGroup", Data: [][]interface{}{{11}}},
		{Type: "Group", Data: [][]interface{}{{3}}},
	}

	assert.Len(t, Rows(lists, "Group"), 3)
	assert.Len(t, Rows(lists, "SubGroup"), 1)
	assert.Empty(t, Rows(lists, "Item"))
}

func TestCoercionHelpers(t *testing.T) {
	row := []interface{}{float64(101), "2.49", nil, true, "text"}

	assert.Equal(t, "101", asString(row, 0))
	assert.Equal(t, "2.49", asString(row, 1))
	assert.Equal(t, "", asString(row, 2))
	assert.Equal(t, "true", asString(row, 3))
	assert.Equal(t, "", asString(row, 99))

	f, ok := asFloat(row, 1)
	require.True(t, ok)
	assert.InDelta(t, 2.49, f, 1e-9)

	_, ok = asFloat(row, 4)
	assert.False(t, ok)

	assert.Nil(t, asFloatPtr(row, 2))
	require.NotNil(t, asFloatPtr(row, 0))
	assert.Equal(t, 101, asInt(row, 0))
}

func TestAsTimeLayouts(t *testing.T) {
	for _, value := range []string{"2026-09-04", "2026-09-04T10:30:00", "2026-09-04T10:30:00Z"} {
		parsed := asTime([]interface{}{value}, 0)
		require.NotNil(t, parsed, value)
		assert.Equal(t, 2026, parsed.Year())
	}
	assert.Nil(t, asTime([]interface{}{"not a date"}, 0))
	assert.Nil(t, asTime([]interface{}{nil}, 0))
}

func TestIsTerminator(t *testing.T) {
	assert.True(t, isTerminator(nil))
	assert.True(t, isTerminator([]interface{}{float64(0), "x"}))
	assert.True(t, isTerminator([]interface{}{float64(-1)}))
	assert.True(t, isTerminator([]interface{}{""}))
	assert.False(t, isTerminator([]interface{}{float64(42)}))
	assert.False(t, isTerminator([]interface{}{"abc"}))
}
