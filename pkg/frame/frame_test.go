package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFrame(t *testing.T) *Frame {
	t.Helper()
	f, err := New(
		Column{Name: "id", Values: []Value{Int(1), Int(2), Int(3)}},
		Column{Name: "name", Values: []Value{String("a"), String("b"), String("c")}},
		Column{Name: "score", Values: []Value{Float(1.5), Null(), Float(3.5)}},
	)
	require.NoError(t, err)
	return f
}

func TestNewRejectsRaggedColumns(t *testing.T) {
	_, err := New(
		Column{Name: "a", Values: []Value{Int(1)}},
		Column{Name: "b", Values: []Value{Int(1), Int(2)}},
	)
	assert.ErrorIs(t, err, ErrRaggedColumns)
}

func TestSetIndexMovesColumnsToFront(t *testing.T) {
	f := testFrame(t)
	require.NoError(t, f.SetIndex("id"))

	assert.Equal(t, []string{"id"}, f.IndexNames())
	assert.Equal(t, []string{"name", "score"}, f.ColumnNames())
	assert.Equal(t, []string{"id", "name", "score"}, f.Names())
	assert.Equal(t, 1, f.NumIndex())
}

func TestSetIndexUnknownColumn(t *testing.T) {
	f := testFrame(t)
	assert.ErrorIs(t, f.SetIndex("missing"), ErrNoSuchColumn)
}

func TestSetIndexAt(t *testing.T) {
	f := testFrame(t)
	require.NoError(t, f.SetIndexAt(1))
	assert.Equal(t, []string{"name"}, f.IndexNames())
}

func TestRowAndAppendRow(t *testing.T) {
	f := testFrame(t)
	require.NoError(t, f.AppendRow([]Value{Int(4), String("d"), Float(4.5)}))

	assert.Equal(t, 4, f.NumRows())
	row := f.Row(3)
	assert.Equal(t, int64(4), row[0].Int())
	assert.Equal(t, "d", row[1].String())

	assert.ErrorIs(t, f.AppendRow([]Value{Int(5)}), ErrRowWidth)
}

func TestRenameRewritesIndexAndColumnLabels(t *testing.T) {
	f := testFrame(t)
	require.NoError(t, f.SetIndex("id"))

	f.Rename(map[string]string{"id": "member_id", "score": "pay_score"})
	assert.Equal(t, []string{"member_id"}, f.IndexNames())
	assert.Equal(t, []string{"name", "pay_score"}, f.ColumnNames())

	// Round trip restores the original labels.
	f.Rename(map[string]string{"member_id": "id", "pay_score": "score"})
	assert.Equal(t, []string{"id", "name", "score"}, f.Names())
}

func TestColumnKind(t *testing.T) {
	assert.Equal(t, KindInt, Column{Values: []Value{Int(1), Null(), Int(2)}}.Kind())
	assert.Equal(t, KindFloat, Column{Values: []Value{Int(1), Float(2.5)}}.Kind())
	assert.Equal(t, KindString, Column{Values: []Value{Int(1), String("x")}}.Kind())
	assert.Equal(t, KindString, Column{Values: []Value{Null(), Null()}}.Kind())
}
