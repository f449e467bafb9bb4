package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neudata/neubase/pkg/frame"
	"github.com/neudata/neubase/pkg/types"
)

func TestDBNameFor(t *testing.T) {
	cases := map[string]string{
		"Full Name":        "full_name",
		"Score %":          "score",
		"Branch":           "branch",
		"Pay (GBP)":        "pay_gbp",
		"  Spaced   Out  ": "spaced_out",
		"already_db":       "already_db",
	}
	for input, want := range cases {
		assert.Equal(t, want, DBNameFor(input), "input %q", input)
	}
}

func TestDBNameForIsDeterministic(t *testing.T) {
	for _, name := range []string{"Full Name", "Score %", "Rate £/hr"} {
		assert.Equal(t, DBNameFor(name), DBNameFor(name))
	}
}

func TestDeriveColumns(t *testing.T) {
	data, err := frame.New(
		frame.Column{Name: "Full Name", Values: []frame.Value{frame.String("a"), frame.String("b")}},
		frame.Column{Name: "Score %", Values: []frame.Value{frame.Int(90), frame.Int(80)}},
		frame.Column{Name: "Rate", Values: []frame.Value{frame.Float(9.5), frame.Float(10.5)}},
	)
	require.NoError(t, err)

	cols := DeriveColumns(data)
	require.Equal(t, 3, cols.Len())

	name, ok := cols.ByDBName("full_name")
	require.True(t, ok)
	assert.Equal(t, "Full Name", name.InputName)
	assert.Equal(t, "Full Name", name.MCName)
	assert.Equal(t, name.MCName, name.ANName)
	assert.Equal(t, "FULLNAME", name.MCTag)
	assert.Equal(t, "string", name.DType)
	assert.Equal(t, "text", name.MCDType)
	assert.Equal(t, "str", name.OutputFormat)
	assert.Equal(t, 0, name.DisplayOrder)
	assert.Equal(t, 20.0, name.OutputWidth)

	score, ok := cols.ByDBName("score")
	require.True(t, ok)
	assert.Equal(t, "int64", score.DType)
	assert.Equal(t, "number", score.MCDType)
	assert.Equal(t, "int", score.OutputFormat)

	rate, ok := cols.ByDBName("rate")
	require.True(t, ok)
	assert.Equal(t, "float64", rate.DType)
	assert.Equal(t, "float", rate.OutputFormat)
}

func TestDeriveColumnsIncludesIndex(t *testing.T) {
	data, err := frame.New(
		frame.Column{Name: "Member ID", Values: []frame.Value{frame.Int(1)}},
		frame.Column{Name: "Full Name", Values: []frame.Value{frame.String("a")}},
	)
	require.NoError(t, err)
	require.NoError(t, data.SetIndex("Member ID"))

	cols := DeriveColumns(data)
	assert.Equal(t, []string{"member_id", "full_name"}, cols.DBNames())
}

func TestNameMap(t *testing.T) {
	cols := NewColumnSet(
		ColumnMeta{DBName: "full_name", InputName: "Full Name"},
		ColumnMeta{DBName: "score", InputName: "Score %"},
	)

	toDB := cols.NameMap(NamespaceInput, NamespaceDB)
	assert.Equal(t, "full_name", toDB["Full Name"])

	toInput := cols.NameMap(NamespaceDB, NamespaceInput)
	assert.Equal(t, "Score %", toInput["score"])
}

func TestSliceByAttribute(t *testing.T) {
	cols := NewColumnSet(
		ColumnMeta{DBName: "full_name", InputName: "Full Name"},
		ColumnMeta{DBName: "score", InputName: "Score %"},
		ColumnMeta{DBName: "branch", InputName: "Branch"},
	)

	byKey, err := cols.Slice([]string{"score", "branch"}, "db_name")
	require.NoError(t, err)
	assert.Equal(t, []string{"score", "branch"}, byKey.DBNames())

	byInput, err := cols.Slice([]string{"Full Name"}, "input_name")
	require.NoError(t, err)
	assert.Equal(t, []string{"full_name"}, byInput.DBNames())
}

func TestSliceUnknownAttribute(t *testing.T) {
	cols := NewColumnSet(ColumnMeta{DBName: "a"})
	_, err := cols.Slice([]string{"a"}, "no_such_group")
	assert.ErrorIs(t, err, types.ErrNamespaceNotFound)
}
