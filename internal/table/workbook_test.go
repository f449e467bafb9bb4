package table

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetaWorkbookRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "members_meta.xlsx")

	src := &Table{
		Name: "members",
		Meta: Meta{
			MetaKeyName:     "members",
			MetaKeyFile:     "data/members.csv",
			MetaKeySQLIndex: []string{"member_id"},
			MetaKeySkipRows: 2,
		},
		Columns: NewColumnSet(
			ColumnMeta{
				DBName: "member_id", InputName: "Member ID", MCName: "Member ID",
				ANName: "Member ID", DType: "int64", DisplayOrder: 0, MCTag: "MEMBERID",
				MCDType: "number", OutputName: "Member ID", OutputFormat: "int",
				OutputWidth: 12,
			},
			ColumnMeta{
				DBName: "full_name", InputName: "Full Name", MCName: "Full Name",
				ANName: "Full Name", DType: "string", DisplayOrder: 1, MCTag: "FULLNAME",
				MCDType: "text", OutputName: "Full Name", OutputFormat: "str",
				OutputWidth: 28.5,
			},
		),
	}
	require.NoError(t, src.WriteMetaWorkbook(path))

	dst := &Table{Name: "members"}
	require.NoError(t, dst.ReadMetaWorkbook(path))

	assert.Equal(t, path, dst.MetaFile)
	assert.Equal(t, "members", dst.Meta[MetaKeyName])
	assert.Equal(t, "data/members.csv", dst.Meta[MetaKeyFile])

	index, ok := dst.Meta.StringList(MetaKeySQLIndex)
	require.True(t, ok)
	assert.Equal(t, []string{"member_id"}, index)

	skip, ok := dst.Meta.Int(MetaKeySkipRows)
	require.True(t, ok)
	assert.Equal(t, 2, skip)

	require.Equal(t, 2, dst.Columns.Len())
	id, ok := dst.Columns.ByDBName("member_id")
	require.True(t, ok)
	assert.Equal(t, "Member ID", id.InputName)
	assert.Equal(t, "int64", id.DType)
	assert.Equal(t, 0, id.DisplayOrder)
	assert.Equal(t, 12.0, id.OutputWidth)

	name, ok := dst.Columns.ByDBName("full_name")
	require.True(t, ok)
	assert.Equal(t, 1, name.DisplayOrder)
	assert.Equal(t, 28.5, name.OutputWidth)
	assert.Equal(t, "str", name.OutputFormat)
}

func TestWriteMetaWorkbookCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "meta.xlsx")

	tbl := &Table{
		Name:    "members",
		Meta:    Meta{MetaKeyName: "members"},
		Columns: NewColumnSet(ColumnMeta{DBName: "a", InputName: "A"}),
	}
	require.NoError(t, tbl.WriteMetaWorkbook(path))
	assert.FileExists(t, path)
}

func TestResolveMetaFilePrecedence(t *testing.T) {
	tbl := &Table{
		Meta:     Meta{MetaKeyMetaFile: "from_meta.xlsx"},
		MetaFile: "from_field.xlsx",
	}
	assert.Equal(t, "explicit.xlsx", tbl.resolveMetaFile("explicit.xlsx"))
	assert.Equal(t, "from_meta.xlsx", tbl.resolveMetaFile(""))

	tbl.Meta = Meta{}
	assert.Equal(t, "from_field.xlsx", tbl.resolveMetaFile(""))
}

func TestReadMetaWorkbookMissingFile(t *testing.T) {
	tbl := &Table{Name: "members"}
	assert.Error(t, tbl.ReadMetaWorkbook(filepath.Join(t.TempDir(), "absent.xlsx")))
}
