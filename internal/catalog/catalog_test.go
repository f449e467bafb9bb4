package catalog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neudata/neubase/pkg/types"
)

func storePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "test.db")
}

func TestOpenBootstrapsSystemTables(t *testing.T) {
	cat, err := Open(storePath(t), nil)
	require.NoError(t, err)

	assert.Contains(t, cat.TableListFull, types.MetaTable)
	assert.Contains(t, cat.TableListFull, types.ColumnsTable)
	assert.Empty(t, cat.TableList)
}

func TestOpenDerivesNameFromFile(t *testing.T) {
	cat, err := Open(filepath.Join(t.TempDir(), "payroll.db"), nil)
	require.NoError(t, err)
	assert.Equal(t, "payroll", cat.Name)
}

func TestOpenSeedsCatalogMeta(t *testing.T) {
	path := storePath(t)
	cat, err := Open(path, map[string]string{"owner": "x"})
	require.NoError(t, err)
	assert.Equal(t, "x", cat.Meta["owner"])

	rows, err := cat.Query(
		"SELECT key, value, table_name FROM \"__meta__\"")
	require.NoError(t, err)
	require.Equal(t, 1, rows.NumRows())

	row := rows.Row(0)
	assert.Equal(t, "owner", row[0].String())
	assert.Equal(t, "x", row[1].String())
	assert.Equal(t, types.DBPartition, row[2].String())
}

func TestOpenReloadsCatalogMeta(t *testing.T) {
	path := storePath(t)
	_, err := Open(path, map[string]string{"owner": "x"})
	require.NoError(t, err)

	cat, err := Open(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "x", cat.Meta["owner"])
}

func TestOpenRejectsMetaWhenMetaTableExists(t *testing.T) {
	path := storePath(t)
	_, err := Open(path, nil)
	require.NoError(t, err)

	_, err = Open(path, map[string]string{"owner": "x"})
	assert.ErrorIs(t, err, types.ErrMetaExists)
}

func TestListTablesExcludesSystemTables(t *testing.T) {
	cat, err := Open(storePath(t), nil)
	require.NoError(t, err)

	require.NoError(t, cat.Exec(`CREATE TABLE members (id INTEGER, name TEXT)`))
	require.NoError(t, cat.Exec(`CREATE TABLE pay (id INTEGER, amount REAL)`))

	tables, err := cat.ListTables()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"members", "pay"}, tables)
	assert.NotContains(t, tables, types.MetaTable)
	assert.NotContains(t, tables, types.ColumnsTable)
	assert.Contains(t, cat.TableListFull, types.MetaTable)
}

func TestListTablesSeparatesViews(t *testing.T) {
	cat, err := Open(storePath(t), nil)
	require.NoError(t, err)

	require.NoError(t, cat.Exec(`CREATE TABLE members (id INTEGER)`))
	require.NoError(t, cat.Exec(`CREATE VIEW member_ids AS SELECT id FROM members`))

	tables, err := cat.ListTables()
	require.NoError(t, err)
	assert.Equal(t, []string{"members"}, tables)
	assert.Equal(t, []string{"member_ids"}, cat.ViewList)
}

func TestListColumnsReturnsDefinitionOrder(t *testing.T) {
	cat, err := Open(storePath(t), nil)
	require.NoError(t, err)
	require.NoError(t, cat.Exec(`CREATE TABLE members (id INTEGER, name TEXT, branch TEXT)`))

	cols, err := cat.ListColumns("members")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name", "branch"}, cols)
}

func TestQueryReturnsTypedFrame(t *testing.T) {
	cat, err := Open(storePath(t), nil)
	require.NoError(t, err)
	require.NoError(t, cat.Exec(`CREATE TABLE pay (id INTEGER, amount REAL, note TEXT)`))
	require.NoError(t, cat.Exec(`INSERT INTO pay VALUES (1, 10.5, 'ok'), (2, 20.0, NULL)`))

	rows, err := cat.Query("SELECT id, amount, note FROM pay ORDER BY id")
	require.NoError(t, err)
	require.Equal(t, 2, rows.NumRows())

	first := rows.Row(0)
	assert.Equal(t, int64(1), first[0].Int())
	assert.Equal(t, 10.5, first[1].Float())
	assert.Equal(t, "ok", first[2].String())
	assert.True(t, rows.Row(1)[2].IsNull())
}

func TestQueryWithIndexColumns(t *testing.T) {
	cat, err := Open(storePath(t), nil)
	require.NoError(t, err)
	require.NoError(t, cat.Exec(`CREATE TABLE pay (id INTEGER, amount REAL)`))
	require.NoError(t, cat.Exec(`INSERT INTO pay VALUES (1, 10.5)`))

	rows, err := cat.Query("SELECT amount, id FROM pay", "id")
	require.NoError(t, err)
	assert.Equal(t, []string{"id"}, rows.IndexNames())
	assert.Equal(t, []string{"amount"}, rows.ColumnNames())
}

func TestHasTable(t *testing.T) {
	cat, err := Open(storePath(t), nil)
	require.NoError(t, err)

	ok, err := cat.HasTable("members")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cat.Exec(`CREATE TABLE members (id INTEGER)`))
	ok, err = cat.HasTable("members")
	require.NoError(t, err)
	assert.True(t, ok)
}
