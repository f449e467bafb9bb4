// End-to-end lifecycle: ingest a CSV into the catalog, reopen the store,
// rehydrate the table, mutate rows, export a styled workbook, archive the
// workspace, and delete the table.
package integration

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/neudata/neubase/internal/backup"
	"github.com/neudata/neubase/internal/catalog"
	"github.com/neudata/neubase/internal/table"
	"github.com/neudata/neubase/pkg/types"
)

const membersCSV = "Member ID,Full Name,Score %\n1,Ada,90\n2,Ben,80\n3,Col,SUPP\n"

// --- S1: import a CSV and persist all three artifacts ---

func TestLifecycle_ImportCSV(t *testing.T) {
	workspace, cat := newWorkspace(t)
	csvPath := writeFixtureCSV(t, workspace, "members.csv", membersCSV)

	tbl, err := table.New("members", cat, nil, "")
	require.NoError(t, err)
	tbl.Meta = table.Meta{
		table.MetaKeyFile:     csvPath,
		table.MetaKeyIndexCol: 0,
	}
	require.NoError(t, tbl.ReadDataFromFile())
	require.NoError(t, tbl.CreateTable())

	// The data table lists without the system tables.
	tables, err := cat.ListTables()
	require.NoError(t, err)
	assert.Equal(t, []string{"members"}, tables)

	// Headers arrive under derived db names, index column first.
	assert.Equal(t, []string{"member_id", "full_name", "score"}, tbl.Columns.DBNames())

	// The sentinel pay value became NULL in the store.
	rows, err := cat.Query("SELECT score FROM members WHERE member_id = 3")
	require.NoError(t, err)
	require.Equal(t, 1, rows.NumRows())
	assert.True(t, rows.Row(0)[0].IsNull())

	// The companion meta workbook landed next to the store.
	assert.FileExists(t, filepath.Join(workspace, "members_meta.xlsx"))
}

// --- S2: reopen the store and rehydrate the table from its metadata ---

func TestLifecycle_ReopenAndRehydrate(t *testing.T) {
	workspace, cat := newWorkspace(t)
	csvPath := writeFixtureCSV(t, workspace, "members.csv", membersCSV)

	created, err := table.New("members", cat, nil, "")
	require.NoError(t, err)
	created.Meta = table.Meta{table.MetaKeyFile: csvPath, table.MetaKeyIndexCol: 0}
	require.NoError(t, created.ReadDataFromFile())
	require.NoError(t, created.CreateTable())

	reopened, err := catalog.Open(cat.FileLocation, nil)
	require.NoError(t, err)

	tbl, err := table.New("members", reopened, nil, "")
	require.NoError(t, err)
	require.NoError(t, tbl.LoadData())

	assert.Equal(t, 3, tbl.Data.NumRows())
	assert.Equal(t, []string{"member_id"}, tbl.Data.IndexNames())

	// Round-trip back to the source headers.
	require.NoError(t, tbl.RenameColumns(table.NamespaceInput))
	assert.Equal(t, []string{"Member ID", "Full Name", "Score %"}, tbl.Data.Names())
}

// --- S3: mutate rows, then clear them without dropping the table ---

func TestLifecycle_MutateAndClear(t *testing.T) {
	workspace, cat := newWorkspace(t)
	csvPath := writeFixtureCSV(t, workspace, "members.csv", membersCSV)

	tbl, err := table.New("members", cat, nil, "")
	require.NoError(t, err)
	tbl.Meta = table.Meta{table.MetaKeyFile: csvPath}
	require.NoError(t, tbl.ReadDataFromFile())
	require.NoError(t, tbl.CreateTable())

	require.NoError(t, tbl.InsertRow(
		[]string{"member_id", "full_name", "score"}, []any{int64(4), "Dee", int64(70)}))
	require.NoError(t, tbl.UpdateValue("score", 85, "full_name = 'Ben'"))

	rows, err := tbl.Query("SELECT score FROM members WHERE full_name = 'Ben'")
	require.NoError(t, err)
	assert.Equal(t, int64(85), rows.Row(0)[0].Int())

	require.NoError(t, tbl.DeleteRows("all"))
	rows, err = tbl.Query("SELECT * FROM members")
	require.NoError(t, err)
	assert.Equal(t, 0, rows.NumRows())

	tables, err := cat.ListTables()
	require.NoError(t, err)
	assert.Contains(t, tables, "members")
}

// --- S4: a second import of the same name is refused ---

func TestLifecycle_DuplicateImportRefused(t *testing.T) {
	workspace, cat := newWorkspace(t)
	csvPath := writeFixtureCSV(t, workspace, "members.csv", membersCSV)

	first, err := table.New("members", cat, nil, "")
	require.NoError(t, err)
	first.Meta = table.Meta{table.MetaKeyFile: csvPath}
	require.NoError(t, first.ReadDataFromFile())
	require.NoError(t, first.CreateTable())

	second, err := table.New("members", cat, nil, "")
	require.NoError(t, err)
	second.Meta = table.Meta{table.MetaKeyFile: csvPath}
	err = second.CreateTable()
	assert.ErrorIs(t, err, types.ErrTableExists)
}

// --- S5: export the styled workbook from rehydrated state ---

func TestLifecycle_Export(t *testing.T) {
	workspace, cat := newWorkspace(t)
	csvPath := writeFixtureCSV(t, workspace, "members.csv", membersCSV)

	tbl, err := table.New("members", cat, nil, "")
	require.NoError(t, err)
	tbl.Meta = table.Meta{table.MetaKeyFile: csvPath, table.MetaKeyIndexCol: 0}
	require.NoError(t, tbl.ReadDataFromFile())
	require.NoError(t, tbl.CreateTable())

	tbl.Meta[table.MetaKeyOutputDir] = filepath.Join(workspace, "out")
	path, err := tbl.ExportExcel(table.ExportOptions{
		HeaderColor: "C8E0C8",
		PageHeader:  "Members",
		FitToWidth:  true,
	})
	require.NoError(t, err)
	assert.FileExists(t, path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetCellValue("Sheet1", "B1")
	require.NoError(t, err)
	assert.Equal(t, "Full Name", got)
	got, err = f.GetCellValue("Sheet1", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Ada", got)
}

// --- S6: archive the workspace, then delete the table entirely ---

func TestLifecycle_ArchiveAndDelete(t *testing.T) {
	workspace, cat := newWorkspace(t)
	csvPath := writeFixtureCSV(t, workspace, "members.csv", membersCSV)

	tbl, err := table.New("members", cat, nil, "")
	require.NoError(t, err)
	tbl.Meta = table.Meta{table.MetaKeyFile: csvPath}
	require.NoError(t, tbl.ReadDataFromFile())
	require.NoError(t, tbl.CreateTable())

	archivePath, err := backup.Archive(workspace, cat.Name)
	require.NoError(t, err)
	assert.FileExists(t, archivePath)

	archives, err := backup.List(workspace)
	require.NoError(t, err)
	assert.Len(t, archives, 1)

	require.NoError(t, tbl.Delete())
	tables, err := cat.ListTables()
	require.NoError(t, err)
	assert.Empty(t, tables)

	rows, err := cat.Query(
		"SELECT key FROM \"__meta__\" WHERE table_name = 'members'")
	require.NoError(t, err)
	assert.Equal(t, 0, rows.NumRows())
}
