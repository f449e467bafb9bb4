// Package table implements the logical dataset: the tabular payload, its
// key/value metadata record, and its per-column metadata. It coordinates
// ingestion from external files, renaming columns between the input and
// db namespaces, persistence of the three artifacts into the catalog, and
// formatted export.
package table

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/neudata/neubase/internal/catalog"
	"github.com/neudata/neubase/pkg/frame"
	"github.com/neudata/neubase/pkg/types"
)

// Table is one logical dataset bound to a Catalog. A Table is either
// rehydrated from the catalog's system tables, or constructed fresh from an
// external file plus a metadata workbook, or built from an in-memory
// payload with derived metadata.
type Table struct {
	Name     string
	Catalog  *catalog.Catalog
	Data     *frame.Frame
	Meta     Meta
	Columns  *ColumnSet
	MetaFile string

	namespace Namespace
}

// New constructs a Table bound to a Catalog. Reserved names are rejected on
// every construction path. When metaFile is given its Meta and Columns
// sheets are read, and a Catalog is bootstrapped from meta["db_file"] if
// cat is nil. When the table already exists in the catalog, its metadata
// rows are rehydrated.
func New(name string, cat *catalog.Catalog, data *frame.Frame, metaFile string) (*Table, error) {
	if types.IsReservedName(name) {
		return nil, fmt.Errorf("%s cannot be used as a table name: %w", name, types.ErrReservedName)
	}

	t := &Table{
		Name:     name,
		Catalog:  cat,
		Data:     data,
		MetaFile: metaFile,
	}
	if data != nil {
		t.namespace = NamespaceInput
	}

	if metaFile != "" {
		if err := t.ReadMetaWorkbook(metaFile); err != nil {
			return nil, fmt.Errorf("reading meta workbook: %w", err)
		}
		if t.Catalog == nil {
			dbFile, ok := t.Meta.String(MetaKeyDBFile)
			if !ok {
				return nil, fmt.Errorf("meta workbook has no db_file: %w", types.ErrNoCatalog)
			}
			c, err := catalog.Open(dbFile, nil)
			if err != nil {
				return nil, fmt.Errorf("opening catalog from meta workbook: %w", err)
			}
			t.Catalog = c
		}
		return t, nil
	}

	if t.Catalog == nil {
		return nil, types.ErrNoCatalog
	}

	tables, err := t.Catalog.ListTables()
	if err != nil {
		return nil, err
	}
	if containsName(tables, name) {
		if err := t.readMetaTables(); err != nil {
			return nil, fmt.Errorf("rehydrating %s: %w", name, err)
		}
	}
	return t, nil
}

// Namespace returns the naming scheme the in-memory data is currently in.
func (t *Table) Namespace() Namespace { return t.namespace }

// CreateTable persists the table as three artifacts: the data table, its
// meta rows, and its column rows. Fails with ErrTableExists when the name
// is already present in the catalog. Metadata is derived from the data's
// shape when no metadata source was given; data is ingested from
// meta["file"] when no payload is in memory.
func (t *Table) CreateTable() error {
	tables, err := t.Catalog.ListTables()
	if err != nil {
		return err
	}
	if containsName(tables, t.Name) {
		return fmt.Errorf("%s: %w", t.Name, types.ErrTableExists)
	}

	if t.MetaFile == "" && t.Columns == nil {
		if err := t.deriveMetaFromData(); err != nil {
			return fmt.Errorf("deriving metadata: %w", err)
		}
	}

	if t.Data == nil {
		if err := t.ReadDataFromFile(); err != nil {
			return fmt.Errorf("reading data: %w", err)
		}
	}

	if err := t.RenameColumns(NamespaceDB); err != nil {
		return err
	}

	// The workbook is an external convenience artifact; a write failure
	// does not abort persistence into the catalog.
	if err := t.WriteMetaWorkbook(""); err != nil {
		fmt.Fprintf(os.Stderr, "neubase: meta workbook not written: %v\n", err)
	}

	if err := t.UpdateMetaTables(); err != nil {
		return err
	}
	return t.OverwriteDataTable()
}

// deriveMetaFromData builds column metadata and the bookkeeping meta keys
// purely from the in-memory data's shape.
func (t *Table) deriveMetaFromData() error {
	if t.Data == nil {
		return types.ErrNoData
	}

	t.Columns = DeriveColumns(t.Data)
	if t.MetaFile == "" {
		t.MetaFile = filepath.Join(filepath.Dir(t.Catalog.FileLocation), t.Name+"_meta.xlsx")
	}

	nameMap := t.Columns.NameMap(NamespaceInput, NamespaceDB)
	sqlIndex := make([]string, 0, t.Data.NumIndex())
	for _, name := range t.Data.IndexNames() {
		sqlIndex = append(sqlIndex, nameMap[name])
	}

	if t.Meta == nil {
		t.Meta = Meta{}
	}
	t.Meta[MetaKeyName] = t.Name
	t.Meta[MetaKeyDBFile] = t.Catalog.FileLocation
	t.Meta[MetaKeyMetaFile] = t.MetaFile
	t.Meta[MetaKeySQLIndex] = sqlIndex
	t.Meta[MetaKeyTableID] = newTableID()
	return nil
}

// newTableID generates a UUID v7 table identity.
func newTableID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// readMetaTables rehydrates Meta and Columns from the system tables,
// filtered by this table's name.
func (t *Table) readMetaTables() error {
	meta := Meta{}
	err := t.Catalog.Select(
		"SELECT key, value FROM \"__meta__\" WHERE table_name = ?",
		[]any{t.Name},
		func(rows *sql.Rows) error {
			var key, value string
			if err := rows.Scan(&key, &value); err != nil {
				return err
			}
			meta[key] = DecodeValue(value)
			return nil
		})
	if err != nil {
		return fmt.Errorf("reading meta rows: %w", err)
	}

	cols := &ColumnSet{}
	err = t.Catalog.Select(
		`SELECT db_name, input_name, mc_name, an_name, dtype, mc_display_order,
		        mc_tag, mc_dtypes, output_name, output_format, output_width
		 FROM "__columns__" WHERE table_name = ? ORDER BY mc_display_order`,
		[]any{t.Name},
		func(rows *sql.Rows) error {
			var cm ColumnMeta
			if err := rows.Scan(&cm.DBName, &cm.InputName, &cm.MCName, &cm.ANName,
				&cm.DType, &cm.DisplayOrder, &cm.MCTag, &cm.MCDType,
				&cm.OutputName, &cm.OutputFormat, &cm.OutputWidth); err != nil {
				return err
			}
			cols.Append(cm)
			return nil
		})
	if err != nil {
		return fmt.Errorf("reading column rows: %w", err)
	}

	t.Meta = meta
	t.Columns = cols
	return nil
}

// LoadData rehydrates the payload from the data table, re-keyed by the
// index columns recorded in meta["sql_index"]. Namespace afterwards is db.
func (t *Table) LoadData() error {
	indexCols, _ := t.Meta.StringList(MetaKeySQLIndex)
	data, err := t.Catalog.Query(
		fmt.Sprintf("SELECT * FROM %s", catalog.QuoteIdent(t.Name)), indexCols...)
	if err != nil {
		return fmt.Errorf("loading data table %s: %w", t.Name, err)
	}
	t.Data = data
	t.namespace = NamespaceDB
	return nil
}

// RenameColumns rewrites the data's column and index labels into the target
// namespace using the columns metadata as the bidirectional dictionary.
// No-op with a notice when already in the target namespace.
func (t *Table) RenameColumns(target Namespace) error {
	if t.namespace == target {
		fmt.Fprintf(os.Stderr, "neubase: column names group unchanged, already %s\n", target)
		return nil
	}
	if t.Columns == nil {
		return types.ErrNoColumns
	}
	if t.Data == nil {
		return types.ErrNoData
	}
	t.Data.Rename(t.Columns.NameMap(t.namespace, target))
	t.namespace = target
	return nil
}

// schemaMatch verifies that the set of the data's column and index names
// exactly equals the set of db_name keys in the column metadata. Returns
// the sorted missing/extra names on mismatch.
func (t *Table) schemaMatch() (missing, extra []string) {
	dataNames := make(map[string]bool)
	for _, name := range t.Data.Names() {
		dataNames[name] = true
	}
	metaNames := make(map[string]bool)
	for _, name := range t.Columns.DBNames() {
		metaNames[name] = true
	}
	for name := range metaNames {
		if !dataNames[name] {
			missing = append(missing, name)
		}
	}
	for name := range dataNames {
		if !metaNames[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(missing)
	sort.Strings(extra)
	return missing, extra
}

// OverwriteDataTable writes the data table, replacing any existing table of
// the same name. The data is renamed into the db namespace if needed, and
// its column and index names must exactly match the column metadata's
// db_name set.
func (t *Table) OverwriteDataTable() error {
	if t.Data == nil {
		return types.ErrNoData
	}
	if t.namespace != NamespaceDB {
		if err := t.RenameColumns(NamespaceDB); err != nil {
			return err
		}
	}

	if missing, extra := t.schemaMatch(); len(missing) > 0 || len(extra) > 0 {
		return fmt.Errorf("%w (missing %v, extra %v)", types.ErrSchemaMismatch, missing, extra)
	}

	cols := t.Data.Columns()
	defs := make([]string, len(cols))
	names := make([]string, len(cols))
	marks := make([]string, len(cols))
	for i, col := range cols {
		cm, _ := t.Columns.ByDBName(col.Name)
		defs[i] = catalog.QuoteIdent(col.Name) + " " + sqlType(cm.DType)
		names[i] = catalog.QuoteIdent(col.Name)
		marks[i] = "?"
	}

	err := t.Catalog.WithTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DROP TABLE IF EXISTS " + catalog.QuoteIdent(t.Name)); err != nil {
			return err
		}
		create := fmt.Sprintf("CREATE TABLE %s (%s)",
			catalog.QuoteIdent(t.Name), strings.Join(defs, ", "))
		if _, err := tx.Exec(create); err != nil {
			return err
		}

		insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
			catalog.QuoteIdent(t.Name), strings.Join(names, ", "), strings.Join(marks, ", "))
		stmt, err := tx.Prepare(insert)
		if err != nil {
			return err
		}
		defer stmt.Close()

		args := make([]any, len(cols))
		for i := 0; i < t.Data.NumRows(); i++ {
			for j, v := range t.Data.Row(i) {
				args[j] = v.Any()
			}
			if _, err := stmt.Exec(args...); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("writing data table %s: %w", t.Name, err)
	}

	_, err = t.Catalog.ListTables()
	return err
}

// sqlType maps a column dtype to its SQLite storage type.
func sqlType(dtype string) string {
	switch {
	case strings.HasPrefix(dtype, "int"):
		return "INTEGER"
	case strings.HasPrefix(dtype, "float"):
		return "REAL"
	default:
		return "TEXT"
	}
}

// UpdateMetaTables rewrites this table's rows in both system tables: the
// existing rows are purged and the in-memory versions appended, tagged with
// the table's name, all inside one transaction.
func (t *Table) UpdateMetaTables() error {
	encoded := make(map[string]string, len(t.Meta))
	for key, value := range t.Meta {
		text, err := EncodeValue(value)
		if err != nil {
			return err
		}
		encoded[key] = text
	}
	keys := make([]string, 0, len(encoded))
	for key := range encoded {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	err := t.Catalog.WithTx(func(tx *sql.Tx) error {
		for _, system := range []string{types.MetaTable, types.ColumnsTable} {
			if _, err := tx.Exec(
				fmt.Sprintf("DELETE FROM %s WHERE table_name = ?", catalog.QuoteIdent(system)),
				t.Name); err != nil {
				return err
			}
		}
		for _, key := range keys {
			if _, err := tx.Exec(
				"INSERT INTO \"__meta__\" (key, value, table_name) VALUES (?, ?, ?)",
				key, encoded[key], t.Name); err != nil {
				return err
			}
		}
		for _, cm := range t.Columns.All() {
			if _, err := tx.Exec(
				`INSERT INTO "__columns__" (db_name, input_name, mc_name, an_name, dtype,
				    mc_display_order, mc_tag, mc_dtypes, output_name, output_format,
				    output_width, table_name)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				cm.DBName, cm.InputName, cm.MCName, cm.ANName, cm.DType,
				cm.DisplayOrder, cm.MCTag, cm.MCDType, cm.OutputName,
				cm.OutputFormat, cm.OutputWidth, t.Name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("updating system tables for %s: %w", t.Name, err)
	}

	_, err = t.Catalog.ListTables()
	return err
}

// Delete drops the data table and purges both system-table row sets for
// this table's name.
func (t *Table) Delete() error {
	if err := t.Catalog.Exec("DROP TABLE " + catalog.QuoteIdent(t.Name)); err != nil {
		return fmt.Errorf("dropping %s: %w", t.Name, err)
	}
	err := t.Catalog.WithTx(func(tx *sql.Tx) error {
		for _, system := range []string{types.MetaTable, types.ColumnsTable} {
			if _, err := tx.Exec(
				fmt.Sprintf("DELETE FROM %s WHERE table_name = ?", catalog.QuoteIdent(system)),
				t.Name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("purging system rows for %s: %w", t.Name, err)
	}
	_, err = t.Catalog.ListTables()
	return err
}

// DeleteRows deletes matching rows from the data table. The sentinel
// 'all' expands to an unconditional predicate. The predicate is
// caller-trusted SQL.
func (t *Table) DeleteRows(where string) error {
	if where == "all" {
		where = "1=1"
	}
	err := t.Catalog.Exec(fmt.Sprintf(
		"DELETE FROM %s WHERE %s", catalog.QuoteIdent(t.Name), where))
	if err != nil {
		return fmt.Errorf("deleting rows from %s: %w", t.Name, err)
	}
	return nil
}

// InsertRows appends rows via a parameterized multi-row insert.
func (t *Table) InsertRows(columns []string, values [][]any) error {
	quoted := make([]string, len(columns))
	marks := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = catalog.QuoteIdent(col)
		marks[i] = "?"
	}
	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		catalog.QuoteIdent(t.Name), strings.Join(quoted, ", "), strings.Join(marks, ", "))

	err := t.Catalog.WithTx(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(insert)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, row := range values {
			if _, err := stmt.Exec(row...); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("inserting rows into %s: %w", t.Name, err)
	}
	return nil
}

// InsertRow appends a single row.
func (t *Table) InsertRow(columns []string, values []any) error {
	return t.InsertRows(columns, [][]any{values})
}

// UpdateValue applies a single-column update with an interpolated value.
// Column, value, and predicate are caller-trusted.
func (t *Table) UpdateValue(column string, value any, where string) error {
	err := t.Catalog.Exec(fmt.Sprintf(
		"UPDATE %s SET %s = %s WHERE %s",
		catalog.QuoteIdent(t.Name), catalog.QuoteIdent(column), sqlLiteral(value), where))
	if err != nil {
		return fmt.Errorf("updating %s: %w", t.Name, err)
	}
	return nil
}

// UpdateValues applies a parameterized multi-column update with a
// caller-supplied predicate.
func (t *Table) UpdateValues(columns []string, values []any, where string) error {
	sets := make([]string, len(columns))
	for i, col := range columns {
		sets[i] = catalog.QuoteIdent(col) + " = ?"
	}
	err := t.Catalog.WithTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(fmt.Sprintf(
			"UPDATE %s SET %s WHERE %s",
			catalog.QuoteIdent(t.Name), strings.Join(sets, ", "), where), values...)
		return err
	})
	if err != nil {
		return fmt.Errorf("updating %s: %w", t.Name, err)
	}
	return nil
}

// sqlLiteral renders a value as a SQL literal.
func sqlLiteral(value any) string {
	switch t := value.(type) {
	case nil:
		return "NULL"
	case string:
		return "'" + strings.ReplaceAll(t, "'", "''") + "'"
	default:
		return fmt.Sprint(t)
	}
}

// Query runs a read query, re-keyed by meta["sql_index"] unless index
// columns are given.
func (t *Table) Query(sqlText string, indexCols ...string) (*frame.Frame, error) {
	if len(indexCols) == 0 {
		indexCols, _ = t.Meta.StringList(MetaKeySQLIndex)
	}
	return t.Catalog.Query(sqlText, indexCols...)
}

// ListColumns returns the data table's column names from the store.
func (t *Table) ListColumns() ([]string, error) {
	return t.Catalog.ListColumns(t.Name)
}

// SliceColumns returns the subset of the column metadata whose given
// attribute matches the names.
func (t *Table) SliceColumns(names []string, attribute string) (*ColumnSet, error) {
	if t.Columns == nil {
		return nil, types.ErrNoColumns
	}
	return t.Columns.Slice(names, attribute)
}

func containsName(list []string, name string) bool {
	for _, item := range list {
		if item == name {
			return true
		}
	}
	return false
}
