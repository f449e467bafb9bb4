package types

import "errors"

// System table names and the catalog-level metadata partition. The two
// system tables are shared across all logical tables and discriminated by
// their table_name column; __db__ tags catalog-level rows in __meta__.
const (
	MetaTable    = "__meta__"
	ColumnsTable = "__columns__"
	DBPartition  = "__db__"
)

// ReservedNames lists identifiers that cannot be used as logical table names.
var ReservedNames = []string{DBPartition, MetaTable, ColumnsTable}

// IsReservedName reports whether name is reserved for system use.
func IsReservedName(name string) bool {
	for _, r := range ReservedNames {
		if name == r {
			return true
		}
	}
	return false
}

// Standard errors surfaced by catalog and table operations.
var (
	ErrMetaExists        = errors.New("meta table already exists")
	ErrTableExists       = errors.New("table already exists")
	ErrTableNotFound     = errors.New("table not found")
	ErrReservedName      = errors.New("name is reserved for system use")
	ErrNoCatalog         = errors.New("catalog not defined")
	ErrNoData            = errors.New("table has no data")
	ErrNoColumns         = errors.New("table has no column metadata")
	ErrSchemaMismatch    = errors.New("data columns and column meta do not match")
	ErrNamespaceNotFound = errors.New("namespace not found in either columns or index")
)
