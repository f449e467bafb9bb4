// Package catalog implements the connection wrapper around a single SQLite
// store file. It bootstraps the shared system tables, tracks which tables
// and views exist, and partitions them into system and data tables.
package catalog

import (
	"database/sql"
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/neudata/neubase/pkg/frame"
	"github.com/neudata/neubase/pkg/types"
)

//go:embed schema.sql
var schemaSQL string

// Catalog wraps one SQLite store file. Every public call opens and closes
// its own connection; nothing is leaked across calls, and no atomicity is
// promised across a sequence of calls. Multi-statement mutations go through
// WithTx.
type Catalog struct {
	FileLocation string
	Name         string

	// Meta holds the catalog-level key/value rows (the __db__ partition
	// of __meta__), loaded at Open.
	Meta map[string]string

	// Refreshed by ListTables.
	TableListFull []string
	ViewList      []string
	TableList     []string
}

// Open connects to the store at fileLocation and bootstraps the system
// tables. When meta is non-nil and no __meta__ table exists yet, the rows
// are seeded under the __db__ partition; when __meta__ already exists,
// supplying meta is a usage error (ErrMetaExists).
func Open(fileLocation string, meta map[string]string) (*Catalog, error) {
	c := &Catalog{
		FileLocation: fileLocation,
		Name:         storeName(fileLocation),
	}

	if _, err := c.ListTables(); err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}

	hasMeta := contains(c.TableListFull, types.MetaTable)
	if hasMeta && meta != nil {
		return nil, types.ErrMetaExists
	}

	if err := c.Exec(schemaSQL); err != nil {
		return nil, fmt.Errorf("bootstrapping system tables: %w", err)
	}

	if !hasMeta && meta != nil {
		err := c.WithTx(func(tx *sql.Tx) error {
			for key, value := range meta {
				if _, err := tx.Exec(
					"INSERT INTO \"__meta__\" (key, value, table_name) VALUES (?, ?, ?)",
					key, value, types.DBPartition); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("seeding catalog meta: %w", err)
		}
		c.Meta = meta
	}

	if hasMeta {
		if err := c.loadMeta(); err != nil {
			return nil, fmt.Errorf("loading catalog meta: %w", err)
		}
	}

	if _, err := c.ListTables(); err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	return c, nil
}

// storeName derives the catalog name from the store file basename.
func storeName(fileLocation string) string {
	base := filepath.Base(fileLocation)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// withConn opens a fresh connection, runs fn, and closes the connection.
func (c *Catalog) withConn(fn func(db *sql.DB) error) error {
	db, err := sql.Open("sqlite", c.FileLocation)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", c.FileLocation, err)
	}
	defer db.Close()
	return fn(db)
}

// WithTx opens a fresh connection, runs fn inside a transaction, and
// commits. The transaction is rolled back when fn returns an error.
func (c *Catalog) WithTx(fn func(tx *sql.Tx) error) error {
	return c.withConn(func(db *sql.DB) error {
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("beginning transaction: %w", err)
		}
		defer tx.Rollback()
		if err := fn(tx); err != nil {
			return err
		}
		return tx.Commit()
	})
}

// Exec runs one statement on its own connection.
func (c *Catalog) Exec(query string, args ...any) error {
	return c.withConn(func(db *sql.DB) error {
		_, err := db.Exec(query, args...)
		return err
	})
}

// Select runs a parameterized read query on its own connection, calling fn
// once per row.
func (c *Catalog) Select(query string, args []any, fn func(rows *sql.Rows) error) error {
	return c.withConn(func(db *sql.DB) error {
		rows, err := db.Query(query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			if err := fn(rows); err != nil {
				return err
			}
		}
		return rows.Err()
	})
}

// QuoteIdent quotes an identifier for interpolation into DDL and PRAGMA
// statements, which cannot take bound parameters.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// ListTables enumerates tables and views from sqlite_master, refreshing
// TableListFull, ViewList, and TableList. The returned list is TableList:
// data tables only, the two system tables excluded.
func (c *Catalog) ListTables() ([]string, error) {
	err := c.withConn(func(db *sql.DB) error {
		tables, err := masterNames(db, "table")
		if err != nil {
			return err
		}
		views, err := masterNames(db, "view")
		if err != nil {
			return err
		}
		c.TableListFull = tables
		c.ViewList = views
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}

	c.TableList = c.TableList[:0]
	for _, name := range c.TableListFull {
		if name != types.MetaTable && name != types.ColumnsTable {
			c.TableList = append(c.TableList, name)
		}
	}
	return c.TableList, nil
}

func masterNames(db *sql.DB, kind string) ([]string, error) {
	rows, err := db.Query(
		"SELECT name FROM sqlite_master WHERE type = ? AND name NOT LIKE 'sqlite_%' ORDER BY name", kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// HasTable reports whether a data or system table with the given name
// exists, re-enumerating the store first.
func (c *Catalog) HasTable(name string) (bool, error) {
	if _, err := c.ListTables(); err != nil {
		return false, err
	}
	return contains(c.TableListFull, name), nil
}

// ListColumns returns the ordered column names of a named table from the
// store's table definition.
func (c *Catalog) ListColumns(table string) ([]string, error) {
	var cols []string
	err := c.withConn(func(db *sql.DB) error {
		rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", QuoteIdent(table)))
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				cid        int
				name, typ  string
				notNull    int
				dfltValue  sql.NullString
				primaryKey int
			)
			if err := rows.Scan(&cid, &name, &typ, &notNull, &dfltValue, &primaryKey); err != nil {
				return err
			}
			cols = append(cols, name)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("listing columns of %s: %w", table, err)
	}
	return cols, nil
}

// Query executes an arbitrary read query and returns the result as a Frame,
// optionally re-keyed by the named index columns. The SQL is caller-trusted.
func (c *Catalog) Query(sqlText string, indexCols ...string) (*frame.Frame, error) {
	var result *frame.Frame
	err := c.withConn(func(db *sql.DB) error {
		rows, err := db.Query(sqlText)
		if err != nil {
			return err
		}
		defer rows.Close()

		names, err := rows.Columns()
		if err != nil {
			return err
		}

		cols := make([]frame.Column, len(names))
		for i, name := range names {
			cols[i].Name = name
		}

		cells := make([]any, len(names))
		ptrs := make([]any, len(names))
		for i := range cells {
			ptrs[i] = &cells[i]
		}
		for rows.Next() {
			if err := rows.Scan(ptrs...); err != nil {
				return err
			}
			for i := range cells {
				cols[i].Values = append(cols[i].Values, frame.FromAny(cells[i]))
			}
		}
		if err := rows.Err(); err != nil {
			return err
		}

		result, err = frame.New(cols...)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("querying: %w", err)
	}
	if len(indexCols) > 0 {
		if err := result.SetIndex(indexCols...); err != nil {
			return nil, fmt.Errorf("querying: %w", err)
		}
	}
	return result, nil
}

// loadMeta reads the __db__ partition of __meta__ into c.Meta.
func (c *Catalog) loadMeta() error {
	meta := make(map[string]string)
	err := c.withConn(func(db *sql.DB) error {
		rows, err := db.Query(
			"SELECT key, value FROM \"__meta__\" WHERE table_name = ?", types.DBPartition)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var key, value string
			if err := rows.Scan(&key, &value); err != nil {
				return err
			}
			meta[key] = value
		}
		return rows.Err()
	})
	if err != nil {
		return err
	}
	c.Meta = meta
	return nil
}

func contains(list []string, name string) bool {
	for _, item := range list {
		if item == name {
			return true
		}
	}
	return false
}
