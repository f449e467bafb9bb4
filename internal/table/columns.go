package table

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/neudata/neubase/pkg/frame"
	"github.com/neudata/neubase/pkg/types"
)

// Namespace identifies which column-naming scheme the in-memory data is
// currently in. Exactly one namespace is active at a time.
type Namespace string

const (
	// NamespaceInput is the naming scheme of the source file.
	NamespaceInput Namespace = "input_name"
	// NamespaceDB is the naming scheme used once data is persisted.
	NamespaceDB Namespace = "db_name"
)

// Column metadata attribute names, matching the __columns__ table schema.
var columnAttributes = []string{
	"db_name", "input_name", "mc_name", "an_name", "dtype",
	"mc_display_order", "mc_tag", "mc_dtypes",
	"output_name", "output_format", "output_width",
}

// ColumnMeta is one row of per-column metadata, keyed by DBName.
type ColumnMeta struct {
	DBName       string
	InputName    string
	MCName       string
	ANName       string
	DType        string
	DisplayOrder int
	MCTag        string
	MCDType      string
	OutputName   string
	OutputFormat string
	OutputWidth  float64
}

// attr returns the value of a named attribute as text.
func (cm ColumnMeta) attr(name string) string {
	switch name {
	case "db_name":
		return cm.DBName
	case "input_name":
		return cm.InputName
	case "mc_name":
		return cm.MCName
	case "an_name":
		return cm.ANName
	case "dtype":
		return cm.DType
	case "mc_display_order":
		return fmt.Sprintf("%d", cm.DisplayOrder)
	case "mc_tag":
		return cm.MCTag
	case "mc_dtypes":
		return cm.MCDType
	case "output_name":
		return cm.OutputName
	case "output_format":
		return cm.OutputFormat
	case "output_width":
		return fmt.Sprintf("%g", cm.OutputWidth)
	default:
		return ""
	}
}

// ColumnSet holds the column metadata rows of one table, in display order.
type ColumnSet struct {
	cols []ColumnMeta
}

// NewColumnSet builds a ColumnSet from rows.
func NewColumnSet(cols ...ColumnMeta) *ColumnSet {
	return &ColumnSet{cols: cols}
}

// Len returns the number of column rows.
func (s *ColumnSet) Len() int { return len(s.cols) }

// All returns the column rows in order.
func (s *ColumnSet) All() []ColumnMeta { return s.cols }

// Append adds a column row.
func (s *ColumnSet) Append(cm ColumnMeta) { s.cols = append(s.cols, cm) }

// ByDBName returns the row keyed by the given db_name.
func (s *ColumnSet) ByDBName(name string) (ColumnMeta, bool) {
	for _, cm := range s.cols {
		if cm.DBName == name {
			return cm, true
		}
	}
	return ColumnMeta{}, false
}

// DBNames returns the db_name keys in order.
func (s *ColumnSet) DBNames() []string {
	names := make([]string, len(s.cols))
	for i, cm := range s.cols {
		names[i] = cm.DBName
	}
	return names
}

// NameMap returns the rename dictionary between two namespaces.
func (s *ColumnSet) NameMap(from, to Namespace) map[string]string {
	m := make(map[string]string, len(s.cols))
	for _, cm := range s.cols {
		m[cm.attr(string(from))] = cm.attr(string(to))
	}
	return m
}

// Slice returns the subset of rows whose given attribute value is in names.
// The attribute may be any column-metadata attribute, db_name (the row key)
// included. Returns ErrNamespaceNotFound for an unknown attribute.
func (s *ColumnSet) Slice(names []string, attribute string) (*ColumnSet, error) {
	known := false
	for _, a := range columnAttributes {
		if a == attribute {
			known = true
			break
		}
	}
	if !known {
		return nil, fmt.Errorf("%q: %w", attribute, types.ErrNamespaceNotFound)
	}

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}

	out := &ColumnSet{}
	for _, cm := range s.cols {
		if wanted[cm.attr(attribute)] {
			out.Append(cm)
		}
	}
	return out, nil
}

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_ ]`)
var multiSpace = regexp.MustCompile(` +`)

// toAlphanumeric strips everything but letters, digits, underscores, and
// spaces, then collapses runs of spaces.
func toAlphanumeric(text string) string {
	return strings.TrimSpace(multiSpace.ReplaceAllString(
		nonAlphanumeric.ReplaceAllString(text, ""), " "))
}

// titleCase upper-cases the first letter of each underscore- or
// space-delimited word.
func titleCase(text string) string {
	var b strings.Builder
	upper := true
	for _, r := range text {
		if r == '_' || r == ' ' {
			upper = true
			b.WriteRune(r)
			continue
		}
		if upper {
			b.WriteString(strings.ToUpper(string(r)))
			upper = false
		} else {
			b.WriteString(strings.ToLower(string(r)))
		}
	}
	return b.String()
}

// DBNameFor derives the db_name for an input column name: lowercase, strip
// non-alphanumerics, collapse spaces to underscores.
func DBNameFor(inputName string) string {
	return strings.ReplaceAll(toAlphanumeric(strings.ToLower(inputName)), " ", "_")
}

// DeriveColumns derives a full column metadata set from the data's shape:
// index names first, then data columns. Export aliases are title-cased, the
// tag is upper-cased with underscores stripped, dtypes come from the cell
// kinds, and the default export width is 20.
func DeriveColumns(data *frame.Frame) *ColumnSet {
	s := &ColumnSet{}
	for i, col := range data.Columns() {
		dbName := DBNameFor(col.Name)
		mcName := strings.ReplaceAll(toAlphanumeric(titleCase(dbName)), "_", " ")
		kind := col.Kind()

		mcDType := "number"
		if kind == frame.KindString {
			mcDType = "text"
		}

		outputFormat := "str"
		switch kind {
		case frame.KindFloat:
			outputFormat = "float"
		case frame.KindInt:
			outputFormat = "int"
		}

		s.Append(ColumnMeta{
			DBName:       dbName,
			InputName:    col.Name,
			MCName:       mcName,
			ANName:       mcName,
			DType:        kind.DType(),
			DisplayOrder: i,
			MCTag:        strings.ReplaceAll(toAlphanumeric(strings.ToUpper(dbName)), "_", ""),
			MCDType:      mcDType,
			OutputName:   col.Name,
			OutputFormat: outputFormat,
			OutputWidth:  20,
		})
	}
	return s
}
