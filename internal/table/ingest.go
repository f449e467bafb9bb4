package table

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/neudata/neubase/pkg/frame"
)

// naValues are the literal tokens treated as missing values during
// ingestion.
var naValues = []string{
	"-", "*", "..", ".", "SUPP", "NA", "NP", "NE", "NaN", "DNS",
	"No Pay Details Submitted",
}

func isNA(cell string) bool {
	for _, na := range naValues {
		if cell == na {
			return true
		}
	}
	return false
}

// ingestOptions collects the recognized meta keys governing ingestion.
type ingestOptions struct {
	skipRows    []int
	useCols     []int
	names       []string
	indexCol    int
	hasIndexCol bool
	dtypes      map[string]string
}

func (t *Table) ingestOptions() ingestOptions {
	var opts ingestOptions
	opts.skipRows, _ = t.Meta.IntList(MetaKeySkipRows)
	opts.useCols, _ = t.Meta.IntList(MetaKeyUseCols)
	opts.names, _ = t.Meta.StringList(MetaKeyNames)
	opts.indexCol, opts.hasIndexCol = t.Meta.Int(MetaKeyIndexCol)

	// Per-column dtypes come from the columns metadata when present,
	// falling back to the dtype meta key.
	if t.Columns != nil && t.Columns.Len() > 0 {
		opts.dtypes = make(map[string]string, t.Columns.Len())
		for _, cm := range t.Columns.All() {
			opts.dtypes[cm.InputName] = cm.DType
		}
	} else if m, ok := t.Meta.StringMap(MetaKeyDType); ok {
		opts.dtypes = m
	}
	return opts
}

// ReadDataFromFile loads the payload from the external file described by
// meta["file"]: a .csv suffix routes to the CSV reader, anything else to
// the spreadsheet reader. Namespace afterwards is input.
func (t *Table) ReadDataFromFile() error {
	file, ok := t.Meta.String(MetaKeyFile)
	if !ok {
		return fmt.Errorf("meta has no %q key", MetaKeyFile)
	}

	var (
		raw [][]string
		err error
	)
	if strings.EqualFold(filepath.Ext(file), ".csv") {
		raw, err = readCSVRows(file)
	} else {
		raw, err = readSheetRows(file, t.Meta)
	}
	if err != nil {
		return err
	}

	data, err := buildFrame(raw, t.ingestOptions())
	if err != nil {
		return fmt.Errorf("ingesting %s: %w", file, err)
	}
	t.Data = data
	t.namespace = NamespaceInput
	return nil
}

func readCSVRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\uFEFF")
	}
	return rows, nil
}

func readSheetRows(path string, meta Meta) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if idx, ok := meta.Int(MetaKeySheetName); ok {
		sheet = f.GetSheetName(idx)
	} else if name, ok := meta.String(MetaKeySheetName); ok && name != "" {
		sheet = name
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q of %s: %w", sheet, path, err)
	}
	return rows, nil
}

// buildFrame turns raw text rows into a typed Frame: skip rows are dropped,
// the header row (or the names option) supplies column names, usecols
// selects column positions, sentinel tokens become nulls, declared dtypes
// are coerced with failures kept as unparsed text, and the index column
// position is applied last.
func buildFrame(raw [][]string, opts ingestOptions) (*frame.Frame, error) {
	if len(opts.skipRows) > 0 {
		skip := make(map[int]bool, len(opts.skipRows))
		for _, i := range opts.skipRows {
			skip[i] = true
		}
		kept := make([][]string, 0, len(raw))
		for i, row := range raw {
			if !skip[i] {
				kept = append(kept, row)
			}
		}
		raw = kept
	}

	var colNames []string
	var dataRows [][]string
	if len(opts.names) > 0 {
		colNames = opts.names
		dataRows = raw
	} else {
		if len(raw) == 0 {
			return nil, fmt.Errorf("no header row")
		}
		colNames = raw[0]
		dataRows = raw[1:]
	}

	positions := make([]int, 0, len(colNames))
	if len(opts.useCols) > 0 {
		positions = append(positions, opts.useCols...)
	} else {
		for i := range colNames {
			positions = append(positions, i)
		}
	}

	cols := make([]frame.Column, len(positions))
	for i, pos := range positions {
		if pos < 0 || pos >= len(colNames) {
			return nil, fmt.Errorf("usecols position %d out of range", pos)
		}
		name := colNames[pos]
		cols[i].Name = name

		want := frame.KindNull
		declared := false
		if dtype, ok := opts.dtypes[name]; ok {
			want = frame.KindForDType(dtype)
			declared = true
		}

		for _, row := range dataRows {
			cell := ""
			if pos < len(row) {
				cell = row[pos]
			}
			switch {
			case isNA(cell):
				cols[i].Values = append(cols[i].Values, frame.Null())
			case declared:
				cols[i].Values = append(cols[i].Values, frame.Coerce(cell, want))
			default:
				cols[i].Values = append(cols[i].Values, frame.Detect(cell))
			}
		}
	}

	data, err := frame.New(cols...)
	if err != nil {
		return nil, err
	}
	if opts.hasIndexCol {
		if err := data.SetIndexAt(opts.indexCol); err != nil {
			return nil, err
		}
	}
	return data, nil
}
