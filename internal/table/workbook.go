package table

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// Workbook sheet names of the external metadata file.
const (
	metaSheet    = "Meta"
	columnsSheet = "Columns"
)

// resolveMetaFile picks the workbook path: the argument, then
// meta["meta_file"], then the path the Table was constructed with.
func (t *Table) resolveMetaFile(metaFile string) string {
	if metaFile != "" {
		return metaFile
	}
	if path, ok := t.Meta.String(MetaKeyMetaFile); ok && path != "" {
		return path
	}
	return t.MetaFile
}

// WriteMetaWorkbook writes the Meta and Columns sheets to the external
// metadata workbook, creating parent directories as needed.
func (t *Table) WriteMetaWorkbook(metaFile string) error {
	metaFile = t.resolveMetaFile(metaFile)
	if metaFile == "" {
		return fmt.Errorf("no meta workbook path")
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", metaSheet)
	if err := f.SetSheetRow(metaSheet, "A1", &[]any{"key", "value"}); err != nil {
		return err
	}
	keys := make([]string, 0, len(t.Meta))
	for key := range t.Meta {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for i, key := range keys {
		value, err := EncodeValue(t.Meta[key])
		if err != nil {
			return err
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(metaSheet, cell, &[]any{key, value}); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(columnsSheet); err != nil {
		return err
	}
	header := make([]any, len(columnAttributes))
	for i, a := range columnAttributes {
		header[i] = a
	}
	if err := f.SetSheetRow(columnsSheet, "A1", &header); err != nil {
		return err
	}
	for i, cm := range t.Columns.All() {
		row := []any{
			cm.DBName, cm.InputName, cm.MCName, cm.ANName, cm.DType,
			cm.DisplayOrder, cm.MCTag, cm.MCDType,
			cm.OutputName, cm.OutputFormat, cm.OutputWidth,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(columnsSheet, cell, &row); err != nil {
			return err
		}
	}

	if dir := filepath.Dir(metaFile); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return f.SaveAs(metaFile)
}

// ReadMetaWorkbook loads Meta and Columns from the external metadata
// workbook. Meta values are best-effort JSON decoded.
func (t *Table) ReadMetaWorkbook(metaFile string) error {
	metaFile = t.resolveMetaFile(metaFile)
	f, err := excelize.OpenFile(metaFile)
	if err != nil {
		return fmt.Errorf("opening %s: %w", metaFile, err)
	}
	defer f.Close()

	metaRows, err := f.GetRows(metaSheet)
	if err != nil {
		return fmt.Errorf("reading %s sheet: %w", metaSheet, err)
	}
	meta := Meta{}
	for i, row := range metaRows {
		if i == 0 || len(row) == 0 {
			continue
		}
		value := ""
		if len(row) > 1 {
			value = row[1]
		}
		meta[row[0]] = DecodeValue(value)
	}

	colRows, err := f.GetRows(columnsSheet)
	if err != nil {
		return fmt.Errorf("reading %s sheet: %w", columnsSheet, err)
	}
	if len(colRows) == 0 {
		return fmt.Errorf("%s sheet has no header", columnsSheet)
	}
	cols := &ColumnSet{}
	header := colRows[0]
	for _, row := range colRows[1:] {
		if len(row) == 0 {
			continue
		}
		var cm ColumnMeta
		for j, attr := range header {
			if j < len(row) {
				setColumnAttr(&cm, attr, row[j])
			}
		}
		cols.Append(cm)
	}

	t.Meta = meta
	t.Columns = cols
	t.MetaFile = metaFile
	return nil
}

// setColumnAttr assigns one workbook cell to its ColumnMeta field.
func setColumnAttr(cm *ColumnMeta, attr, cell string) {
	switch attr {
	case "db_name":
		cm.DBName = cell
	case "input_name":
		cm.InputName = cell
	case "mc_name":
		cm.MCName = cell
	case "an_name":
		cm.ANName = cell
	case "dtype":
		cm.DType = cell
	case "mc_display_order":
		if i, err := strconv.Atoi(cell); err == nil {
			cm.DisplayOrder = i
		}
	case "mc_tag":
		cm.MCTag = cell
	case "mc_dtypes":
		cm.MCDType = cell
	case "output_name":
		cm.OutputName = cell
	case "output_format":
		cm.OutputFormat = cell
	case "output_width":
		if w, err := strconv.ParseFloat(cell, 64); err == nil {
			cm.OutputWidth = w
		}
	}
}
