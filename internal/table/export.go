package table

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/neudata/neubase/pkg/types"
)

// ExportOptions controls the styled spreadsheet export.
type ExportOptions struct {
	// HeaderColor is the header band fill; a random pastel when empty.
	HeaderColor string
	PageHeader  string
	PageFooter  string
	FitToWidth  bool
	// Notes are free-text rows appended below the data block.
	Notes []string
	// WrapCols lists db_name columns whose non-null cells get text wrap.
	WrapCols []string
	// FreezeCols overrides the frozen column count; nil freezes one row
	// plus the index columns (or one column when there is no index).
	FreezeCols *int
}

const exportSheet = "Sheet1"

// ExportExcel renders the data as one styled workbook and returns the path
// written. The target directory comes from meta["output_dir"] or a default,
// timestamped; an unwritable target path is retried with a suffixed
// filename up to 20 attempts.
func (t *Table) ExportExcel(opts ExportOptions) (string, error) {
	if t.Data == nil {
		return "", types.ErrNoData
	}
	if t.Columns == nil {
		return "", types.ErrNoColumns
	}

	dir := "output/spreadsheets"
	if override, ok := t.Meta.String(MetaKeyOutputDir); ok && override != "" {
		dir = override
	}
	dir = fmt.Sprintf("%s_%s", dir, timestamp())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}

	path := writablePath(filepath.Join(dir, t.Name+".xlsx"))

	f := excelize.NewFile()
	defer f.Close()

	// Data block starts under the one-row header band.
	for i := 0; i < t.Data.NumRows(); i++ {
		row := t.Data.Row(i)
		cells := make([]any, len(row))
		for j, v := range row {
			cells[j] = v.Any()
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(exportSheet, cell, &cells); err != nil {
			return "", err
		}
	}

	color := opts.HeaderColor
	if color == "" {
		color = randomPastel()
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "top", WrapText: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		Border:    boxBorder(),
	})
	if err != nil {
		return "", err
	}
	indexStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "top"},
		Border:    boxBorder(),
	})
	if err != nil {
		return "", err
	}
	wrapStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true},
	})
	if err != nil {
		return "", err
	}

	names := t.Data.Names()
	for i, name := range names {
		colName, _ := excelize.ColumnNumberToName(i + 1)

		width := 20.0
		format := ""
		if cm, ok := t.Columns.ByDBName(name); ok {
			if cm.OutputWidth > 0 {
				width = cm.OutputWidth
			}
			format = cm.OutputFormat
			if format == "" {
				format = cm.DType
			}
		}
		if err := f.SetColWidth(exportSheet, colName, colName, width); err != nil {
			return "", err
		}

		var styleID int
		if i < t.Data.NumIndex() {
			styleID = indexStyle
		} else {
			styleID, err = columnStyle(f, format, wrapStyle)
			if err != nil {
				return "", err
			}
		}
		if styleID != 0 {
			if err := f.SetColStyle(exportSheet, colName, styleID); err != nil {
				return "", err
			}
		}

		headerCell, _ := excelize.CoordinatesToCellName(i+1, 1)
		title := name
		if cm, ok := t.Columns.ByDBName(name); ok && cm.OutputName != "" {
			title = cm.OutputName
		}
		if err := f.SetCellValue(exportSheet, headerCell, title); err != nil {
			return "", err
		}
		if err := f.SetCellStyle(exportSheet, headerCell, headerCell, headerStyle); err != nil {
			return "", err
		}
	}

	if opts.PageHeader != "" || opts.PageFooter != "" {
		if err := f.SetHeaderFooter(exportSheet, &excelize.HeaderFooterOptions{
			OddHeader: opts.PageHeader,
			OddFooter: opts.PageFooter,
		}); err != nil {
			return "", err
		}
	}
	if opts.FitToWidth {
		one, zero := 1, 0
		if err := f.SetPageLayout(exportSheet, &excelize.PageLayoutOptions{
			FitToWidth:  &one,
			FitToHeight: &zero,
		}); err != nil {
			return "", err
		}
	}

	freezeCols := t.Data.NumIndex()
	if freezeCols == 0 {
		freezeCols = 1
	}
	if opts.FreezeCols != nil {
		freezeCols = *opts.FreezeCols
	}
	topLeft, _ := excelize.CoordinatesToCellName(freezeCols+1, 2)
	if err := f.SetPanes(exportSheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      freezeCols,
		YSplit:      1,
		TopLeftCell: topLeft,
		ActivePane:  "bottomRight",
	}); err != nil {
		return "", err
	}

	for i, note := range opts.Notes {
		cell, _ := excelize.CoordinatesToCellName(1, t.Data.NumRows()+4+i)
		if err := f.SetCellValue(exportSheet, cell, note); err != nil {
			return "", err
		}
	}

	for _, wrapCol := range opts.WrapCols {
		pos := -1
		for i, name := range names {
			if name == wrapCol {
				pos = i
				break
			}
		}
		if pos < 0 {
			continue
		}
		col, _ := t.Data.Column(wrapCol)
		for i, v := range col.Values {
			if v.IsNull() {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(pos+1, i+2)
			if err := f.SetCellStyle(exportSheet, cell, cell, wrapStyle); err != nil {
				return "", err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// columnStyle returns the style for a data column by its output format,
// via the fixed priority table. Zero means no style.
func columnStyle(f *excelize.File, format string, wrapStyle int) (int, error) {
	lf := strings.ToLower(format)
	var numFmt string
	switch {
	case lf == "percent":
		numFmt = `0"%"`
	case lf == "dec_percent":
		numFmt = `0.0"%"`
	case lf == "r_percent":
		numFmt = "0%"
	case lf == "r_dec_percent":
		numFmt = "0.0%"
	case lf == "gbp":
		numFmt = `"£"#,##0`
	case lf == "wrap":
		return wrapStyle, nil
	case strings.HasPrefix(lf, "int"):
		numFmt = "#,##0"
	case strings.HasPrefix(lf, "float"):
		numFmt = "0.0"
	default:
		return 0, nil
	}
	return f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
}

func boxBorder() []excelize.Border {
	sides := []string{"left", "right", "top", "bottom"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{Type: side, Color: "000000", Style: 1}
	}
	return borders
}

// writablePath probes the target for writability, retrying with a suffixed
// filename up to 20 attempts. After the last attempt the path last tried is
// returned regardless.
func writablePath(path string) string {
	base := strings.TrimSuffix(path, ".xlsx")
	for attempt := 1; attempt <= 20; attempt++ {
		probe, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
		if err == nil {
			probe.Close()
			return path
		}
		fmt.Fprintf(os.Stderr, "neubase: %s not accessible\n", path)
		path = fmt.Sprintf("%s (%d).xlsx", base, attempt)
	}
	return path
}

// randomPastel picks a light RGB fill, each component in [170, 255].
func randomPastel() string {
	return fmt.Sprintf("%02X%02X%02X",
		170+rand.Intn(86), 170+rand.Intn(86), 170+rand.Intn(86))
}

// timestamp renders the current time compactly for artifact directories.
func timestamp() string {
	return time.Now().Format("20060102_150405")
}
