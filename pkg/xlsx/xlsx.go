package xlsx

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// defaultSheetName имя листа, которое excelize дает новой книге
const defaultSheetName = "Sheet1"

var (
	// ErrNotSpreadsheet возвращается, когда байты не удается открыть как книгу xlsx
	ErrNotSpreadsheet = errors.New("xlsx: file is not a valid spreadsheet")

	// ErrNoSheets возвращается, когда в книге нет ни одного листа
	ErrNoSheets = errors.New("xlsx: workbook has no sheets")
)

// Grid читает ПЕРВЫЙ лист книги в матрицу строк.
// Значения ячеек возвращаются в отформатированном виде, как их видит
// пользователь в редакторе таблиц. Хвостовые пустые ячейки строки
// excelize отбрасывает, поэтому длина строк может различаться.
func Grid(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotSpreadsheet, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("xlsx: read rows: %w", err)
	}

	return rows, nil
}

// Encode собирает книгу с единственным листом из готовых строк
// и возвращает ее содержимое. Строка i матрицы попадает в строку i+1 листа.
func Encode(sheetName string, rows [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if sheetName != defaultSheetName {
		if err := f.SetSheetName(defaultSheetName, sheetName); err != nil {
			return nil, fmt.Errorf("xlsx: rename sheet: %w", err)
		}
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, fmt.Errorf("xlsx: cell name for row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(sheetName, cell, &rows[i]); err != nil {
			return nil, fmt.Errorf("xlsx: write row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: write workbook: %w", err)
	}

	return buf.Bytes(), nil
}
