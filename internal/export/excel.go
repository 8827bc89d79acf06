package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/medivisit/backend/internal/models"
)

func writeWorkbook(w io.Writer, sheet string, headers []string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	if err := setRow(f, sheet, 1, headers); err != nil {
		return err
	}
	for i, row := range rows {
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return f.Write(w)
}

func setRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("row %d: %w", rowNum, err)
	}
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return f.SetSheetRow(sheet, cell, &cells)
}

func VisitsExcel(w io.Writer, visits []models.Visit, employees []models.Employee) error {
	names := employeeNames(employees)
	rows := make([][]string, 0, len(visits))
	for _, v := range visits {
		rows = append(rows, visitRow(v, names))
	}
	return writeWorkbook(w, "방문기록", visitHeaders, rows)
}

func EmployeesExcel(w io.Writer, employees []models.Employee, groups []models.Group) error {
	labels := groupNames(groups)
	rows := make([][]string, 0, len(employees))
	for _, e := range employees {
		rows = append(rows, employeeRow(e, labels))
	}
	return writeWorkbook(w, "직원정보", employeeHeaders, rows)
}

func PerformanceExcel(w io.Writer, visits []models.Visit, employees []models.Employee, groups []models.Group) error {
	return writeWorkbook(w, "실적분석", performanceHeaders, performanceRows(visits, employees, groups))
}
