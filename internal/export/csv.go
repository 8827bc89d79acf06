package export

import (
	"encoding/csv"
	"io"

	"github.com/medivisit/backend/internal/models"
)

// utf8BOM prefixes every CSV so spreadsheet applications decode the
// Korean text correctly.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func writeCSV(w io.Writer, headers []string, rows [][]string) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func VisitsCSV(w io.Writer, visits []models.Visit, employees []models.Employee) error {
	names := employeeNames(employees)
	rows := make([][]string, 0, len(visits))
	for _, v := range visits {
		rows = append(rows, visitRow(v, names))
	}
	return writeCSV(w, visitHeaders, rows)
}

func EmployeesCSV(w io.Writer, employees []models.Employee, groups []models.Group) error {
	labels := groupNames(groups)
	rows := make([][]string, 0, len(employees))
	for _, e := range employees {
		rows = append(rows, employeeRow(e, labels))
	}
	return writeCSV(w, employeeHeaders, rows)
}

func PerformanceCSV(w io.Writer, visits []models.Visit, employees []models.Employee, groups []models.Group) error {
	return writeCSV(w, performanceHeaders, performanceRows(visits, employees, groups))
}
