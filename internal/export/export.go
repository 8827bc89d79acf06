// Package export renders the stored collections as spreadsheet downloads:
// CSV text (UTF-8 with a BOM so Excel renders Korean correctly) and xlsx
// workbooks with the same columns.
package export

import (
	"strconv"
	"time"

	"github.com/medivisit/backend/internal/models"
	"github.com/medivisit/backend/internal/report"
)

const timeLayout = "2006-01-02 15:04"

// Fixed header rows, one per export type.
var (
	visitHeaders = []string{
		"방문ID", "병원명", "병원구분", "담당자", "연락처", "방문시작시간", "방문종료시간",
		"상담내용", "계약상태", "계약금액", "위치", "위도", "경도", "생성일시", "직원ID", "직원명",
	}
	employeeHeaders = []string{
		"직원ID", "이름", "연락처", "이메일", "담당지역", "직급", "소속지점ID", "소속지점명",
	}
	performanceHeaders = []string{
		"직원ID", "직원명", "소속지점", "총방문수", "계약완료수", "전환율", "총계약금액",
	}
)

func hospitalTypeLabel(t string) string {
	switch t {
	case models.HospitalTypeNew:
		return "신규병원"
	case models.HospitalTypeExisting:
		return "기존병원"
	default:
		return t
	}
}

func contractStatusLabel(s string) string {
	switch s {
	case models.ContractNone:
		return "계약없음"
	case models.ContractPending:
		return "계약진행중"
	case models.ContractCompleted:
		return "계약완료"
	default:
		return s
	}
}

func employeeNames(employees []models.Employee) map[string]string {
	names := make(map[string]string, len(employees))
	for _, e := range employees {
		names[e.ID] = e.Name
	}
	return names
}

func groupNames(groups []models.Group) map[string]string {
	names := make(map[string]string, len(groups))
	for _, g := range groups {
		names[g.ID] = g.Name
	}
	return names
}

func visitRow(v models.Visit, names map[string]string) []string {
	amount := ""
	if v.ContractAmount > 0 {
		amount = strconv.FormatInt(v.ContractAmount, 10)
	}
	return []string{
		v.ID,
		v.HospitalName,
		hospitalTypeLabel(v.HospitalType),
		v.ContactName,
		v.ContactPhone,
		formatTime(v.VisitStartTime),
		formatTime(v.VisitEndTime),
		v.VisitNotes,
		contractStatusLabel(v.ContractStatus),
		amount,
		v.Location,
		strconv.FormatFloat(v.Latitude, 'f', -1, 64),
		strconv.FormatFloat(v.Longitude, 'f', -1, 64),
		formatTime(v.CreatedAt),
		v.EmployeeID,
		names[v.EmployeeID],
	}
}

func employeeRow(e models.Employee, groups map[string]string) []string {
	return []string{
		e.ID,
		e.Name,
		e.Phone,
		e.Email,
		e.Region,
		e.Position,
		e.GroupID,
		groups[e.GroupID],
	}
}

// performanceRows covers every employee, including those without any
// activity, aggregated over the full visit history.
func performanceRows(visits []models.Visit, employees []models.Employee, groups []models.Group) [][]string {
	byEmployee := map[string]report.Row{}
	for _, row := range report.Aggregate(visits, report.GroupByEmployee, employees, nil) {
		byEmployee[row.Key] = row
	}
	groupLabels := groupNames(groups)

	rows := make([][]string, 0, len(employees))
	for _, e := range employees {
		agg := byEmployee[e.ID]
		groupLabel := groupLabels[e.GroupID]
		if groupLabel == "" {
			groupLabel = "미지정"
		}
		rows = append(rows, []string{
			e.ID,
			e.Name,
			groupLabel,
			strconv.Itoa(agg.VisitCount),
			strconv.Itoa(agg.CompletedCount),
			strconv.FormatFloat(agg.ConversionRate, 'f', 1, 64),
			strconv.FormatInt(agg.TotalAmount, 10),
		})
	}
	return rows
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timeLayout)
}
