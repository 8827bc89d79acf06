package store

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/medivisit/backend/internal/models"
)

// Demo dataset used when no stored state exists or it cannot be read.

var seedHospitals = []string{
	"서울 중앙병원", "미래 치과", "행복 한의원", "연세 정형외과",
	"강남 피부과", "우리 내과", "서울 안과", "미소 치과",
	"건강 한의원", "365 의원", "푸른 소아과", "현대 병원",
}

var seedContacts = []string{"김원장", "박상무", "이과장", "정원장", "최실장", "한부장"}

var seedLocations = []string{
	"서울시 강남구", "서울시 서초구", "서울시 송파구", "서울시 마포구",
	"서울시 영등포구", "서울시 종로구", "서울시 강서구", "서울시 용산구",
}

func seedDataset() ([]models.Employee, []models.Group, []models.Visit) {
	groups := []models.Group{
		{ID: "G1", Name: "강남지점", CreatedAt: time.Now().UTC()},
		{ID: "G2", Name: "서초지점", CreatedAt: time.Now().UTC()},
		{ID: "G3", Name: "송파지점", CreatedAt: time.Now().UTC()},
	}

	employees := []models.Employee{
		{ID: "user", Name: "홍길동", Phone: "010-1234-5678", Email: "user@example.com", Region: "강남구", Position: "대리", Password: "password", GroupID: "G1"},
		{ID: "E2", Name: "김영희", Phone: "010-2345-6789", Region: "서초구", Position: "과장", Password: "password", GroupID: "G2"},
		{ID: "E3", Name: "이철수", Phone: "010-3456-7890", Region: "송파구", Position: "사원", Password: "password", GroupID: "G3"},
		{ID: "E4", Name: "박지영", Phone: "010-4567-8901", Region: "마포구", Position: "차장", Password: "password", GroupID: "G1"},
		{ID: "E5", Name: "최민준", Phone: "010-5678-9012", Region: "영등포구", Position: "대리", Password: "password", GroupID: "G2"},
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	visits := make([]models.Visit, 0, 40)
	for i := 0; i < 40; i++ {
		start := randomVisitStart(rng)
		status := models.ContractNone
		var amount int64
		switch p := rng.Float64(); {
		case p < 0.3:
			status = models.ContractCompleted
		case p < 0.5:
			status = models.ContractPending
		}
		if status != models.ContractNone {
			amount = int64(100+rng.Intn(900)) * 10000
		}

		hospitalType := models.HospitalTypeExisting
		if rng.Float64() < 0.4 {
			hospitalType = models.HospitalTypeNew
		}

		visits = append(visits, models.Visit{
			ID:             fmt.Sprintf("V%d-%03d", start.UnixMilli(), i),
			HospitalName:   seedHospitals[rng.Intn(len(seedHospitals))],
			HospitalType:   hospitalType,
			ContactName:    seedContacts[rng.Intn(len(seedContacts))],
			ContactPhone:   fmt.Sprintf("010-%04d-%04d", rng.Intn(10000), rng.Intn(10000)),
			VisitStartTime: start,
			VisitEndTime:   start.Add(time.Duration(30+rng.Intn(90)) * time.Minute),
			ContractStatus: status,
			ContractAmount: amount,
			Location:       seedLocations[rng.Intn(len(seedLocations))],
			Latitude:       models.DefaultLatitude,
			Longitude:      models.DefaultLongitude,
			CreatedAt:      start,
			EmployeeID:     employees[rng.Intn(len(employees))].ID,
		})
	}

	return employees, groups, visits
}

// randomVisitStart picks a business-hours instant within the last 30 days.
func randomVisitStart(rng *rand.Rand) time.Time {
	day := time.Now().AddDate(0, 0, -rng.Intn(30))
	y, m, d := day.Date()
	return time.Date(y, m, d, 9+rng.Intn(9), rng.Intn(60), 0, 0, day.Location())
}
