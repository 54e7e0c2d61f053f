package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalrec/health-api/internal/model"
	"github.com/vitalrec/health-api/pkg/history"
)

func TestReportURL(t *testing.T) {
	svc := NewService(nil, nil, nil, "https://vitalrec.example.com")
	assert.Equal(t,
		"https://vitalrec.example.com/api/v1/reports/uid-1/download",
		svc.ReportURL("uid-1"),
	)
}

func TestQRCodeProducesPNG(t *testing.T) {
	svc := NewService(nil, nil, nil, "https://vitalrec.example.com")

	png, err := svc.QRCode("uid-1")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}

func TestRenderPDF(t *testing.T) {
	patient := &model.Patient{
		UID:         "uid-1",
		Name:        "Jo Doe",
		Gender:      "other",
		ContactInfo: "jo@example.com",
	}
	records := []*model.MedicalRecord{
		{
			RecordDate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			DiseaseHistory: history.Encode("Seasonal flu", "Penicillin"),
			DoctorName:     "Smith",
		},
	}
	appointments := []*model.Appointment{
		{
			AppointmentDate: time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC),
			Reason:          "checkup",
			Status:          model.AppointmentStatusScheduled,
			DoctorName:      "Smith",
		},
	}

	pdf, err := renderPDF(patient, records, appointments, time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}
