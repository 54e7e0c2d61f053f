package medication

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalrec/health-api/internal/model"
)

type stubMedicationRepo struct {
	meds []*model.PrescribedMedication
	err  error
}

func (s *stubMedicationRepo) ListActiveForPatient(ctx context.Context, patientUID string, today time.Time) ([]*model.PrescribedMedication, error) {
	return s.meds, s.err
}

func (s *stubMedicationRepo) ListForRecord(ctx context.Context, recordID uuid.UUID) ([]*model.PrescribedMedication, error) {
	return nil, nil
}

func (s *stubMedicationRepo) ListAllActive(ctx context.Context, today time.Time) ([]*model.PrescribedMedication, error) {
	return s.meds, s.err
}

func med(name, alertTimes string) *model.PrescribedMedication {
	return &model.PrescribedMedication{
		ID:         uuid.New(),
		PatientUID: "uid-1",
		Name:       name,
		AlertTimes: alertTimes,
		IsActive:   true,
	}
}

func TestNextDoseSkipsMalformedEntries(t *testing.T) {
	svc := NewService(&stubMedicationRepo{})

	event := svc.NextDose(med("Metformin", "08:00,25:99,20:00"), testNow)
	require.NotNil(t, event)
	// 08:00 rolled to tomorrow, 20:00 is still today; 25:99 skipped.
	assert.Equal(t, time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC), event.NextDose)
}

func TestNextDoseNilWithoutValidTimes(t *testing.T) {
	svc := NewService(&stubMedicationRepo{})

	assert.Nil(t, svc.NextDose(med("Metformin", ""), testNow))
	assert.Nil(t, svc.NextDose(med("Metformin", "25:99"), testNow))
}

func TestSoonestDoseAcrossMedications(t *testing.T) {
	svc := NewService(&stubMedicationRepo{})

	meds := []*model.PrescribedMedication{
		med("Metformin", "09:00"),    // rolls to tomorrow 09:00
		med("Lisinopril", "14:00"),   // today 14:00
		med("Atorvastatin", "11:30"), // today 11:30
	}

	soonest := svc.SoonestDose(meds, testNow)
	require.NotNil(t, soonest)
	assert.Equal(t, "Atorvastatin", soonest.Medication.Name)
	assert.Equal(t, time.Date(2024, 1, 1, 11, 30, 0, 0, time.UTC), soonest.NextDose)
}

func TestListDue(t *testing.T) {
	repo := &stubMedicationRepo{meds: []*model.PrescribedMedication{
		med("Metformin", "10:03,18:00"),
		med("Lisinopril", "09:58"),
	}}
	svc := NewService(repo)

	due, err := svc.ListDue(context.Background(), "uid-1", testNow)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "Metformin", due[0].Name)
	assert.Equal(t, "10:03", due[0].DueTime)
}

func TestListDueStoreError(t *testing.T) {
	svc := NewService(&stubMedicationRepo{err: errors.New("connection refused")})

	_, err := svc.ListDue(context.Background(), "uid-1", testNow)
	assert.Error(t, err)
}
