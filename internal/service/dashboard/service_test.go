package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalrec/health-api/internal/model"
	"github.com/vitalrec/health-api/internal/service/medication"
	"github.com/vitalrec/health-api/pkg/history"
)

var testNow = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

type stubPatientRepo struct {
	patient *model.Patient
	err     error
}

func (s *stubPatientRepo) CreateWithUser(ctx context.Context, user *model.User, patient *model.Patient) error {
	return nil
}
func (s *stubPatientRepo) GetByUID(ctx context.Context, uid string) (*model.Patient, error) {
	return s.patient, s.err
}
func (s *stubPatientRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Patient, error) {
	return s.patient, s.err
}
func (s *stubPatientRepo) Update(ctx context.Context, patient *model.Patient) error { return nil }
func (s *stubPatientRepo) ExistsUID(ctx context.Context, uid string) (bool, error) {
	return s.patient != nil, s.err
}

type stubRecordRepo struct {
	records []*model.MedicalRecord
	err     error
}

func (s *stubRecordRepo) CreateWithMedications(ctx context.Context, record *model.MedicalRecord, meds []*model.PrescribedMedication) error {
	return nil
}
func (s *stubRecordRepo) ListByPatient(ctx context.Context, patientUID string) ([]*model.MedicalRecord, error) {
	return s.records, s.err
}

type stubAppointmentRepo struct {
	appointments []*model.Appointment
	err          error
}

func (s *stubAppointmentRepo) Create(ctx context.Context, apt *model.Appointment) error { return nil }
func (s *stubAppointmentRepo) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return nil, errors.New("not found")
}
func (s *stubAppointmentRepo) Cancel(ctx context.Context, id uuid.UUID) error { return nil }
func (s *stubAppointmentRepo) ListByPatient(ctx context.Context, patientUID string) ([]*model.Appointment, error) {
	return s.appointments, s.err
}
func (s *stubAppointmentRepo) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Appointment, error) {
	return s.appointments, s.err
}

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

func record(symptoms, allergies string) *model.MedicalRecord {
	return &model.MedicalRecord{
		ID:             uuid.New(),
		PatientUID:     "uid-1",
		RecordDate:     testNow.AddDate(0, -1, 0),
		DiseaseHistory: history.Encode(symptoms, allergies),
	}
}

func newTestService(patients *stubPatientRepo, records *stubRecordRepo, apts *stubAppointmentRepo, meds *stubMedicationRepo) *Service {
	return NewService(patients, records, apts, medication.NewService(meds))
}

func TestBuildAggregatesAllergies(t *testing.T) {
	svc := newTestService(
		&stubPatientRepo{patient: &model.Patient{UID: "uid-1", Name: "Jo"}},
		&stubRecordRepo{records: []*model.MedicalRecord{
			record("Seasonal flu", "Peanuts, Shellfish"),
			record("Checkup", "peanuts"),
			record("Checkup", "None"),
		}},
		&stubAppointmentRepo{},
		&stubMedicationRepo{},
	)

	dash := svc.Build(context.Background(), "uid-1", testNow)
	// Dedup is exact-case: "peanuts" does not merge into "Peanuts", and
	// "None" is excluded entirely.
	assert.ElementsMatch(t, []string{"Peanuts", "Shellfish", "peanuts"}, dash.Allergies)
	assert.Empty(t, dash.Notice)
}

func TestBuildMatchesConditionKeywords(t *testing.T) {
	svc := newTestService(
		&stubPatientRepo{patient: &model.Patient{UID: "uid-1"}},
		&stubRecordRepo{records: []*model.MedicalRecord{
			record("Type 2 Diabetes Mellitus", "None"),
			record("Essential HYPERTENSION, stage 1", "None"),
			record("Sprained ankle", "None"),
			record("diabetes follow-up", "None"),
		}},
		&stubAppointmentRepo{},
		&stubMedicationRepo{},
	)

	dash := svc.Build(context.Background(), "uid-1", testNow)
	assert.ElementsMatch(t, []string{"Diabetes", "Hypertension"}, dash.Conditions)
}

func TestBuildSoonestDose(t *testing.T) {
	svc := newTestService(
		&stubPatientRepo{patient: &model.Patient{UID: "uid-1"}},
		&stubRecordRepo{},
		&stubAppointmentRepo{},
		&stubMedicationRepo{meds: []*model.PrescribedMedication{
			{Name: "Metformin", AlertTimes: "09:00", IsActive: true},
			{Name: "Lisinopril", AlertTimes: "11:00", IsActive: true},
		}},
	)

	dash := svc.Build(context.Background(), "uid-1", testNow)
	require.NotNil(t, dash.NextDose)
	assert.Equal(t, "Lisinopril", dash.NextDose.Medication.Name)
	assert.Equal(t, time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC), dash.NextDose.NextDose)
}

func TestBuildUpcomingAppointment(t *testing.T) {
	svc := newTestService(
		&stubPatientRepo{patient: &model.Patient{UID: "uid-1"}},
		&stubRecordRepo{},
		&stubAppointmentRepo{appointments: []*model.Appointment{
			{AppointmentDate: testNow.AddDate(0, 0, 7), Status: model.AppointmentStatusScheduled, Reason: "later"},
			{AppointmentDate: testNow.AddDate(0, 0, 2), Status: model.AppointmentStatusScheduled, Reason: "soonest"},
			{AppointmentDate: testNow.AddDate(0, 0, 1), Status: model.AppointmentStatusCancelled, Reason: "cancelled"},
			{AppointmentDate: testNow.AddDate(0, 0, -1), Status: model.AppointmentStatusScheduled, Reason: "past"},
		}},
		&stubMedicationRepo{},
	)

	dash := svc.Build(context.Background(), "uid-1", testNow)
	require.NotNil(t, dash.UpcomingAppointment)
	assert.Equal(t, "soonest", dash.UpcomingAppointment.Reason)
	assert.Len(t, dash.Appointments, 4)
}

func TestBuildDegradesOnStoreFailure(t *testing.T) {
	svc := newTestService(
		&stubPatientRepo{patient: &model.Patient{UID: "uid-1"}},
		&stubRecordRepo{err: errors.New("connection refused")},
		&stubAppointmentRepo{appointments: []*model.Appointment{
			{AppointmentDate: testNow.AddDate(0, 0, 2), Status: model.AppointmentStatusScheduled},
		}},
		&stubMedicationRepo{},
	)

	dash := svc.Build(context.Background(), "uid-1", testNow)
	// Degraded, not partial: nothing leaks through alongside the notice.
	assert.NotEmpty(t, dash.Notice)
	assert.Nil(t, dash.Patient)
	assert.Empty(t, dash.Appointments)
	assert.Nil(t, dash.UpcomingAppointment)
}
