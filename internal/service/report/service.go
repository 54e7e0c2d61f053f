package report

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/vitalrec/health-api/internal/model"
	"github.com/vitalrec/health-api/internal/repository"
	apperrors "github.com/vitalrec/health-api/pkg/errors"
	"github.com/vitalrec/health-api/pkg/history"
)

const qrImageSize = 256

// Service produces the emergency-access artifacts: a QR image pointing at
// the report-download URL, and the PDF report itself. The download endpoint
// is deliberately unauthenticated so first responders can scan the code
// without an account; the UID in the URL is the only secret.
type Service struct {
	patientRepo repository.PatientRepository
	recordRepo  repository.MedicalRecordRepository
	aptRepo     repository.AppointmentRepository
	baseURL     string
}

func NewService(
	patientRepo repository.PatientRepository,
	recordRepo repository.MedicalRecordRepository,
	aptRepo repository.AppointmentRepository,
	baseURL string,
) *Service {
	return &Service{
		patientRepo: patientRepo,
		recordRepo:  recordRepo,
		aptRepo:     aptRepo,
		baseURL:     baseURL,
	}
}

// ReportURL builds the download URL a QR code resolves to.
func (s *Service) ReportURL(patientUID string) string {
	return fmt.Sprintf("%s/api/v1/reports/%s/download", s.baseURL, patientUID)
}

// QRCode renders the report URL for the given patient as a PNG. The caller
// must already have verified the UID belongs to the requesting session.
func (s *Service) QRCode(patientUID string) ([]byte, error) {
	png, err := qrcode.Encode(s.ReportURL(patientUID), qrcode.Medium, qrImageSize)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to encode QR code: %w", err))
	}
	return png, nil
}

// GeneratePDF renders the emergency health report: patient identity,
// decoded medical records, and appointment history.
func (s *Service) GeneratePDF(ctx context.Context, patientUID string) ([]byte, error) {
	patient, err := s.patientRepo.GetByUID(ctx, patientUID)
	if err != nil {
		return nil, apperrors.NotFound("patient", err)
	}

	records, err := s.recordRepo.ListByPatient(ctx, patientUID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	appointments, err := s.aptRepo.ListByPatient(ctx, patientUID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return renderPDF(patient, records, appointments, time.Now())
}

func renderPDF(patient *model.Patient, records []*model.MedicalRecord, appointments []*model.Appointment, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Emergency Health Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Emergency Health Report")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 6, "Generated "+generatedAt.Format("2006-01-02 15:04"))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Patient")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	writeField(pdf, "UID", patient.UID)
	writeField(pdf, "Name", patient.Name)
	if patient.DateOfBirth != nil {
		writeField(pdf, "Date of birth", patient.DateOfBirth.Format("2006-01-02"))
	}
	writeField(pdf, "Gender", patient.Gender)
	writeField(pdf, "Contact", patient.ContactInfo)
	if patient.EmergencyContactName != "" {
		writeField(pdf, "Emergency contact", fmt.Sprintf("%s (%s) %s",
			patient.EmergencyContactName,
			patient.EmergencyContactRelationship,
			patient.EmergencyContactPhone,
		))
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Medical Records")
	pdf.Ln(8)
	if len(records) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.Cell(0, 6, "No records on file.")
		pdf.Ln(8)
	}
	for _, record := range records {
		symptoms, allergies := history.Decode(record.DiseaseHistory)

		pdf.SetFont("Helvetica", "B", 10)
		pdf.Cell(0, 6, record.RecordDate.Format("2006-01-02")+" - Dr. "+record.DoctorName)
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "", 10)
		writeField(pdf, "Symptoms & Diagnosis", symptoms)
		writeField(pdf, "Allergies", allergies)
		if record.Prescriptions != "" {
			writeField(pdf, "Prescriptions", record.Prescriptions)
		}
		pdf.Ln(3)
	}
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Appointments")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	for _, apt := range appointments {
		line := fmt.Sprintf("%s - %s (%s), Dr. %s",
			apt.AppointmentDate.Format("2006-01-02 15:04"),
			apt.Reason,
			apt.Status,
			apt.DoctorName,
		)
		pdf.MultiCell(0, 6, line, "", "L", false)
	}
	if len(appointments) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.Cell(0, 6, "No appointments on file.")
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to render PDF: %w", err))
	}
	return buf.Bytes(), nil
}

func writeField(pdf *gofpdf.Fpdf, label, value string) {
	if value == "" {
		return
	}
	pdf.MultiCell(0, 6, label+": "+value, "", "L", false)
}
