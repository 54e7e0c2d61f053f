package model

// PatientDashboard is the aggregated view-model rendered for a patient. It
// is produced in full or not at all: on any store failure the caller gets a
// default dashboard with Notice set, never a partially filled one.
type PatientDashboard struct {
	Patient             *Patient                `json:"patient,omitempty"`
	Allergies           []string                `json:"allergies"`
	Conditions          []string                `json:"conditions"`
	ActiveMedications   []*PrescribedMedication `json:"active_medications"`
	NextDose            *DoseEvent              `json:"next_dose,omitempty"`
	UpcomingAppointment *Appointment            `json:"upcoming_appointment,omitempty"`
	Records             []RecordView            `json:"records"`
	Appointments        []*Appointment          `json:"appointments"`
	Notice              string                  `json:"notice,omitempty"`
}
