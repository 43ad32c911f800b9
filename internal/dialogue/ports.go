package dialogue

import "context"

// Appointment is what the engine hands to the booking collaborator.
type Appointment struct {
	PatientEmail string
	DoctorEmail  string
	DoctorName   string
	TimeSlot     string
}

// Booker confirms an appointment. A nil error means both parties were notified.
type Booker interface {
	BookAppointment(ctx context.Context, appt Appointment) error
}

// Answerer answers a free-text medical question. It never fails; on error it
// returns an apology.
type Answerer interface {
	Answer(ctx context.Context, question string) string
}
