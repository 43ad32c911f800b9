package conversation

import (
	"context"
	"errors"

	"github.com/carebridge/medchat/internal/booking"
	"github.com/carebridge/medchat/internal/dialogue"
)

// BookingAdapter lets the dialogue engine book through booking.Service.
type BookingAdapter struct {
	Service *booking.Service
}

func (a BookingAdapter) BookAppointment(ctx context.Context, appt dialogue.Appointment) error {
	if a.Service == nil {
		return errors.New("conversation: booking service not configured")
	}
	return a.Service.Book(ctx, booking.Request{
		PatientEmail: appt.PatientEmail,
		DoctorEmail:  appt.DoctorEmail,
		DoctorName:   appt.DoctorName,
		TimeSlot:     appt.TimeSlot,
	})
}

var _ dialogue.Booker = BookingAdapter{}
