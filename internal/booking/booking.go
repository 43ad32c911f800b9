// Package booking confirms appointments by emailing the patient and the doctor.
package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/carebridge/medchat/internal/notify"
	"github.com/carebridge/medchat/internal/observability/metrics"
	"github.com/carebridge/medchat/pkg/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// ErrMissingFields is returned when a request lacks any of its four fields.
var ErrMissingFields = errors.New("booking: missing required fields")

// Request is one appointment to confirm.
type Request struct {
	PatientEmail string `json:"patientEmail"`
	DoctorEmail  string `json:"doctorEmail"`
	DoctorName   string `json:"doctorName"`
	TimeSlot     string `json:"timeSlot"`
}

func (r Request) Validate() error {
	if strings.TrimSpace(r.PatientEmail) == "" ||
		strings.TrimSpace(r.DoctorEmail) == "" ||
		strings.TrimSpace(r.DoctorName) == "" ||
		strings.TrimSpace(r.TimeSlot) == "" {
		return ErrMissingFields
	}
	return nil
}

// Ledger records confirmed appointments.
type Ledger interface {
	Record(ctx context.Context, req Request) error
}

// Service sends both confirmation emails and, when a ledger is set, records
// the appointment.
type Service struct {
	sender  notify.EmailSender
	ledger  Ledger
	metrics *metrics.ChatMetrics
	logger  *logging.Logger
	tracer  trace.Tracer
}

// Option customises a Service.
type Option func(*Service)

func WithLedger(l Ledger) Option {
	return func(s *Service) { s.ledger = l }
}

func WithMetrics(m *metrics.ChatMetrics) Option {
	return func(s *Service) { s.metrics = m }
}

func NewService(sender notify.EmailSender, logger *logging.Logger, opts ...Option) *Service {
	if sender == nil {
		panic("booking: email sender required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	s := &Service{
		sender: sender,
		logger: logger,
		tracer: otel.Tracer("medchat.internal.booking"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Book validates req and sends the patient and doctor emails concurrently.
// It fails if either send fails. Ledger errors are logged only.
func (s *Service) Book(ctx context.Context, req Request) error {
	if err := req.Validate(); err != nil {
		s.logger.Warn("booking: rejected request", "error", err)
		s.metrics.ObserveBooking("invalid")
		return err
	}

	ctx, span := s.tracer.Start(ctx, "booking.book")
	defer span.End()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.sender.Send(gctx, patientEmail(req))
	})
	g.Go(func() error {
		return s.sender.Send(gctx, doctorEmail(req))
	})
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		s.logger.Error("booking: failed to send confirmation emails", "error", err, "doctor", req.DoctorName)
		s.metrics.ObserveBooking("failed")
		return fmt.Errorf("booking: send confirmations: %w", err)
	}

	if s.ledger != nil {
		if err := s.ledger.Record(ctx, req); err != nil {
			span.RecordError(err)
			s.logger.Error("booking: failed to record appointment", "error", err, "doctor", req.DoctorName)
		}
	}

	s.logger.Info("booking: appointment confirmed", "doctor", req.DoctorName, "slot", req.TimeSlot)
	s.metrics.ObserveBooking("success")
	return nil
}

func patientEmail(req Request) notify.EmailMessage {
	return notify.EmailMessage{
		To:      req.PatientEmail,
		Subject: "Appointment Confirmation",
		Body:    fmt.Sprintf("Your appointment with %s at %s has been confirmed.", req.DoctorName, req.TimeSlot),
	}
}

func doctorEmail(req Request) notify.EmailMessage {
	return notify.EmailMessage{
		To:      req.DoctorEmail,
		ToName:  req.DoctorName,
		Subject: "New Appointment Booking",
		Body:    fmt.Sprintf("You have a new appointment at %s with patient %s.", req.TimeSlot, req.PatientEmail),
	}
}
