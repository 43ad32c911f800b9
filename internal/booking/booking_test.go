package booking

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/carebridge/medchat/internal/notify"
	"github.com/carebridge/medchat/internal/observability/metrics"
	"github.com/carebridge/medchat/pkg/logging"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	mu     sync.Mutex
	sent   []notify.EmailMessage
	failTo string
}

func (r *recordingSender) Send(_ context.Context, msg notify.EmailMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if msg.To == r.failTo {
		return errors.New("mailbox unavailable")
	}
	r.sent = append(r.sent, msg)
	return nil
}

type recordingLedger struct {
	records []Request
	err     error
}

func (l *recordingLedger) Record(_ context.Context, req Request) error {
	l.records = append(l.records, req)
	return l.err
}

func validRequest() Request {
	return Request{
		PatientEmail: "john@example.com",
		DoctorEmail:  "somasekar@example.com",
		DoctorName:   "Dr. Somasekar",
		TimeSlot:     "10:00 AM",
	}
}

func quietLogger() *logging.Logger {
	return logging.NewWithWriter("error", &bytes.Buffer{})
}

func TestRequestValidate(t *testing.T) {
	assert.NoError(t, validRequest().Validate())

	for _, mutate := range []func(*Request){
		func(r *Request) { r.PatientEmail = "" },
		func(r *Request) { r.DoctorEmail = " " },
		func(r *Request) { r.DoctorName = "" },
		func(r *Request) { r.TimeSlot = "" },
	} {
		req := validRequest()
		mutate(&req)
		assert.ErrorIs(t, req.Validate(), ErrMissingFields)
	}
}

func TestServiceBookSendsBothEmails(t *testing.T) {
	sender := &recordingSender{}
	ledger := &recordingLedger{}
	m := metrics.NewChatMetrics(prometheus.NewRegistry())
	svc := NewService(sender, quietLogger(), WithLedger(ledger), WithMetrics(m))

	require.NoError(t, svc.Book(context.Background(), validRequest()))

	require.Len(t, sender.sent, 2)
	sort.Slice(sender.sent, func(i, j int) bool { return sender.sent[i].To < sender.sent[j].To })
	assert.Equal(t, "john@example.com", sender.sent[0].To)
	assert.Equal(t, "Appointment Confirmation", sender.sent[0].Subject)
	assert.Equal(t, "Your appointment with Dr. Somasekar at 10:00 AM has been confirmed.", sender.sent[0].Body)
	assert.Equal(t, "somasekar@example.com", sender.sent[1].To)
	assert.Equal(t, "New Appointment Booking", sender.sent[1].Subject)
	assert.Equal(t, "You have a new appointment at 10:00 AM with patient john@example.com.", sender.sent[1].Body)

	assert.Equal(t, []Request{validRequest()}, ledger.records)
}

func TestServiceBookFailsWhenEitherEmailFails(t *testing.T) {
	for _, failTo := range []string{"john@example.com", "somasekar@example.com"} {
		ledger := &recordingLedger{}
		svc := NewService(&recordingSender{failTo: failTo}, quietLogger(), WithLedger(ledger))

		err := svc.Book(context.Background(), validRequest())
		assert.Error(t, err, failTo)
		assert.Empty(t, ledger.records, failTo)
	}
}

func TestServiceBookRejectsMissingFields(t *testing.T) {
	sender := &recordingSender{}
	svc := NewService(sender, quietLogger())

	err := svc.Book(context.Background(), Request{PatientEmail: "john@example.com"})
	assert.ErrorIs(t, err, ErrMissingFields)
	assert.Empty(t, sender.sent)
}

func TestServiceBookIgnoresLedgerFailure(t *testing.T) {
	svc := NewService(&recordingSender{}, quietLogger(), WithLedger(&recordingLedger{err: errors.New("db down")}))
	assert.NoError(t, svc.Book(context.Background(), validRequest()))
}

func TestRepositoryRecord(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := newRepository(mock)
	fixed := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	req := validRequest()
	mock.ExpectExec("INSERT INTO appointments").
		WithArgs(pgxmock.AnyArg(), req.PatientEmail, req.DoctorEmail, req.DoctorName, req.TimeSlot, fixed).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	require.NoError(t, repo.Record(context.Background(), req))

	mock.ExpectExec("INSERT INTO appointments").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("constraint"))
	assert.ErrorContains(t, repo.Record(context.Background(), req), "constraint")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHandlerBook(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		failTo string
		status int
		want   string
	}{
		{
			name:   "success",
			body:   `{"patientEmail":"john@example.com","doctorEmail":"somasekar@example.com","doctorName":"Dr. Somasekar","timeSlot":"10:00 AM"}`,
			status: http.StatusOK,
			want:   `{"success":true,"message":"Appointment booked successfully"}`,
		},
		{
			name:   "missing fields",
			body:   `{"patientEmail":"john@example.com"}`,
			status: http.StatusBadRequest,
			want:   `{"error":"Missing required fields"}`,
		},
		{
			name:   "bad json",
			body:   `{`,
			status: http.StatusBadRequest,
			want:   `{"error":"Missing required fields"}`,
		},
		{
			name:   "send failure",
			body:   `{"patientEmail":"john@example.com","doctorEmail":"somasekar@example.com","doctorName":"Dr. Somasekar","timeSlot":"10:00 AM"}`,
			failTo: "somasekar@example.com",
			status: http.StatusInternalServerError,
			want:   `{"success":false,"error":"Failed to send confirmation emails"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&recordingSender{failTo: tt.failTo}, quietLogger())
			h := NewHandler(svc, quietLogger())

			req := httptest.NewRequest(http.MethodPost, "/api/book-appointment", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.Book(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, tt.want, rec.Body.String())
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}
