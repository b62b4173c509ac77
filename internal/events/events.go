package events

import "time"

const (
	TypeAppointmentBooked        = "appointment.booked"
	TypeAppointmentStatusChanged = "appointment.status_changed"
	TypeAppointmentDeleted       = "appointment.deleted"
)

// AppointmentEvent is published on every appointment lifecycle change so
// downstream consumers (analytics, CRM sync) can follow along. Delivery is
// best-effort; the booking flow never fails on a publish error.
type AppointmentEvent struct {
	EventID       string    `json:"event_id"`
	Type          string    `json:"type"`
	AppointmentID string    `json:"appointment_id"`
	CustomerEmail string    `json:"customer_email"`
	Total         float64   `json:"total"`
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	RequestID     string    `json:"request_id,omitempty"`
}
