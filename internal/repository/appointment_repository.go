package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/Zaffira-Jewels/Zaffira-Backend/internal/domain"
)

var ErrAppointmentNotFound = errors.New("appointment not found")

// AppointmentRepository keeps appointments in process memory, in insertion
// order. Nothing survives a restart. The lock makes each operation atomic
// under concurrent requests; there is no cross-operation transaction, so a
// delete racing a status update on the same id is last-writer-wins.
type AppointmentRepository struct {
	mu           sync.RWMutex
	appointments []domain.Appointment
}

func NewAppointmentRepository() *AppointmentRepository {
	return &AppointmentRepository{
		appointments: make([]domain.Appointment, 0),
	}
}

// List returns a snapshot of all appointments in insertion order. Records
// are cloned, so mutating the snapshot (including its cart items) never
// touches the store.
func (r *AppointmentRepository) List(ctx context.Context) []domain.Appointment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Appointment, len(r.appointments))
	for i, appt := range r.appointments {
		out[i] = appt.Clone()
	}
	return out
}

// Append adds an appointment to the end of the collection. Uniqueness of the
// id is the caller's responsibility (ids are generated, not user-supplied).
func (r *AppointmentRepository) Append(ctx context.Context, appt domain.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.appointments = append(r.appointments, appt.Clone())
	return nil
}

// FindByID returns the first appointment with the given id.
func (r *AppointmentRepository) FindByID(ctx context.Context, id string) (domain.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, appt := range r.appointments {
		if appt.ID == id {
			return appt.Clone(), nil
		}
	}
	return domain.Appointment{}, ErrAppointmentNotFound
}

// UpdateStatus replaces the status of the appointment with the given id and
// returns the updated record. The new status is not checked against an
// allowed set. No other field is touched; in particular the total is never
// recomputed.
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id, status string) (domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.appointments {
		if r.appointments[i].ID == id {
			r.appointments[i].Status = status
			return r.appointments[i].Clone(), nil
		}
	}
	return domain.Appointment{}, ErrAppointmentNotFound
}

// Delete removes the first appointment with the given id.
func (r *AppointmentRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.appointments {
		if r.appointments[i].ID == id {
			r.appointments = append(r.appointments[:i], r.appointments[i+1:]...)
			return nil
		}
	}
	return ErrAppointmentNotFound
}
