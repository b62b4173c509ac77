package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Zaffira-Jewels/Zaffira-Backend/internal/domain"
	"github.com/Zaffira-Jewels/Zaffira-Backend/internal/events"
	"github.com/Zaffira-Jewels/Zaffira-Backend/internal/notification"
	"github.com/Zaffira-Jewels/Zaffira-Backend/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNotificationFailed marks a booking whose record was stored but whose
// confirmation emails could not be delivered. There is no rollback.
var ErrNotificationFailed = errors.New("notification dispatch failed")

type AppointmentService struct {
	repo          *repository.AppointmentRepository
	mailer        notification.Mailer
	producer      events.Producer
	logger        *zap.Logger
	businessEmail string
	nowFunc       func() time.Time
}

func NewAppointmentService(repo *repository.AppointmentRepository, mailer notification.Mailer, producer events.Producer, logger *zap.Logger, businessEmail string) *AppointmentService {
	return &AppointmentService{
		repo:          repo,
		mailer:        mailer,
		producer:      producer,
		logger:        logger,
		businessEmail: businessEmail,
		nowFunc:       time.Now,
	}
}

// BookAppointment builds the appointment record, stores it, publishes a
// lifecycle event, and sends the two booking emails (business notification
// with the customer CC'd, then the customer confirmation). The record stays
// stored even when a send fails; the caller gets ErrNotificationFailed
// alongside it.
func (s *AppointmentService) BookAppointment(ctx context.Context, req domain.BookAppointmentRequest, requestID string) (*domain.Appointment, error) {
	cartItems := req.CartItems
	if cartItems == nil {
		cartItems = make([]domain.CartItem, 0)
	}

	var total float64
	for _, item := range cartItems {
		total += item.LineTotal()
	}

	appt := domain.Appointment{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Date:      req.Date,
		Time:      req.Time,
		Notes:     req.Notes,
		CartItems: cartItems,
		Total:     total,
		Status:    domain.StatusPending,
		CreatedAt: s.nowFunc().UTC().Format(time.RFC3339),
	}

	if err := s.repo.Append(ctx, appt); err != nil {
		s.logger.Error("Failed to store appointment",
			zap.String("appointment_id", appt.ID),
			zap.Error(err))
		return nil, err
	}

	s.publishEvent(ctx, events.TypeAppointmentBooked, appt, requestID)

	if err := s.sendBookingEmails(ctx, appt); err != nil {
		// The appointment is already stored; the client is told the booking
		// failed, but a retry with the same details creates a new record.
		return &appt, fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}

	s.logger.Info("Appointment booked",
		zap.String("appointment_id", appt.ID),
		zap.String("email", appt.Email),
		zap.Float64("total", appt.Total))

	return &appt, nil
}

// ListAppointments returns every appointment in insertion order.
func (s *AppointmentService) ListAppointments(ctx context.Context) []domain.Appointment {
	return s.repo.List(ctx)
}

// UpdateStatus replaces the status of an appointment. Any non-empty status
// string is accepted.
func (s *AppointmentService) UpdateStatus(ctx context.Context, id, status, requestID string) (*domain.Appointment, error) {
	appt, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.TypeAppointmentStatusChanged, appt, requestID)

	s.logger.Info("Appointment status updated",
		zap.String("appointment_id", id),
		zap.String("status", status))

	return &appt, nil
}

// DeleteAppointment removes an appointment by id.
func (s *AppointmentService) DeleteAppointment(ctx context.Context, id, requestID string) error {
	appt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.publishEvent(ctx, events.TypeAppointmentDeleted, appt, requestID)

	s.logger.Info("Appointment deleted", zap.String("appointment_id", id))
	return nil
}

func (s *AppointmentService) sendBookingEmails(ctx context.Context, appt domain.Appointment) error {
	notificationHTML, err := notification.RenderBookingNotification(appt)
	if err != nil {
		return err
	}

	businessMsg := notification.Message{
		To:      []string{s.businessEmail},
		CC:      []string{appt.Email},
		Subject: fmt.Sprintf("New Appointment Booking - %s", appt.Name),
		HTML:    notificationHTML,
	}
	if err := s.mailer.Send(ctx, businessMsg); err != nil {
		s.logger.Error("Failed to send business notification",
			zap.String("appointment_id", appt.ID),
			zap.Error(err))
		return fmt.Errorf("business notification: %w", err)
	}

	confirmationHTML, err := notification.RenderBookingConfirmation(appt)
	if err != nil {
		return err
	}

	customerMsg := notification.Message{
		To:      []string{appt.Email},
		Subject: "Appointment Booking Confirmation",
		HTML:    confirmationHTML,
	}
	if err := s.mailer.Send(ctx, customerMsg); err != nil {
		s.logger.Error("Failed to send customer confirmation",
			zap.String("appointment_id", appt.ID),
			zap.Error(err))
		return fmt.Errorf("customer confirmation: %w", err)
	}

	return nil
}

// publishEvent emits a lifecycle event; a publish failure is logged and
// never surfaced to the client.
func (s *AppointmentService) publishEvent(ctx context.Context, eventType string, appt domain.Appointment, requestID string) {
	event := events.AppointmentEvent{
		EventID:       uuid.New().String(),
		Type:          eventType,
		AppointmentID: appt.ID,
		CustomerEmail: appt.Email,
		Total:         appt.Total,
		Status:        appt.Status,
		Timestamp:     s.nowFunc().UTC(),
		RequestID:     requestID,
	}
	if err := s.producer.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish event",
			zap.String("appointment_id", appt.ID),
			zap.String("type", eventType),
			zap.Error(err))
	}
}
