package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Zaffira-Jewels/Zaffira-Backend/internal/events"
	"github.com/Zaffira-Jewels/Zaffira-Backend/internal/notification"
	"github.com/Zaffira-Jewels/Zaffira-Backend/internal/repository"
	"github.com/Zaffira-Jewels/Zaffira-Backend/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type stubMailer struct {
	err  error
	sent int
}

func (m *stubMailer) Send(ctx context.Context, msg notification.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent++
	return nil
}

func newTestRouter(mailer *stubMailer) (*gin.Engine, *repository.AppointmentRepository) {
	gin.SetMode(gin.TestMode)

	repo := repository.NewAppointmentRepository()
	svc := service.NewAppointmentService(repo, mailer, events.NopProducer{}, zap.NewNop(), "owner@zaffira.com")
	h := NewAppointmentHandler(svc, zap.NewNop())

	router := gin.New()
	api := router.Group("/api")
	{
		api.POST("/book-appointment", h.BookAppointment)
		api.GET("/appointments", h.ListAppointments)
		api.PUT("/appointments/:id", h.UpdateAppointmentStatus)
		api.DELETE("/appointments/:id", h.DeleteAppointment)
		api.GET("/health", h.HealthCheck)
	}
	return router, repo
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func bookingPayload() map[string]any {
	return map[string]any{
		"name":  "A",
		"email": "a@x.com",
		"phone": "555",
		"date":  "2024-01-01",
		"time":  "10:00",
		"cartItems": []map[string]any{
			{"name": "Ring", "image": "/img/ring.jpg", "price": 100, "quantity": 2},
		},
	}
}

func TestBookAppointment_Success(t *testing.T) {
	mailer := &stubMailer{}
	router, repo := newTestRouter(mailer)

	w := doJSON(t, router, http.MethodPost, "/api/book-appointment", bookingPayload())
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success     bool   `json:"success"`
		Message     string `json:"message"`
		Appointment struct {
			ID     string  `json:"id"`
			Total  float64 `json:"total"`
			Status string  `json:"status"`
		} `json:"appointment"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success {
		t.Fatal("expected success=true")
	}
	if resp.Appointment.Total != 200 {
		t.Fatalf("expected total 200, got %v", resp.Appointment.Total)
	}
	if resp.Appointment.Status != "pending" {
		t.Fatalf("expected status pending, got %q", resp.Appointment.Status)
	}
	if mailer.sent != 2 {
		t.Fatalf("expected 2 emails sent, got %d", mailer.sent)
	}
	if len(repo.List(context.Background())) != 1 {
		t.Fatal("expected one stored appointment")
	}
}

func TestBookAppointment_MissingFields(t *testing.T) {
	router, repo := newTestRouter(&stubMailer{})

	for _, field := range []string{"name", "email", "phone", "date", "time"} {
		payload := bookingPayload()
		delete(payload, field)

		w := doJSON(t, router, http.MethodPost, "/api/book-appointment", payload)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("missing %s: expected 400, got %d", field, w.Code)
		}

		payload = bookingPayload()
		payload[field] = ""
		w = doJSON(t, router, http.MethodPost, "/api/book-appointment", payload)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("empty %s: expected 400, got %d", field, w.Code)
		}
	}

	if got := len(repo.List(context.Background())); got != 0 {
		t.Fatalf("invalid bookings must not be stored, found %d", got)
	}
}

func TestBookAppointment_WhitespaceFieldsAccepted(t *testing.T) {
	router, repo := newTestRouter(&stubMailer{})

	// Presence is truthiness, not content: only the empty string is
	// rejected, so whitespace-only fields book successfully.
	payload := bookingPayload()
	payload["name"] = "   "

	w := doJSON(t, router, http.MethodPost, "/api/book-appointment", payload)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for whitespace-only name, got %d: %s", w.Code, w.Body.String())
	}

	list := repo.List(context.Background())
	if len(list) != 1 {
		t.Fatalf("expected the booking to be stored, found %d", len(list))
	}
	if list[0].Name != "   " {
		t.Fatalf("whitespace name not stored verbatim, got %q", list[0].Name)
	}
}

func TestBookAppointment_MailFailure(t *testing.T) {
	mailer := &stubMailer{err: errors.New("smtp: connection refused")}
	router, repo := newTestRouter(mailer)

	w := doJSON(t, router, http.MethodPost, "/api/book-appointment", bookingPayload())
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Success {
		t.Fatal("expected success=false")
	}
	if resp.Message != "Failed to book appointment. Please try again." {
		t.Fatalf("unexpected message %q", resp.Message)
	}

	// The record is stored despite the failed dispatch.
	if got := len(repo.List(context.Background())); got != 1 {
		t.Fatalf("expected the record to survive mail failure, found %d", got)
	}
}

func TestListAppointments(t *testing.T) {
	router, _ := newTestRouter(&stubMailer{})

	for i := 0; i < 2; i++ {
		if w := doJSON(t, router, http.MethodPost, "/api/book-appointment", bookingPayload()); w.Code != http.StatusOK {
			t.Fatalf("booking failed: %d", w.Code)
		}
	}

	w := doJSON(t, router, http.MethodGet, "/api/appointments", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Success      bool              `json:"success"`
		Appointments []json.RawMessage `json:"appointments"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || len(resp.Appointments) != 2 {
		t.Fatalf("expected 2 appointments, got %d", len(resp.Appointments))
	}
}

func TestUpdateAppointmentStatus(t *testing.T) {
	router, repo := newTestRouter(&stubMailer{})

	doJSON(t, router, http.MethodPost, "/api/book-appointment", bookingPayload())
	id := repo.List(context.Background())[0].ID

	w := doJSON(t, router, http.MethodPut, "/api/appointments/"+id, map[string]string{"status": "confirmed"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Appointment struct {
			Status string `json:"status"`
		} `json:"appointment"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Appointment.Status != "confirmed" {
		t.Fatalf("expected confirmed, got %q", resp.Appointment.Status)
	}
}

func TestUpdateAppointmentStatus_NotFound(t *testing.T) {
	router, _ := newTestRouter(&stubMailer{})

	w := doJSON(t, router, http.MethodPut, "/api/appointments/missing", map[string]string{"status": "confirmed"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestUpdateAppointmentStatus_MissingStatus(t *testing.T) {
	router, repo := newTestRouter(&stubMailer{})

	doJSON(t, router, http.MethodPost, "/api/book-appointment", bookingPayload())
	id := repo.List(context.Background())[0].ID

	w := doJSON(t, router, http.MethodPut, "/api/appointments/"+id, map[string]string{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestDeleteAppointment(t *testing.T) {
	router, repo := newTestRouter(&stubMailer{})

	doJSON(t, router, http.MethodPost, "/api/book-appointment", bookingPayload())
	doJSON(t, router, http.MethodPost, "/api/book-appointment", bookingPayload())
	id := repo.List(context.Background())[0].ID

	w := doJSON(t, router, http.MethodDelete, "/api/appointments/"+id, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	remaining := repo.List(context.Background())
	if len(remaining) != 1 {
		t.Fatalf("expected list to shrink by one, got %d", len(remaining))
	}
	if remaining[0].ID == id {
		t.Fatal("deleted appointment still listed")
	}
}

func TestDeleteAppointment_NotFound(t *testing.T) {
	router, _ := newTestRouter(&stubMailer{})

	w := doJSON(t, router, http.MethodDelete, "/api/appointments/missing", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestHealthCheck(t *testing.T) {
	router, _ := newTestRouter(&stubMailer{})

	w := doJSON(t, router, http.MethodGet, "/api/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "OK" {
		t.Fatalf("expected status OK, got %q", resp.Status)
	}
}
