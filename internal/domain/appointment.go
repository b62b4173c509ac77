package domain

// Appointment statuses. UpdateStatus accepts any non-empty string; these are
// the values the storefront actually uses.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Appointment is a consultation booking placed through the storefront.
// Everything except Status is fixed at creation time.
type Appointment struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Date      string     `json:"date"`
	Time      string     `json:"time"`
	Notes     string     `json:"notes"`
	CartItems []CartItem `json:"cartItems"`
	Total     float64    `json:"total"`
	Status    string     `json:"status"`
	CreatedAt string     `json:"createdAt"`
}

// Clone returns a copy of the appointment that shares no memory with the
// receiver.
func (a Appointment) Clone() Appointment {
	out := a
	if a.CartItems == nil {
		return out
	}
	out.CartItems = make([]CartItem, len(a.CartItems))
	copy(out.CartItems, a.CartItems)
	return out
}

// CartItem is a jewelry piece the customer wants to discuss at the
// appointment.
type CartItem struct {
	Name     string  `json:"name"`
	Image    string  `json:"image"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// LineTotal returns price x quantity for this item.
func (i CartItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}

type BookAppointmentRequest struct {
	Name      string     `json:"name" binding:"required"`
	Email     string     `json:"email" binding:"required"`
	Phone     string     `json:"phone" binding:"required"`
	Date      string     `json:"date" binding:"required"`
	Time      string     `json:"time" binding:"required"`
	Notes     string     `json:"notes"`
	CartItems []CartItem `json:"cartItems"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
