package notification

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/Zaffira-Jewels/Zaffira-Backend/internal/domain"
)

var templateFuncs = template.FuncMap{
	"money":      formatMoney,
	"prettyDate": formatDate,
}

func formatMoney(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// formatDate renders a YYYY-MM-DD date as "January 2, 2006". The date field
// is a free-form string from the client, so anything unparseable is passed
// through as-is.
func formatDate(raw string) string {
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return raw
	}
	return t.Format("January 2, 2006")
}

var bookingNotificationTmpl = template.Must(template.New("bookingNotification").Funcs(templateFuncs).Parse(`<html>
  <body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
      <h1 style="color: #2c3e50; text-align: center;">New Appointment Booking</h1>

      <div style="background-color: #f8f9fa; padding: 20px; border-radius: 8px; margin: 20px 0;">
        <h2 style="color: #2c3e50; margin-top: 0;">Customer Information</h2>
        <p><strong>Name:</strong> {{.Name}}</p>
        <p><strong>Email:</strong> {{.Email}}</p>
        <p><strong>Phone:</strong> {{.Phone}}</p>
        <p><strong>Appointment Date:</strong> {{prettyDate .Date}}</p>
        <p><strong>Appointment Time:</strong> {{.Time}}</p>
        {{if .Notes}}<p><strong>Notes:</strong> {{.Notes}}</p>{{end}}
      </div>

      {{if .CartItems}}
      <div style="background-color: #fff; padding: 20px; border: 1px solid #ddd; border-radius: 8px;">
        <h2 style="color: #2c3e50; margin-top: 0;">Selected Items</h2>
        <table style="width: 100%; border-collapse: collapse;">
          <thead>
            <tr style="background-color: #f1f1f1;">
              <th style="padding: 10px; text-align: left;">Image</th>
              <th style="padding: 10px; text-align: left;">Product</th>
              <th style="padding: 10px; text-align: left;">Price</th>
              <th style="padding: 10px; text-align: left;">Qty</th>
              <th style="padding: 10px; text-align: left;">Total</th>
            </tr>
          </thead>
          <tbody>
            {{range .CartItems}}
            <tr>
              <td style="padding: 10px; border-bottom: 1px solid #eee;">
                <img src="{{.Image}}" alt="{{.Name}}" style="width: 50px; height: 50px; object-fit: cover; border-radius: 4px;">
              </td>
              <td style="padding: 10px; border-bottom: 1px solid #eee;">{{.Name}}</td>
              <td style="padding: 10px; border-bottom: 1px solid #eee;">{{money .Price}}</td>
              <td style="padding: 10px; border-bottom: 1px solid #eee;">{{.Quantity}}</td>
              <td style="padding: 10px; border-bottom: 1px solid #eee;">{{money .LineTotal}}</td>
            </tr>
            {{end}}
          </tbody>
        </table>
        <div style="text-align: right; margin-top: 20px; font-size: 18px;">
          <strong>Grand Total: {{money .Total}}</strong>
        </div>
      </div>
      {{else}}<p>No items selected for consultation.</p>{{end}}

      <div style="margin-top: 30px; padding: 15px; background-color: #e8f4fd; border-radius: 8px;">
        <p style="margin: 0; text-align: center; color: #2c3e50;">
          Please contact the customer to confirm the appointment details.
        </p>
      </div>
    </div>
  </body>
</html>`))

var bookingConfirmationTmpl = template.Must(template.New("bookingConfirmation").Funcs(templateFuncs).Parse(`<html>
  <body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
      <h1 style="color: #2c3e50;">Thank You for Your Booking!</h1>
      <p>Dear {{.Name}},</p>
      <p>We have received your appointment booking for <strong>{{prettyDate .Date}}</strong> at <strong>{{.Time}}</strong>.</p>
      <p>We will contact you soon to confirm your appointment details.</p>
      <p>If you have any questions, please don&#39;t hesitate to reach out.</p>
      <br>
      <p>Best regards,<br>The Zaffira Jewels Team</p>
    </div>
  </body>
</html>`))

// RenderBookingNotification builds the internal notification email shown to
// the business when a new appointment comes in.
func RenderBookingNotification(appt domain.Appointment) (string, error) {
	var buf bytes.Buffer
	if err := bookingNotificationTmpl.Execute(&buf, appt); err != nil {
		return "", fmt.Errorf("render booking notification: %w", err)
	}
	return buf.String(), nil
}

// RenderBookingConfirmation builds the confirmation email sent back to the
// customer.
func RenderBookingConfirmation(appt domain.Appointment) (string, error) {
	var buf bytes.Buffer
	if err := bookingConfirmationTmpl.Execute(&buf, appt); err != nil {
		return "", fmt.Errorf("render booking confirmation: %w", err)
	}
	return buf.String(), nil
}
