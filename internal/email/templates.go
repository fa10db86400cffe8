package email

import (
	"bytes"
	"html/template"
	"regexp"
	"time"

	"github.com/jbslegal/consultation-api/internal/model"
)

var nonDigit = regexp.MustCompile(`\D`)

type templateData struct {
	Name           string
	Email          string
	WhatsApp       string
	WhatsAppDigits string
	Date           string
	Time           string
	BookingID      string
}

func newTemplateData(b *model.Booking) templateData {
	return templateData{
		Name:           b.Name,
		Email:          b.Email,
		WhatsApp:       b.WhatsApp,
		WhatsAppDigits: nonDigit.ReplaceAllString(b.WhatsApp, ""),
		Date:           formatDateForEmail(b.Date),
		Time:           b.Time,
		BookingID:      b.ID,
	}
}

// formatDateForEmail renders a booking date as a long-form display
// date, falling back to the raw string if it does not parse.
func formatDateForEmail(date string) string {
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, date); err == nil {
			return t.Format("Monday, January 02, 2006")
		}
	}
	return date
}

var userConfirmationTmpl = template.Must(template.New("user_confirmation").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <style>
    body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; margin: 0; padding: 0; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background: linear-gradient(135deg, #c3a14b 0%, #d4af37 100%); padding: 30px; text-align: center; border-radius: 12px 12px 0 0; color: white; }
    .header h1 { margin: 0; font-size: 28px; }
    .content { background: #f8f9fa; padding: 40px 30px; border-radius: 0 0 12px 12px; }
    .booking-details { background: white; padding: 20px; border-left: 4px solid #c3a14b; margin: 20px 0; border-radius: 8px; }
    .detail-row { display: flex; justify-content: space-between; padding: 10px 0; border-bottom: 1px solid #eee; }
    .detail-row:last-child { border-bottom: none; }
    .detail-label { font-weight: 600; color: #333; }
    .detail-value { color: #666; }
    .footer { text-align: center; color: #999; font-size: 12px; margin-top: 30px; padding-top: 20px; border-top: 1px solid #eee; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>&#10003; Consultation Confirmed</h1>
    </div>
    <div class="content">
      <p>Hi {{.Name}},</p>
      <p>Thank you for scheduling a consultation with <strong>JBS Legal - Yurekh Solutions</strong>. Your booking has been confirmed!</p>
      <div class="booking-details">
        <h3 style="margin-top: 0; color: #333;">Booking Details</h3>
        <div class="detail-row">
          <span class="detail-label">Date:</span>
          <span class="detail-value">{{.Date}}</span>
        </div>
        <div class="detail-row">
          <span class="detail-label">Time:</span>
          <span class="detail-value">{{.Time}} IST</span>
        </div>
        <div class="detail-row">
          <span class="detail-label">Booking ID:</span>
          <span class="detail-value">{{.BookingID}}</span>
        </div>
      </div>
      <p style="color: #666;">We look forward to connecting with you. You will receive a meeting link via email before your scheduled consultation.</p>
      <p style="margin-top: 40px; color: #666;">
        Best regards,<br>
        <strong>JBS Legal - Yurekh Solutions</strong><br>
        <em>Expert Legal Solutions</em>
      </p>
    </div>
    <div class="footer">
      <p>&copy; 2025 JBS Legal. All rights reserved.</p>
    </div>
  </div>
</body>
</html>
`))

var adminNotificationTmpl = template.Must(template.New("admin_notification").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <style>
    body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .alert { background: #fff3cd; border-left: 4px solid #ffc107; padding: 15px; border-radius: 6px; margin-bottom: 20px; }
    .booking-card { background: white; border: 1px solid #ddd; border-radius: 8px; padding: 20px; margin: 20px 0; }
    .field { margin-bottom: 12px; }
    .field-label { font-weight: 600; color: #555; font-size: 12px; text-transform: uppercase; }
    .field-value { color: #333; font-size: 14px; margin-top: 4px; }
    .btn { display: inline-block; padding: 10px 20px; border-radius: 6px; text-decoration: none; font-weight: 600; margin-right: 10px; }
    .btn-primary { background: #c3a14b; color: white; }
    .btn-secondary { background: #25d366; color: white; }
  </style>
</head>
<body>
  <div class="container">
    <div class="alert">
      <h2 style="margin: 0 0 10px 0;">New Consultation Booking</h2>
      <p>A new consultation booking has been received.</p>
    </div>
    <div class="booking-card">
      <h3>Client Information</h3>
      <div class="field">
        <div class="field-label">Name</div>
        <div class="field-value">{{.Name}}</div>
      </div>
      <div class="field">
        <div class="field-label">Email</div>
        <div class="field-value"><a href="mailto:{{.Email}}">{{.Email}}</a></div>
      </div>
      <div class="field">
        <div class="field-label">WhatsApp</div>
        <div class="field-value"><a href="https://wa.me/{{.WhatsAppDigits}}">{{.WhatsApp}}</a></div>
      </div>
    </div>
    <div class="booking-card">
      <h3>Scheduled Consultation</h3>
      <div class="field">
        <div class="field-label">Date</div>
        <div class="field-value">{{.Date}}</div>
      </div>
      <div class="field">
        <div class="field-label">Time</div>
        <div class="field-value">{{.Time}} IST</div>
      </div>
      <div class="field">
        <div class="field-label">Booking ID</div>
        <div class="field-value">{{.BookingID}}</div>
      </div>
    </div>
    <div>
      <a href="mailto:{{.Email}}" class="btn btn-primary">Reply by Email</a>
      <a href="https://wa.me/{{.WhatsAppDigits}}" class="btn btn-secondary">Message on WhatsApp</a>
    </div>
    <p style="margin-top: 30px; color: #999; font-size: 12px; border-top: 1px solid #eee; padding-top: 20px;">
      This is an automated notification. Reply to client emails at info@jbslegal.com
    </p>
  </div>
</body>
</html>
`))

func renderUserConfirmation(b *model.Booking) (string, error) {
	var buf bytes.Buffer
	if err := userConfirmationTmpl.Execute(&buf, newTemplateData(b)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderAdminNotification(b *model.Booking) (string, error) {
	var buf bytes.Buffer
	if err := adminNotificationTmpl.Execute(&buf, newTemplateData(b)); err != nil {
		return "", err
	}
	return buf.String(), nil
}
