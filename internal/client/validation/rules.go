package validation

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/bienestar/internal/client/models"
)

// Field names, shared by forms, rule sets and the error maps they produce.
const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldAddress     = "address"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldDuration    = "duration"
	FieldClient      = "client"
	FieldService     = "service"
	FieldDate        = "date"
	FieldTime        = "time"
	FieldStatus      = "status"
	FieldNotes       = "notes"
)

// Shape checks only: "2025-13-01" is a well-formed date here.
var (
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func ClientName(name string) string {
	switch {
	case IsBlank(name):
		return "name cannot be empty"
	case utf8.RuneCountInString(name) < 3:
		return "name must be at least 3 characters"
	}
	return ""
}

// ClientEmail is deliberately shallow: it wants an "@" and a ".".
func ClientEmail(email string) string {
	switch {
	case IsBlank(email):
		return "email cannot be empty"
	case !strings.Contains(email, "@") || !strings.Contains(email, "."):
		return "invalid email"
	}
	return ""
}

func ClientPhone(phone string) string {
	switch {
	case IsBlank(phone):
		return "phone cannot be empty"
	case utf8.RuneCountInString(phone) < 8:
		return "phone must be at least 8 digits"
	}
	return ""
}

func ServiceName(name string) string {
	return ClientName(name)
}

func ServiceDescription(description string) string {
	if IsBlank(description) {
		return "description cannot be empty"
	}
	return ""
}

// ServicePrice validates the text typed into the price field.
func ServicePrice(text string) string {
	if IsBlank(text) {
		return "price cannot be empty"
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return "price must be a number"
	}
	return positivePrice(price)
}

// ServiceDuration validates the text typed into the duration field (minutes).
func ServiceDuration(text string) string {
	if IsBlank(text) {
		return "duration cannot be empty"
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return "duration must be a whole number of minutes"
	}
	return positiveDuration(minutes)
}

func positivePrice(price float64) string {
	if price <= 0 {
		return "price must be greater than zero"
	}
	return ""
}

func positiveDuration(minutes int) string {
	if minutes <= 0 {
		return "duration must be greater than zero"
	}
	return ""
}

func AppointmentClient(clientID int64) string {
	if clientID == 0 {
		return "a client must be selected"
	}
	return ""
}

func AppointmentService(serviceID int64) string {
	if serviceID == 0 {
		return "a service must be selected"
	}
	return ""
}

func AppointmentDate(date string) string {
	switch {
	case IsBlank(date):
		return "date cannot be empty"
	case !datePattern.MatchString(date):
		return "invalid date format (use YYYY-MM-DD)"
	}
	return ""
}

func AppointmentTime(t string) string {
	switch {
	case IsBlank(t):
		return "time cannot be empty"
	case !timePattern.MatchString(t):
		return "invalid time format (use HH:MM)"
	}
	return ""
}

func AppointmentStatus(status models.AppointmentStatus) string {
	if !status.Valid() {
		return "unknown status"
	}
	return ""
}

// ValidateClient runs every client rule against a complete record.
func ValidateClient(c models.Client) *Validator {
	return NewValidator().
		Check(FieldName, ClientName(c.Name)).
		Check(FieldEmail, ClientEmail(c.Email)).
		Check(FieldPhone, ClientPhone(c.Phone))
}

func ValidateService(s models.Service) *Validator {
	return NewValidator().
		Check(FieldName, ServiceName(s.Name)).
		Check(FieldDescription, ServiceDescription(s.Description)).
		Check(FieldPrice, positivePrice(s.Price)).
		Check(FieldDuration, positiveDuration(s.Duration))
}

func ValidateAppointment(a models.Appointment) *Validator {
	return NewValidator().
		Check(FieldClient, AppointmentClient(a.ClientID)).
		Check(FieldService, AppointmentService(a.ServiceID)).
		Check(FieldDate, AppointmentDate(a.Date)).
		Check(FieldTime, AppointmentTime(a.Time)).
		Check(FieldStatus, AppointmentStatus(a.Status))
}

func ValidateInvoice(i models.Invoice) *Validator {
	v := NewValidator().Check(FieldClient, AppointmentClient(i.ClientID))
	if i.Total <= 0 {
		v.Check("total", "total must be greater than zero")
	}
	return v.Check(FieldDate, AppointmentDate(i.Date))
}
