package viewmodel

import (
	"strconv"
	"strings"

	"github.com/dmitrijs2005/bienestar/internal/client/models"
	"github.com/dmitrijs2005/bienestar/internal/client/validation"
)

// Form is the editable draft behind a CRUD view-model. Setters validate the
// field they change; Validate checks every field and replaces the shown
// errors with the result. Valid answers the same question without touching
// the shown errors. Rules see the text exactly as typed.
//
// Forms are not synchronized themselves. Go through CRUD.UpdateForm and
// CRUD.ViewForm when the form belongs to a view-model.
type Form[T models.Entity] interface {
	Load(item T)
	Reset()
	Draft() T
	Validate() *validation.Validator
	Valid() bool
	Errors() map[string]string
}

// fieldErrors holds the message shown next to each field.
type fieldErrors struct {
	m map[string]string
}

func (e *fieldErrors) set(field, message string) {
	if e.m == nil {
		e.m = make(map[string]string)
	}
	if message == "" {
		delete(e.m, field)
		return
	}
	e.m[field] = message
}

func (e *fieldErrors) replace(v *validation.Validator) {
	e.m = v.Fields()
}

func (e *fieldErrors) clear() {
	e.m = nil
}

// valid reports whether v passed and no field currently shows an error.
func (e *fieldErrors) valid(v *validation.Validator) bool {
	return !v.HasErrors() && len(e.m) == 0
}

// Errors returns a copy of the current field errors.
func (e *fieldErrors) Errors() map[string]string {
	out := make(map[string]string, len(e.m))
	for k, v := range e.m {
		out[k] = v
	}
	return out
}

// FieldError returns the message for field, or "".
func (e *fieldErrors) FieldError(field string) string {
	return e.m[field]
}

type ClientForm struct {
	fieldErrors
	Name    string
	Email   string
	Phone   string
	Address string
}

var _ Form[models.Client] = (*ClientForm)(nil)

func NewClientForm() *ClientForm { return &ClientForm{} }

func (f *ClientForm) SetName(v string) {
	f.Name = v
	f.set(validation.FieldName, validation.ClientName(v))
}

func (f *ClientForm) SetEmail(v string) {
	f.Email = v
	f.set(validation.FieldEmail, validation.ClientEmail(v))
}

func (f *ClientForm) SetPhone(v string) {
	f.Phone = v
	f.set(validation.FieldPhone, validation.ClientPhone(v))
}

// SetAddress has no rule; the address is optional.
func (f *ClientForm) SetAddress(v string) {
	f.Address = v
}

func (f *ClientForm) Load(c models.Client) {
	f.Name, f.Email, f.Phone, f.Address = c.Name, c.Email, c.Phone, c.Address
	f.Validate()
}

func (f *ClientForm) Reset() {
	*f = ClientForm{}
}

func (f *ClientForm) Draft() models.Client {
	return models.Client{Name: f.Name, Email: f.Email, Phone: f.Phone, Address: f.Address}
}

func (f *ClientForm) Validate() *validation.Validator {
	v := validation.ValidateClient(f.Draft())
	f.replace(v)
	return v
}

func (f *ClientForm) Valid() bool {
	return f.valid(validation.ValidateClient(f.Draft()))
}

// ServiceForm keeps price and duration as typed so that "abc" can be
// reported instead of silently becoming zero.
type ServiceForm struct {
	fieldErrors
	Name        string
	Description string
	Price       string
	Duration    string
}

var _ Form[models.Service] = (*ServiceForm)(nil)

func NewServiceForm() *ServiceForm { return &ServiceForm{} }

func (f *ServiceForm) SetName(v string) {
	f.Name = v
	f.set(validation.FieldName, validation.ServiceName(v))
}

func (f *ServiceForm) SetDescription(v string) {
	f.Description = v
	f.set(validation.FieldDescription, validation.ServiceDescription(v))
}

func (f *ServiceForm) SetPrice(v string) {
	f.Price = v
	f.set(validation.FieldPrice, validation.ServicePrice(v))
}

func (f *ServiceForm) SetDuration(v string) {
	f.Duration = v
	f.set(validation.FieldDuration, validation.ServiceDuration(v))
}

func (f *ServiceForm) Load(s models.Service) {
	f.Name = s.Name
	f.Description = s.Description
	f.Price = strconv.FormatFloat(s.Price, 'f', -1, 64)
	f.Duration = strconv.Itoa(s.Duration)
	f.Validate()
}

func (f *ServiceForm) Reset() {
	*f = ServiceForm{}
}

// Draft parses the numeric fields; unparsable text becomes zero, which
// the service rules reject.
func (f *ServiceForm) Draft() models.Service {
	price, _ := strconv.ParseFloat(strings.TrimSpace(f.Price), 64)
	minutes, _ := strconv.Atoi(strings.TrimSpace(f.Duration))
	return models.Service{
		Name:        f.Name,
		Description: f.Description,
		Price:       price,
		Duration:    minutes,
	}
}

func (f *ServiceForm) rules() *validation.Validator {
	return validation.NewValidator().
		Check(validation.FieldName, validation.ServiceName(f.Name)).
		Check(validation.FieldDescription, validation.ServiceDescription(f.Description)).
		Check(validation.FieldPrice, validation.ServicePrice(f.Price)).
		Check(validation.FieldDuration, validation.ServiceDuration(f.Duration))
}

func (f *ServiceForm) Validate() *validation.Validator {
	v := f.rules()
	f.replace(v)
	return v
}

func (f *ServiceForm) Valid() bool {
	return f.valid(f.rules())
}

type AppointmentForm struct {
	fieldErrors
	ClientID  int64
	ServiceID int64
	Date      string
	Time      string
	Status    models.AppointmentStatus
	Notes     string

	// Membership in the loaded pickers; nil accepts any id.
	knownClient  func(int64) bool
	knownService func(int64) bool
}

var _ Form[models.Appointment] = (*AppointmentForm)(nil)

func NewAppointmentForm() *AppointmentForm {
	return &AppointmentForm{Status: models.DefaultStatus}
}

// SelectClient sets the client; 0 means none selected. An id missing from
// the loaded clients is kept but flagged.
func (f *AppointmentForm) SelectClient(id int64) {
	f.ClientID = id
	f.set(validation.FieldClient, f.clientRule(id))
}

func (f *AppointmentForm) SelectService(id int64) {
	f.ServiceID = id
	f.set(validation.FieldService, f.serviceRule(id))
}

func (f *AppointmentForm) clientRule(id int64) string {
	if msg := validation.AppointmentClient(id); msg != "" {
		return msg
	}
	return f.unknownClient(id)
}

func (f *AppointmentForm) serviceRule(id int64) string {
	if msg := validation.AppointmentService(id); msg != "" {
		return msg
	}
	return f.unknownService(id)
}

func (f *AppointmentForm) unknownClient(id int64) string {
	if id != 0 && f.knownClient != nil && !f.knownClient(id) {
		return msgClientUnavailable
	}
	return ""
}

func (f *AppointmentForm) unknownService(id int64) string {
	if id != 0 && f.knownService != nil && !f.knownService(id) {
		return msgServiceUnavailable
	}
	return ""
}

func (f *AppointmentForm) SetDate(v string) {
	f.Date = v
	f.set(validation.FieldDate, validation.AppointmentDate(v))
}

func (f *AppointmentForm) SetTime(v string) {
	f.Time = v
	f.set(validation.FieldTime, validation.AppointmentTime(v))
}

func (f *AppointmentForm) SetStatus(s models.AppointmentStatus) {
	f.Status = s
	f.set(validation.FieldStatus, validation.AppointmentStatus(s))
}

func (f *AppointmentForm) SetNotes(v string) {
	f.Notes = v
}

func (f *AppointmentForm) Load(a models.Appointment) {
	f.ClientID, f.ServiceID = a.ClientID, a.ServiceID
	f.Date, f.Time = a.Date, a.Time
	f.Status, f.Notes = a.Status, a.Notes
	if f.Status == "" {
		f.Status = models.DefaultStatus
	}
	f.Validate()
}

// Reset clears the draft and keeps the picker membership checks.
func (f *AppointmentForm) Reset() {
	*f = AppointmentForm{
		Status:       models.DefaultStatus,
		knownClient:  f.knownClient,
		knownService: f.knownService,
	}
}

func (f *AppointmentForm) Draft() models.Appointment {
	return models.Appointment{
		ClientID:  f.ClientID,
		ServiceID: f.ServiceID,
		Date:      f.Date,
		Time:      f.Time,
		Status:    f.Status,
		Notes:     f.Notes,
	}
}

func (f *AppointmentForm) rules() *validation.Validator {
	return validation.ValidateAppointment(f.Draft()).
		Check(validation.FieldClient, f.unknownClient(f.ClientID)).
		Check(validation.FieldService, f.unknownService(f.ServiceID))
}

func (f *AppointmentForm) Validate() *validation.Validator {
	v := f.rules()
	f.replace(v)
	return v
}

func (f *AppointmentForm) Valid() bool {
	return f.valid(f.rules())
}
