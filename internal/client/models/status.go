package models

// AppointmentStatus is the lifecycle state of an appointment, using the
// backend's wire values.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "PENDIENTE"
	StatusConfirmed AppointmentStatus = "CONFIRMADA"
	StatusCompleted AppointmentStatus = "COMPLETADA"
	StatusCancelled AppointmentStatus = "CANCELADA"
)

// DefaultStatus is the status of a freshly drafted appointment.
const DefaultStatus = StatusPending

// AppointmentStatuses lists the accepted statuses in display order.
func AppointmentStatuses() []AppointmentStatus {
	return []AppointmentStatus{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}
}

func (s AppointmentStatus) Valid() bool {
	for _, known := range AppointmentStatuses() {
		if s == known {
			return true
		}
	}
	return false
}

// Label is the English name shown to users.
func (s AppointmentStatus) Label() string {
	switch s {
	case StatusPending:
		return "PENDING"
	case StatusConfirmed:
		return "CONFIRMED"
	case StatusCompleted:
		return "COMPLETED"
	case StatusCancelled:
		return "CANCELLED"
	default:
		return string(s)
	}
}
