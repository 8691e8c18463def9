package domain

// QueueBuckets is the display projection of a snapshot: one read-only
// partition per lifecycle status.
type QueueBuckets struct {
	Waiting   []Appointment `json:"aguardando"`
	InService []Appointment `json:"emAtendimento"`
	Completed []Appointment `json:"concluidos"`
	Cancelled []Appointment `json:"cancelados"`
}

// Bucketize partitions appointments by status, preserving the relative order
// supplied by the registry. Ordering is a registry concern; no re-sort here.
func Bucketize(appointments []Appointment) QueueBuckets {
	buckets := QueueBuckets{
		Waiting:   make([]Appointment, 0),
		InService: make([]Appointment, 0),
		Completed: make([]Appointment, 0),
		Cancelled: make([]Appointment, 0),
	}

	for _, appointment := range appointments {
		switch appointment.Status {
		case AppointmentStatusWaiting:
			buckets.Waiting = append(buckets.Waiting, appointment)
		case AppointmentStatusInService:
			buckets.InService = append(buckets.InService, appointment)
		case AppointmentStatusCompleted:
			buckets.Completed = append(buckets.Completed, appointment)
		case AppointmentStatusCancelled:
			buckets.Cancelled = append(buckets.Cancelled, appointment)
		}
	}

	return buckets
}
