package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func appointmentWith(id string, status AppointmentStatus) Appointment {
	return Appointment{
		ID:            id,
		RequesterName: "Requester " + id,
		NationalID:    "12345678900",
		ServiceType:   ServiceTypeOther,
		PriorityClass: PriorityClassNormal,
		Status:        status,
	}
}

func TestBucketizePartitions(t *testing.T) {
	appointments := []Appointment{
		appointmentWith("a1", AppointmentStatusWaiting),
		appointmentWith("a2", AppointmentStatusInService),
		appointmentWith("a3", AppointmentStatusCompleted),
		appointmentWith("a4", AppointmentStatusCancelled),
		appointmentWith("a5", AppointmentStatusWaiting),
	}

	buckets := Bucketize(appointments)

	assert.Len(t, buckets.Waiting, 2)
	assert.Len(t, buckets.InService, 1)
	assert.Len(t, buckets.Completed, 1)
	assert.Len(t, buckets.Cancelled, 1)

	// Every appointment lands in exactly one bucket.
	total := len(buckets.Waiting) + len(buckets.InService) + len(buckets.Completed) + len(buckets.Cancelled)
	assert.Equal(t, len(appointments), total)

	seen := map[string]int{}
	for _, bucket := range [][]Appointment{buckets.Waiting, buckets.InService, buckets.Completed, buckets.Cancelled} {
		for _, a := range bucket {
			seen[a.ID]++
		}
	}
	for _, a := range appointments {
		assert.Equal(t, 1, seen[a.ID], "appointment %s duplicated or omitted", a.ID)
	}
}

func TestBucketizePreservesRegistryOrder(t *testing.T) {
	appointments := []Appointment{
		appointmentWith("w3", AppointmentStatusWaiting),
		appointmentWith("w1", AppointmentStatusWaiting),
		appointmentWith("w2", AppointmentStatusWaiting),
	}

	buckets := Bucketize(appointments)

	// No re-sort: ordering is a registry concern.
	assert.Equal(t, "w3", buckets.Waiting[0].ID)
	assert.Equal(t, "w1", buckets.Waiting[1].ID)
	assert.Equal(t, "w2", buckets.Waiting[2].ID)
}

func TestBucketizeEmpty(t *testing.T) {
	buckets := Bucketize(nil)

	assert.NotNil(t, buckets.Waiting)
	assert.Empty(t, buckets.Waiting)
	assert.Empty(t, buckets.InService)
	assert.Empty(t, buckets.Completed)
	assert.Empty(t, buckets.Cancelled)
}
