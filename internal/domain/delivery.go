package domain

import (
	"fmt"
	"time"

	"github.com/jaevor/go-nanoid"
)

// Delivery is created exactly once per transaction, only after that
// transaction reaches APPROVED. The existence of a delivery row for a
// transaction id is the idempotency fence against double-processing.
type Delivery struct {
	ID                    string
	TransactionID         string
	Address               string
	City                  string
	Department            string
	TrackingNumber        string
	EstimatedDeliveryDate time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

const (
	localDeliveryDays    = 2
	nationalDeliveryDays = 4
)

const trackAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewTrackingNumber generates a tracking reference in the form
// TRACK-<epochMillis>-<6 alnum upper>.
func NewTrackingNumber() string {
	gen, err := nanoid.CustomASCII(trackAlphabet, 6)
	if err != nil {
		panic(err)
	}
	return fmt.Sprintf("TRACK-%d-%s", time.Now().UnixMilli(), gen())
}

// EstimateDeliveryDate picks the ETA by the destination's delivery tier.
func EstimateDeliveryDate(city string, from time.Time) time.Time {
	days := nationalDeliveryDays
	if IsLocalCity(city) {
		days = localDeliveryDays
	}
	return from.AddDate(0, 0, days)
}
