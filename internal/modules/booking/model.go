// README: Booking aggregate, status flow, and notification templates.
package booking

import (
	"fmt"
	"time"

	"airporter/internal/modules/pricing"
	"airporter/internal/types"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusAssigned  Status = "assigned"
	StatusCancelled Status = "cancelled"
)

// AllowedTransitions represents the booking state flow as code. The paid flag
// moves independently of status.
var AllowedTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusAssigned, StatusCancelled},
}

func CanTransition(from, to Status) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}

type Booking struct {
	ID                  string             `firestore:"id"`
	Number              int64              `firestore:"number"`
	Status              Status             `firestore:"status"`
	Direction           string             `firestore:"direction"`
	Origin              string             `firestore:"origin"`
	Destination         string             `firestore:"destination"`
	Passengers          int                `firestore:"passengers"`
	PickupAddress       string             `firestore:"pickupAddress"`
	DropoffAddress      string             `firestore:"dropoffAddress"`
	PickupTime          time.Time          `firestore:"pickupTime"`
	ContactName         string             `firestore:"contactName"`
	ContactPhone        string             `firestore:"contactPhone"`
	ContactEmail        string             `firestore:"contactEmail"`
	CustomerUID         string             `firestore:"customerUid"`
	Fare                types.Money        `firestore:"fare"`
	VehicleKey          string             `firestore:"vehicleKey"`
	DistanceRuleApplied bool               `firestore:"distanceRuleApplied"`
	Breakdown           *pricing.Breakdown `firestore:"breakdown,omitempty"`
	DriverID            string             `firestore:"driverId"`
	Paid                bool               `firestore:"paid"`
	PaymentRef          string             `firestore:"paymentRef"`
	PaymentLinkURL      string             `firestore:"paymentLinkUrl"`
	CancelReason        string             `firestore:"cancelReason"`
	CreatedAt           time.Time          `firestore:"createdAt"`
	UpdatedAt           time.Time          `firestore:"updatedAt"`
}

// receivedSMS is the text sent as soon as a booking lands.
func receivedSMS(b *Booking) string {
	msg := fmt.Sprintf("Airporter booking #%d received: %s to %s on %s for %d passenger(s), $%d %s.",
		b.Number, b.Origin, b.Destination,
		b.PickupTime.Format("Jan 2 3:04 PM"), b.Passengers,
		b.Fare.Amount, b.Fare.Currency)
	if b.PaymentLinkURL != "" {
		msg += " Pay here: " + b.PaymentLinkURL
	}
	return msg
}

func confirmedSMS(b *Booking) string {
	return fmt.Sprintf("Airporter booking #%d is confirmed for %s. See you then!",
		b.Number, b.PickupTime.Format("Jan 2 3:04 PM"))
}

func receivedEmailSubject(b *Booking) string {
	return fmt.Sprintf("Booking #%d received — %s to %s", b.Number, b.Origin, b.Destination)
}

func receivedEmailBody(b *Booking) string {
	return fmt.Sprintf(
		"Hi %s,\n\nWe received your shuttle booking #%d:\n\n"+
			"  Route: %s to %s\n  Pickup: %s\n  Passengers: %d\n  Fare: $%d %s\n\n"+
			"We will confirm your pickup shortly.\n",
		b.ContactName, b.Number, b.Origin, b.Destination,
		b.PickupTime.Format("Monday, Jan 2 2006 at 3:04 PM"),
		b.Passengers, b.Fare.Amount, b.Fare.Currency)
}
