// README: Booking service; creation, confirmation, driver assignment, payment events.
package booking

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"math"
	"time"

	"airporter/internal/modules/pricing"
	"airporter/internal/types"
)

var (
	ErrBadRequest   = errors.New("bad request")
	ErrNotFound     = errors.New("booking not found")
	ErrInvalidState = errors.New("invalid state transition")
	ErrUnpriceable  = errors.New("no rate available for this trip")
)

// Fares is the pricing engine surface the booking service consumes.
type Fares interface {
	Calculate(ctx context.Context, req pricing.Request) (pricing.Result, error)
}

// NumberSource allocates sequential booking numbers.
type NumberSource interface {
	Next(ctx context.Context) (int64, error)
}

// Notifier pushes outbound messages. Delivery is fire-and-forget: enqueue
// failures are logged, never surfaced to the customer.
type Notifier interface {
	EnqueueSMS(ctx context.Context, to, body string) error
	EnqueueEmail(ctx context.Context, to, subject, body string) error
}

// PaymentLinker obtains a hosted checkout link for a booking.
type PaymentLinker interface {
	CreateLink(ctx context.Context, reference string, amount types.Money) (string, error)
}

type Service struct {
	store    *Store
	fares    Fares
	numbers  NumberSource
	payments PaymentLinker // nil disables payment links
	notifier Notifier
	currency string
}

func NewService(store *Store, fares Fares, numbers NumberSource, payments PaymentLinker, notifier Notifier, currency string) *Service {
	return &Service{
		store:    store,
		fares:    fares,
		numbers:  numbers,
		payments: payments,
		notifier: notifier,
		currency: currency,
	}
}

type CreateCommand struct {
	Direction        pricing.Direction
	Origin           string
	Destination      string
	Passengers       int
	PickupAddress    string
	DropoffAddress   string
	PickupLatLng     *types.Point
	DropoffLatLng    *types.Point
	PickupTime       time.Time
	ContactName      string
	ContactPhone     string
	ContactEmail     string
	CustomerUID      string
	PreferredVehicle string
	PreferredRateKey string
}

func (cmd CreateCommand) validate() error {
	if cmd.Origin == "" || cmd.Destination == "" {
		return ErrBadRequest
	}
	if cmd.Passengers <= 0 {
		return ErrBadRequest
	}
	if cmd.PickupTime.IsZero() {
		return ErrBadRequest
	}
	if cmd.ContactPhone == "" && cmd.ContactEmail == "" {
		return ErrBadRequest
	}
	return nil
}

// Create prices the trip, allocates a booking number, persists the booking,
// then issues a payment link and fans out notifications. The booking is
// already durable before the link and notifications are attempted, so
// failures there degrade the experience but never lose the booking.
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Booking, error) {
	if err := cmd.validate(); err != nil {
		return nil, err
	}

	res, err := s.fares.Calculate(ctx, pricing.Request{
		Direction:          cmd.Direction,
		Origin:             cmd.Origin,
		Destination:        cmd.Destination,
		Passengers:         cmd.Passengers,
		PreferredVehicle:   cmd.PreferredVehicle,
		PreferredRateKey:   cmd.PreferredRateKey,
		OriginAddress:      cmd.PickupAddress,
		DestinationAddress: cmd.DropoffAddress,
		OriginLatLng:       cmd.PickupLatLng,
		DestinationLatLng:  cmd.DropoffLatLng,
	})
	if err != nil {
		return nil, err
	}
	if res.BaseRate == nil {
		return nil, ErrUnpriceable
	}

	number, err := s.numbers.Next(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	b := &Booking{
		ID:                  newID(),
		Number:              number,
		Status:              StatusPending,
		Direction:           string(cmd.Direction),
		Origin:              cmd.Origin,
		Destination:         cmd.Destination,
		Passengers:          cmd.Passengers,
		PickupAddress:       cmd.PickupAddress,
		DropoffAddress:      cmd.DropoffAddress,
		PickupTime:          cmd.PickupTime,
		ContactName:         cmd.ContactName,
		ContactPhone:        cmd.ContactPhone,
		ContactEmail:        cmd.ContactEmail,
		CustomerUID:         cmd.CustomerUID,
		Fare:                types.Money{Amount: int64(math.Round(*res.BaseRate)), Currency: s.currency},
		DistanceRuleApplied: res.DistanceRuleApplied,
		Breakdown:           res.Breakdown,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if res.VehicleKey != nil {
		b.VehicleKey = *res.VehicleKey
	}

	if err := s.store.Create(ctx, b); err != nil {
		return nil, err
	}

	if s.payments != nil {
		url, err := s.payments.CreateLink(ctx, b.ID, b.Fare)
		if err != nil {
			log.Printf("booking %s: payment link: %v", b.ID, err)
		} else {
			b.PaymentLinkURL = url
			if _, err := s.store.Mutate(ctx, b.ID, func(stored *Booking) error {
				stored.PaymentLinkURL = url
				return nil
			}); err != nil {
				log.Printf("booking %s: saving payment link: %v", b.ID, err)
			}
		}
	}

	s.notifyReceived(ctx, b)
	return b, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Booking, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) Confirm(ctx context.Context, id string) (*Booking, error) {
	b, err := s.transition(ctx, id, StatusConfirmed)
	if err != nil {
		return nil, err
	}
	if b.ContactPhone != "" {
		if err := s.notifier.EnqueueSMS(ctx, b.ContactPhone, confirmedSMS(b)); err != nil {
			log.Printf("booking %s: confirm sms: %v", b.ID, err)
		}
	}
	return b, nil
}

func (s *Service) AssignDriver(ctx context.Context, id, driverID string) (*Booking, error) {
	if driverID == "" {
		return nil, ErrBadRequest
	}
	return s.store.Mutate(ctx, id, func(b *Booking) error {
		if !CanTransition(b.Status, StatusAssigned) {
			return ErrInvalidState
		}
		b.Status = StatusAssigned
		b.DriverID = driverID
		b.UpdatedAt = time.Now()
		return nil
	})
}

// MarkPaid records a completed payment reported by the payment provider. It
// is idempotent and independent of the status flow; paying a cancelled
// booking is still recorded (refunds are handled manually).
func (s *Service) MarkPaid(ctx context.Context, id, paymentRef string) (*Booking, error) {
	return s.store.Mutate(ctx, id, func(b *Booking) error {
		b.Paid = true
		b.PaymentRef = paymentRef
		b.UpdatedAt = time.Now()
		return nil
	})
}

func (s *Service) Cancel(ctx context.Context, id, reason string) (*Booking, error) {
	return s.store.Mutate(ctx, id, func(b *Booking) error {
		if !CanTransition(b.Status, StatusCancelled) {
			return ErrInvalidState
		}
		b.Status = StatusCancelled
		b.CancelReason = reason
		b.UpdatedAt = time.Now()
		return nil
	})
}

func (s *Service) transition(ctx context.Context, id string, to Status) (*Booking, error) {
	return s.store.Mutate(ctx, id, func(b *Booking) error {
		if !CanTransition(b.Status, to) {
			return ErrInvalidState
		}
		b.Status = to
		b.UpdatedAt = time.Now()
		return nil
	})
}

func (s *Service) notifyReceived(ctx context.Context, b *Booking) {
	if b.ContactPhone != "" {
		if err := s.notifier.EnqueueSMS(ctx, b.ContactPhone, receivedSMS(b)); err != nil {
			log.Printf("booking %s: received sms: %v", b.ID, err)
		}
	}
	if b.ContactEmail != "" {
		if err := s.notifier.EnqueueEmail(ctx, b.ContactEmail, receivedEmailSubject(b), receivedEmailBody(b)); err != nil {
			log.Printf("booking %s: received email: %v", b.ID, err)
		}
	}
}

func newID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
