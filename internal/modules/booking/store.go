// README: Booking store backed by Firestore; transitions run inside transactions.
package booking

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const bookingsCollection = "bookings"

type Store struct {
	client *firestore.Client
}

func NewStore(client *firestore.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Create(ctx context.Context, b *Booking) error {
	_, err := s.client.Collection(bookingsCollection).Doc(b.ID).Create(ctx, b)
	if err != nil {
		return fmt.Errorf("creating booking %s: %w", b.ID, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (*Booking, error) {
	snap, err := s.client.Collection(bookingsCollection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading booking %s: %w", id, err)
	}
	var b Booking
	if err := snap.DataTo(&b); err != nil {
		return nil, fmt.Errorf("decoding booking %s: %w", id, err)
	}
	return &b, nil
}

// Mutate applies fn to the booking inside a Firestore transaction and writes
// the result back. fn returning an error aborts the write; the error is
// surfaced unchanged. Returns the booking as written.
func (s *Store) Mutate(ctx context.Context, id string, fn func(*Booking) error) (*Booking, error) {
	doc := s.client.Collection(bookingsCollection).Doc(id)
	var out Booking
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(doc)
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		var b Booking
		if err := snap.DataTo(&b); err != nil {
			return fmt.Errorf("decoding booking %s: %w", id, err)
		}
		if err := fn(&b); err != nil {
			return err
		}
		out = b
		return tx.Set(doc, &b)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
