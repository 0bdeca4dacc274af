// README: Quote store backed by Firestore.
package quote

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const quotesCollection = "quotes"

var ErrNotFound = errors.New("quote not found")

type Store struct {
	client *firestore.Client
}

func NewStore(client *firestore.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Create(ctx context.Context, q *Quote) error {
	_, err := s.client.Collection(quotesCollection).Doc(q.ID).Create(ctx, q)
	if err != nil {
		return fmt.Errorf("creating quote %s: %w", q.ID, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (*Quote, error) {
	snap, err := s.client.Collection(quotesCollection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading quote %s: %w", id, err)
	}
	var q Quote
	if err := snap.DataTo(&q); err != nil {
		return nil, fmt.Errorf("decoding quote %s: %w", id, err)
	}
	return &q, nil
}
