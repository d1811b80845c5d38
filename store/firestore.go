package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreStore adapts a Firestore client to the DocumentStore
// surface.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) Create(ctx context.Context, collection, id string, data map[string]interface{}) error {
	_, err := s.client.Collection(collection).Doc(id).Set(ctx, data)
	return wrapFirestoreErr(err)
}

func (s *FirestoreStore) Get(ctx context.Context, collection, id string) (map[string]interface{}, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		return nil, wrapFirestoreErr(err)
	}
	return snap.Data(), nil
}

func (s *FirestoreStore) Query(ctx context.Context, collection string, filters ...Filter) ([]Snapshot, error) {
	q := s.client.Collection(collection).Query
	for _, f := range filters {
		q = q.Where(f.Path, "==", f.Value)
	}
	docs, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, wrapFirestoreErr(err)
	}
	out := make([]Snapshot, 0, len(docs))
	for _, doc := range docs {
		out = append(out, Snapshot{ID: doc.Ref.ID, Data: doc.Data()})
	}
	return out, nil
}

func (s *FirestoreStore) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	updates := make([]firestore.Update, 0, len(fields))
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	_, err := s.client.Collection(collection).Doc(id).Update(ctx, updates)
	return wrapFirestoreErr(err)
}

func (s *FirestoreStore) Delete(ctx context.Context, collection, id string) error {
	_, err := s.client.Collection(collection).Doc(id).Delete(ctx)
	return wrapFirestoreErr(err)
}

func wrapFirestoreErr(err error) error {
	if err == nil {
		return nil
	}
	switch status.Code(err) {
	case codes.NotFound:
		return ErrNotFound
	case codes.Unavailable, codes.DeadlineExceeded:
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}
