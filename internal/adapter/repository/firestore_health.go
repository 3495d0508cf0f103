package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

// FirestorePing reads at most one profile to prove the store is reachable.
func FirestorePing(client *firestore.Client) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		iter := client.Collection(usersCollection).Limit(1).Documents(ctx)
		defer iter.Stop()

		if _, err := iter.Next(); err != nil && err != iterator.Done {
			return mapError(err, "User", "ping store")
		}
		return nil
	}
}
