package repository

import (
	"context"
	"sync"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"creatorconnect/internal/domain/repository"
	"creatorconnect/pkg/logger"
)

// listen attaches a snapshot listener to q. Each snapshot is decoded in full,
// passed through arrange (may be nil) and handed to fn from a single
// goroutine, so fn sees snapshots in commit order.
func listen[T any](ctx context.Context, q firestore.Query, resource string, arrange func([]*T), fn repository.SnapshotFunc[T]) repository.Unsubscribe {
	ctx, cancel := context.WithCancel(ctx)
	it := q.Snapshots(ctx)

	go func() {
		defer it.Stop()
		for {
			snap, err := it.Next()
			if err != nil {
				if ctx.Err() != nil || status.Code(err) == codes.Canceled {
					return
				}
				logger.Warn("Snapshot listener for %s stopped: %v", resource, err)
				fn(nil, mapError(err, resource, "listen to "+resource))
				return
			}

			items, err := decodeAll[T](snap.Documents)
			if err != nil {
				fn(nil, mapError(err, resource, "decode "+resource))
				return
			}
			if arrange != nil {
				arrange(items)
			}
			fn(items, nil)
		}
	}()

	var once sync.Once
	return func() {
		once.Do(cancel)
	}
}

func decodeAll[T any](iter *firestore.DocumentIterator) ([]*T, error) {
	docs, err := iter.GetAll()
	if err != nil {
		return nil, err
	}

	items := make([]*T, 0, len(docs))
	for _, doc := range docs {
		var item T
		if err := doc.DataTo(&item); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	return items, nil
}
