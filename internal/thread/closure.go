// internal/thread/closure.go
package thread

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"stock-board/internal/utils"
)

// ReplyResolver yields a comment's direct nested-reply ids, in stored order.
// The comment repository implements it; tests use in-memory maps.
type ReplyResolver interface {
	RepliesOf(ctx context.Context, commentID primitive.ObjectID) ([]primitive.ObjectID, error)
}

// Closure computes the full ordered comment thread of a post: a breadth-first
// traversal from the post's direct comment ids, visiting each reachable
// comment exactly once in insertion order. The result is what the post's
// all_comment_ids field must equal.
//
// A revisited id means the stored graph is not a forest; that is reported as
// CYCLE_DETECTED rather than silently truncated, since persisting the partial
// closure would corrupt all_comment_ids.
func Closure(ctx context.Context, resolver ReplyResolver, directIDs []primitive.ObjectID) ([]primitive.ObjectID, error) {
	seen := make(map[primitive.ObjectID]bool, len(directIDs))
	queue := make([]primitive.ObjectID, 0, len(directIDs))
	closure := make([]primitive.ObjectID, 0, len(directIDs))

	for _, id := range directIDs {
		if seen[id] {
			return nil, utils.NewCycleDetectedError(id.Hex())
		}
		seen[id] = true
		queue = append(queue, id)
		closure = append(closure, id)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		replies, err := resolver.RepliesOf(ctx, current)
		if err != nil {
			return nil, err
		}
		for _, id := range replies {
			if seen[id] {
				return nil, utils.NewCycleDetectedError(id.Hex())
			}
			seen[id] = true
			queue = append(queue, id)
			closure = append(closure, id)
		}
	}

	return closure, nil
}
