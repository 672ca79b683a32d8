// internal/service/query_service.go
package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"stock-board/internal/models"
	"stock-board/internal/query"
	"stock-board/internal/sanitize"
	"stock-board/internal/utils"
)

// Query runs the uniform read pipeline for one record kind: normalize the raw
// parameters, fetch under the per-call deadline, report NotFound on an empty
// result, sanitize preserving store order. Validation failures surface before
// any store access.
func (s *Service) Query(ctx context.Context, kind models.RecordKind, params query.Params) ([]bson.M, error) {
	desc, err := query.Normalize(kind, params)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.deadline(ctx)
	defer cancel()

	// Exact-match single fetch; company overview is the only kind with one.
	if kind == models.KindCompanyOverview && params.Key != "" {
		record, err := s.store.FindOverview(ctx, params.Key)
		if err != nil {
			return nil, err
		}
		return []bson.M{sanitize.Record(record)}, nil
	}

	records, err := s.store.FindRecords(ctx, kind, desc)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		// Zero matches is a distinct outcome, never an empty success.
		return nil, utils.NewNotFoundError(notFoundLabel(kind))
	}

	if kind == models.KindNewsSentiment {
		return sanitize.NewsRecords(records), nil
	}
	return sanitize.Records(records), nil
}

func notFoundLabel(kind models.RecordKind) string {
	switch kind {
	case models.KindCompanyOverview:
		return "Company"
	case models.KindPost:
		return "Post"
	case models.KindComment:
		return "Comment"
	case models.KindUser:
		return "User"
	default:
		return "Data"
	}
}
