// internal/query/normalizer.go
package query

import (
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"stock-board/internal/models"
	"stock-board/internal/utils"
)

// Sort directions in document store convention.
const (
	Ascending  = 1
	Descending = -1
)

// DefaultLimit bounds a query when the client does not supply one.
const DefaultLimit = 10

// Params carries raw, untrusted request parameters.
type Params struct {
	Key       string // identifying filter value: symbol, id, post_id or user_id
	SortField string
	SortOrder string
	Limit     string
}

// Descriptor is a validated store-level query. Every field name in Filter and
// SortField has been checked before it gets here; handlers never build one
// directly from client input.
type Descriptor struct {
	Filter    bson.M
	SortField string
	Direction int
	Limit     int64
}

// Sort returns the sort document for the store, or nil when no sort was
// requested.
func (d *Descriptor) Sort() bson.D {
	if d.SortField == "" {
		return nil
	}
	return bson.D{{Key: d.SortField, Value: d.Direction}}
}

// Normalize validates raw parameters for a record kind and translates them
// into a store-level descriptor. It fails before any store access happens.
func Normalize(kind models.RecordKind, params Params) (*Descriptor, error) {
	if err := checkRequiredKey(kind, params); err != nil {
		return nil, err
	}

	if params.SortField != "" && !isSortable(kind, params.SortField) {
		return nil, utils.NewAppError(utils.ErrInvalidSortField,
			"Invalid sort_field: "+params.SortField, nil)
	}

	direction := Ascending
	switch params.SortOrder {
	case "", "asc":
		// default ascending
	case "desc":
		direction = Descending
	default:
		return nil, utils.NewAppError(utils.ErrInvalidSortOrder,
			"Invalid sort_order: "+params.SortOrder, nil)
	}

	limit := int64(DefaultLimit)
	if params.Limit != "" {
		parsed, err := strconv.Atoi(params.Limit)
		if err != nil {
			return nil, utils.NewAppError(utils.ErrInvalidLimit,
				"Invalid limit: "+params.Limit, err)
		}
		if parsed <= 0 {
			return nil, utils.NewAppError(utils.ErrInvalidLimit,
				"Limit must be positive: "+params.Limit, nil)
		}
		limit = int64(parsed)
	}

	filter, err := buildFilter(kind, params.Key)
	if err != nil {
		return nil, err
	}

	return &Descriptor{
		Filter:    filter,
		SortField: params.SortField,
		Direction: direction,
		Limit:     limit,
	}, nil
}

func checkRequiredKey(kind models.RecordKind, params Params) error {
	if params.Key != "" {
		return nil
	}
	// Company overview alone supports a pure sorted listing.
	if kind == models.KindCompanyOverview {
		if params.SortField != "" {
			return nil
		}
		return utils.NewMissingParameterError("symbol or sort_field")
	}
	return utils.NewMissingParameterError(FilterParam(kind))
}

func buildFilter(kind models.RecordKind, key string) (bson.M, error) {
	if key == "" {
		return bson.M{}, nil
	}

	field := filterFields[kind]
	if field == "_id" || field == "post_id" {
		oid, err := primitive.ObjectIDFromHex(key)
		if err != nil {
			return nil, utils.NewAppError(utils.ErrInvalidInput,
				"Invalid "+FilterParam(kind)+": "+key, err)
		}
		return bson.M{field: oid}, nil
	}
	return bson.M{field: key}, nil
}
