// internal/database/market_repository.go
package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stock-board/internal/models"
	"stock-board/internal/utils"
)

// FindOverview fetches the single company overview record matching a symbol.
// This is the only kind with an exact-match lookup path; the _id is projected
// away to match the record's external shape.
func (m *MongoDB) FindOverview(ctx context.Context, symbol string) (bson.M, error) {
	opts := options.FindOne().SetProjection(bson.M{"_id": 0})

	var record bson.M
	err := m.Collection(models.KindCompanyOverview).
		FindOne(ctx, bson.M{"Symbol": symbol}, opts).
		Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewNotFoundError("Company")
	}
	if err != nil {
		return nil, utils.NewStoreUnavailableError(err)
	}

	return record, nil
}

// EnsureMarketIndexes creates the symbol-key indexes for the flat market
// collections. No uniqueness is enforced on the symbol field.
func (m *MongoDB) EnsureMarketIndexes(ctx context.Context) error {
	for _, kind := range models.MarketKinds {
		field := "symbol"
		switch kind {
		case models.KindCompanyOverview:
			field = "Symbol"
		case models.KindNewsSentiment:
			field = "ticket_number"
		}

		_, err := m.Collection(kind).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: field, Value: 1}},
		})
		if err != nil {
			return utils.NewStoreUnavailableError(err)
		}
	}
	return nil
}
