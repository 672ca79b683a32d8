// internal/database/mongodb.go
package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stock-board/internal/models"
	"stock-board/internal/query"
	"stock-board/internal/utils"
)

type MongoDB struct {
	Client   *mongo.Client
	Users    *mongo.Collection
	Posts    *mongo.Collection
	Comments *mongo.Collection

	db *mongo.Database
}

func NewMongoDB(uri, dbName string) (*MongoDB, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %v", err)
	}

	// Ping the database to verify connection
	if err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %v", err)
	}

	log.Println("Successfully connected to MongoDB!")

	db := client.Database(dbName)
	return &MongoDB{
		Client:   client,
		Users:    db.Collection(models.KindUser.Collection()),
		Posts:    db.Collection(models.KindPost.Collection()),
		Comments: db.Collection(models.KindComment.Collection()),
		db:       db,
	}, nil
}

func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// Collection resolves a record kind to its store collection.
func (m *MongoDB) Collection(kind models.RecordKind) *mongo.Collection {
	return m.db.Collection(kind.Collection())
}

// FindRecords runs a validated descriptor against a kind's collection:
// filter, optional sort, limit. Records come back raw for the sanitizer.
func (m *MongoDB) FindRecords(ctx context.Context, kind models.RecordKind, desc *query.Descriptor) ([]bson.M, error) {
	opts := options.Find().SetLimit(desc.Limit)
	if sort := desc.Sort(); sort != nil {
		opts.SetSort(sort)
	}

	cursor, err := m.Collection(kind).Find(ctx, desc.Filter, opts)
	if err != nil {
		return nil, utils.NewStoreUnavailableError(err)
	}
	defer cursor.Close(ctx)

	var records []bson.M
	for cursor.Next(ctx) {
		var record bson.M
		if err := cursor.Decode(&record); err != nil {
			return nil, fmt.Errorf("failed to decode %s record: %v", kind, err)
		}
		records = append(records, record)
	}
	if err := cursor.Err(); err != nil {
		return nil, utils.NewStoreUnavailableError(err)
	}

	return records, nil
}
