// cmd/seed/main.go
//
// Loads a small demo dataset: a few market records per collection plus one
// post with a nested comment thread, with the thread closure recomputed the
// same way the server does it.
package main

import (
	"context"
	"log"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"stock-board/internal/config"
	"stock-board/internal/database"
	"stock-board/internal/models"
	"stock-board/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	mongodb, err := database.NewMongoDB(cfg.Database.URI, cfg.Database.Name)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	defer mongodb.Close(ctx)

	seedMarketRecords(ctx, mongodb)
	seedContent(ctx, mongodb, cfg)

	log.Println("Seeding complete")
}

func seedMarketRecords(ctx context.Context, mongodb *database.MongoDB) {
	overviews := []bson.M{
		{
			"Symbol":               "AAPL",
			"Name":                 "Apple Inc",
			"PEGRatio":             2.1,
			"MarketCapitalization": 2800000000000.0,
			"Beta":                 1.28,
		},
		{
			"Symbol":               "IBM",
			"Name":                 "International Business Machines",
			"PEGRatio":             1.5,
			"MarketCapitalization": 150000000000.0,
			"Beta":                 0.86,
		},
		{
			"Symbol":               "NEWCO",
			"Name":                 "Newly Listed Co",
			"PEGRatio":             math.NaN(), // no earnings history yet
			"MarketCapitalization": 1200000000.0,
			"Beta":                 math.NaN(),
		},
	}
	insertAll(ctx, mongodb, models.KindCompanyOverview, overviews)

	cashFlows := []bson.M{
		{"symbol": "AAPL", "fiscalDateEnding": "2023-09-30", "operatingCashflow": 110543000000.0, "netIncome": 96995000000.0},
		{"symbol": "AAPL", "fiscalDateEnding": "2022-09-30", "operatingCashflow": 122151000000.0, "netIncome": 99803000000.0},
		{"symbol": "IBM", "fiscalDateEnding": "2023-12-31", "operatingCashflow": 13931000000.0, "netIncome": 7502000000.0},
	}
	insertAll(ctx, mongodb, models.KindCashFlow, cashFlows)

	earnings := []bson.M{
		{"symbol": "AAPL", "fiscalDateEnding": "2023-12-31", "reportedEPS": 2.18, "estimatedEPS": 2.10, "surprise": 0.08},
		{"symbol": "AAPL", "fiscalDateEnding": "2023-09-30", "reportedEPS": 1.46, "estimatedEPS": 1.39, "surprise": 0.07},
	}
	insertAll(ctx, mongodb, models.KindQuarterlyEarnings, earnings)

	weekly := []bson.M{
		{"symbol": "AAPL", "date": "2024-01-12", "open": 181.16, "high": 186.74, "low": 180.17, "close": 185.92, "volume": 3438290.0},
		{"symbol": "AAPL", "date": "2024-01-05", "open": 187.15, "high": 188.44, "low": 180.88, "close": 181.18, "volume": 2768340.0},
	}
	insertAll(ctx, mongodb, models.KindStockWeeklyData, weekly)

	news := []bson.M{
		{
			"ticket_number":           "AAPL",
			"title":                   "Apple announces quarterly results",
			"time_published":          "20240115T093000",
			"overall_sentiment_score": 0.31,
			"relevance_score":         0.88,
		},
		{
			"ticket_number":           "AAPL",
			"title":                   "Analysts weigh in on outlook",
			"time_published":          "20240116T141500",
			"overall_sentiment_score": -0.05,
			"relevance_score":         0.64,
		},
	}
	insertAll(ctx, mongodb, models.KindNewsSentiment, news)
}

func insertAll(ctx context.Context, mongodb *database.MongoDB, kind models.RecordKind, records []bson.M) {
	for _, record := range records {
		if _, err := mongodb.Collection(kind).InsertOne(ctx, record); err != nil {
			log.Fatalf("Failed to insert %s record: %v", kind, err)
		}
	}
	log.Printf("Inserted %d %s records", len(records), kind)
}

func seedContent(ctx context.Context, mongodb *database.MongoDB, cfg *config.Config) {
	if err := mongodb.EnsureUserIndexes(ctx); err != nil {
		log.Fatalf("Failed to create user indexes: %v", err)
	}

	svc := service.New(mongodb, time.Duration(cfg.Server.RequestTimeout)*time.Second)

	// 128 hex chars, standing in for a client-side SHA-512 digest.
	demoHash := "8f434346648f6b96df89dda901c5176b10a6d83961dd3c1ac88b59b2dc327aa4" +
		"8f434346648f6b96df89dda901c5176b10a6d83961dd3c1ac88b59b2dc327aa4"

	alice, err := svc.RegisterUser(ctx, "alice@example.com", "alice", demoHash)
	if err != nil {
		log.Fatalf("Failed to register user: %v", err)
	}
	bob, err := svc.RegisterUser(ctx, "bob@example.com", "bob", demoHash)
	if err != nil {
		log.Fatalf("Failed to register user: %v", err)
	}

	post, err := svc.CreatePost(ctx, alice.UserID,
		"AAPL earnings discussion",
		"https://example.com/apple-earnings",
		"Results are out, operating cash flow looks strong this quarter.")
	if err != nil {
		log.Fatalf("Failed to create post: %v", err)
	}

	top, err := svc.CreateComment(ctx, bob.UserID, post.ID.Hex(), "",
		"Margins surprised me, services keep carrying the quarter.")
	if err != nil {
		log.Fatalf("Failed to create comment: %v", err)
	}
	if _, err := svc.CreateComment(ctx, alice.UserID, post.ID.Hex(), top.ID.Hex(),
		"Agreed, and the guidance was more cautious than the headline."); err != nil {
		log.Fatalf("Failed to create nested reply: %v", err)
	}

	log.Printf("Seeded post %s with a nested comment thread", post.ID.Hex())
}
