package models

// RecordKind names one queryable collection. The value doubles as the
// collection name in the document store.
type RecordKind string

const (
	KindCompanyOverview   RecordKind = "company_overview"
	KindCashFlow          RecordKind = "cash_flow"
	KindQuarterlyEarnings RecordKind = "quarterly_earnings"
	KindStockWeeklyData   RecordKind = "stock_weekly_data"
	KindNewsSentiment     RecordKind = "news_sentiment"
	KindPost              RecordKind = "post"
	KindComment           RecordKind = "comment"
	KindUser              RecordKind = "user"
)

// MarketKinds lists the flat symbol-keyed record kinds.
var MarketKinds = []RecordKind{
	KindCompanyOverview,
	KindCashFlow,
	KindQuarterlyEarnings,
	KindStockWeeklyData,
	KindNewsSentiment,
}

func (k RecordKind) Collection() string {
	return string(k)
}
