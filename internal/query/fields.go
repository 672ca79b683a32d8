package query

import "stock-board/internal/models"

// filterFields maps each kind to the stored field its identifying filter key
// matches against. News sentiment keeps the legacy ticket_number field name.
var filterFields = map[models.RecordKind]string{
	models.KindCompanyOverview:   "Symbol",
	models.KindCashFlow:          "symbol",
	models.KindQuarterlyEarnings: "symbol",
	models.KindStockWeeklyData:   "symbol",
	models.KindNewsSentiment:     "ticket_number",
	models.KindPost:              "_id",
	models.KindComment:           "post_id",
	models.KindUser:              "user_id",
}

// filterParams maps each kind to the request parameter name carrying the
// identifying filter key, used for error messages.
var filterParams = map[models.RecordKind]string{
	models.KindCompanyOverview:   "symbol",
	models.KindCashFlow:          "symbol",
	models.KindQuarterlyEarnings: "symbol",
	models.KindStockWeeklyData:   "symbol",
	models.KindNewsSentiment:     "symbol",
	models.KindPost:              "id",
	models.KindComment:           "post_id",
	models.KindUser:              "user_id",
}

// sortableFields is the per-kind allow-list of sortable fields. A sort_field
// outside the list is rejected before the store sees it.
var sortableFields = map[models.RecordKind][]string{
	models.KindCompanyOverview: {
		"Name",
		"Symbol",
		"PEGRatio",
		"MarketCapitalization",
		"Beta",
	},
	models.KindCashFlow: {
		"fiscalDateEnding",
		"operatingCashflow",
		"netIncome",
	},
	models.KindQuarterlyEarnings: {
		"fiscalDateEnding",
		"reportedEPS",
		"estimatedEPS",
		"surprise",
	},
	models.KindStockWeeklyData: {
		"date",
		"open",
		"high",
		"low",
		"close",
		"volume",
	},
	models.KindNewsSentiment: {
		"time_published",
		"overall_sentiment_score",
		"relevance_score",
		"title",
	},
	models.KindPost: {
		"post_title",
		"post_date",
		"upvote",
		"downvote",
	},
	models.KindComment: {
		"content",
	},
	models.KindUser: {
		"user_id",
		"email",
		"display_name",
	},
}

// FilterParam returns the request parameter name for a kind's identifying key.
func FilterParam(kind models.RecordKind) string {
	if param, ok := filterParams[kind]; ok {
		return param
	}
	return "symbol"
}

// SortableFields returns a copy of the allow-list for a kind.
func SortableFields(kind models.RecordKind) []string {
	fields := sortableFields[kind]
	out := make([]string, len(fields))
	copy(out, fields)
	return out
}

func isSortable(kind models.RecordKind, field string) bool {
	for _, allowed := range sortableFields[kind] {
		if allowed == field {
			return true
		}
	}
	return false
}
