// internal/sanitize/sanitize.go
package sanitize

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"stock-board/internal/utils"
)

const (
	// TimePublishedField is the compact timestamp carried by news sentiment
	// records, stored as YYYYMMDDThhmmss.
	TimePublishedField = "time_published"

	// WarningField is attached to a record whose stored data failed
	// presentation-layer reformatting; the rest of the response is unaffected.
	WarningField = "data_integrity_warning"

	compactTimeLayout = "20060102T150405"
	displayTimeLayout = "2006/01/02 15:04"
)

// Record transforms one raw store record into the stable external shape:
// opaque identifiers become their canonical hex strings and NaN numerics
// become explicit nulls. The input is not modified. Applying Record to an
// already-sanitized record is a no-op.
func Record(record bson.M) bson.M {
	out := make(bson.M, len(record))
	for key, value := range record {
		out[key] = sanitizeValue(value)
	}
	return out
}

// Records sanitizes a result set in place of order: record i in maps to
// record i out.
func Records(records []bson.M) []bson.M {
	out := make([]bson.M, len(records))
	for i, record := range records {
		out[i] = Record(record)
	}
	return out
}

// NewsRecord sanitizes a news sentiment record and reformats its compact
// timestamp for display. A malformed timestamp marks the record with
// WarningField instead of failing the response.
func NewsRecord(record bson.M) bson.M {
	out := Record(record)
	raw, ok := out[TimePublishedField].(string)
	if !ok {
		return out
	}
	formatted, err := ReformatTimestamp(raw)
	if err != nil {
		out[WarningField] = err.Error()
		return out
	}
	out[TimePublishedField] = formatted
	return out
}

// NewsRecords sanitizes a news sentiment result set, preserving order.
func NewsRecords(records []bson.M) []bson.M {
	out := make([]bson.M, len(records))
	for i, record := range records {
		out[i] = NewsRecord(record)
	}
	return out
}

// ReformatTimestamp converts a compact YYYYMMDDThhmmss timestamp into the
// YYYY/MM/DD hh:mm display form. Already-reformatted input is returned
// unchanged so that sanitization stays idempotent.
func ReformatTimestamp(value string) (string, error) {
	if _, err := time.Parse(displayTimeLayout, value); err == nil {
		return value, nil
	}
	parsed, err := time.Parse(compactTimeLayout, value)
	if err != nil {
		return "", utils.NewAppError(utils.ErrMalformedTimestamp,
			"Malformed timestamp: "+value, err)
	}
	return parsed.Format(displayTimeLayout), nil
}

func sanitizeValue(value interface{}) interface{} {
	switch v := value.(type) {
	case primitive.ObjectID:
		return v.Hex()
	case float64:
		if math.IsNaN(v) {
			return nil
		}
		return v
	case float32:
		if math.IsNaN(float64(v)) {
			return nil
		}
		return v
	case bson.M:
		return Record(v)
	case map[string]interface{}:
		return Record(bson.M(v))
	case bson.D:
		nested := make(bson.M, len(v))
		for _, elem := range v {
			nested[elem.Key] = sanitizeValue(elem.Value)
		}
		return nested
	case bson.A:
		out := make(bson.A, len(v))
		for i, elem := range v {
			out[i] = sanitizeValue(elem)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, elem := range v {
			out[i] = sanitizeValue(elem)
		}
		return out
	default:
		return value
	}
}
