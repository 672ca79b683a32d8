package sanitize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"stock-board/internal/utils"
)

func TestRecordStringifiesIdentifiers(t *testing.T) {
	id := primitive.NewObjectID()
	child := primitive.NewObjectID()

	out := Record(bson.M{
		"_id":         id,
		"comment_ids": bson.A{child},
		"nested":      bson.M{"ref": child},
	})

	assert.Equal(t, id.Hex(), out["_id"])
	assert.Equal(t, bson.A{child.Hex()}, out["comment_ids"])
	assert.Equal(t, bson.M{"ref": child.Hex()}, out["nested"])
}

func TestRecordReplacesNaN(t *testing.T) {
	out := Record(bson.M{
		"pe_ratio": math.NaN(),
		"beta":     12.5,
	})

	assert.Nil(t, out["pe_ratio"])
	assert.Equal(t, 12.5, out["beta"])
}

func TestRecordDoesNotModifyInput(t *testing.T) {
	id := primitive.NewObjectID()
	in := bson.M{"_id": id}

	Record(in)

	assert.Equal(t, id, in["_id"])
}

func TestRecordIsIdempotent(t *testing.T) {
	in := bson.M{
		"_id":      primitive.NewObjectID(),
		"pe_ratio": math.NaN(),
		"name":     "Apple Inc",
	}

	once := Record(in)
	twice := Record(once)

	assert.Equal(t, once, twice)
}

func TestReformatTimestamp(t *testing.T) {
	out, err := ReformatTimestamp("20240115T093000")
	require.NoError(t, err)
	assert.Equal(t, "2024/01/15 09:30", out)
}

func TestReformatTimestampFixedPoint(t *testing.T) {
	out, err := ReformatTimestamp("2024/01/15 09:30")
	require.NoError(t, err)
	assert.Equal(t, "2024/01/15 09:30", out)
}

func TestReformatTimestampMalformed(t *testing.T) {
	_, err := ReformatTimestamp("2024-01-15")
	require.Error(t, err)
	assert.True(t, utils.IsErrorCode(err, utils.ErrMalformedTimestamp))
}

func TestNewsRecordsMarkOnlyTheOffendingRecord(t *testing.T) {
	out := NewsRecords([]bson.M{
		{"title": "good", "time_published": "20240115T093000"},
		{"title": "bad", "time_published": "2024-01-15"},
		{"title": "also good", "time_published": "20240116T141500"},
	})

	require.Len(t, out, 3)
	assert.Equal(t, "2024/01/15 09:30", out[0][TimePublishedField])
	assert.NotContains(t, out[0], WarningField)

	assert.Contains(t, out[1], WarningField)
	assert.Equal(t, "2024-01-15", out[1][TimePublishedField])

	assert.Equal(t, "2024/01/16 14:15", out[2][TimePublishedField])
	assert.NotContains(t, out[2], WarningField)
}

func TestNewsRecordIsIdempotent(t *testing.T) {
	in := bson.M{"_id": primitive.NewObjectID(), "time_published": "20240115T093000"}

	once := NewsRecord(in)
	twice := NewsRecord(once)

	assert.Equal(t, once, twice)
}
