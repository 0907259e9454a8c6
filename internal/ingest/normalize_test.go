package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeFullRow(t *testing.T) {
	rec, err := Normalize(RawRow{
		"lead_id":    " L-42 ",
		"created_at": "2024-02-05",
		"mql_at":     "2024-02-07",
		"sql_at":     "2024-02-12T10:30:00Z",
		"won_at":     "2024-02-20",
		"channel":    "Ads",
		"region":     "EMEA",
	})
	require.NoError(t, err)
	assert.Equal(t, "L-42", rec.ID)
	assert.Equal(t, time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC), rec.CreatedAt)
	require.NotNil(t, rec.MQLAt)
	require.NotNil(t, rec.SQLAt)
	require.NotNil(t, rec.WonAt)
	assert.Equal(t, time.Date(2024, 2, 12, 10, 30, 0, 0, time.UTC), *rec.SQLAt)
	assert.Equal(t, "Ads", rec.Channel)
	assert.Equal(t, "EMEA", rec.Region)
}

func TestNormalizeRejectsBadCreatedAt(t *testing.T) {
	_, err := Normalize(RawRow{"lead_id": "L-1", "created_at": ""})
	require.Error(t, err)
	_, err = Normalize(RawRow{"lead_id": "L-1", "created_at": "not-a-date"})
	require.Error(t, err)
}

func TestNormalizeLenientStageDates(t *testing.T) {
	rec, err := Normalize(RawRow{
		"lead_id":    "L-2",
		"created_at": "2024-02-05",
		"mql_at":     "",
		"sql_at":     "garbage",
	})
	require.NoError(t, err)
	assert.Nil(t, rec.MQLAt, "empty stage date should be absent")
	assert.Nil(t, rec.SQLAt, "unparseable stage date should be absent")
	assert.Nil(t, rec.WonAt, "missing key should be absent")
}

func TestNormalizeUnknownCategories(t *testing.T) {
	rec, err := Normalize(RawRow{"created_at": "2024-02-05", "channel": "  "})
	require.NoError(t, err)
	assert.Equal(t, "Unknown", rec.Channel)
	assert.Equal(t, "Unknown", rec.Region)
}
