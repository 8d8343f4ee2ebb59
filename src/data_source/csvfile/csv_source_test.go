package csvfile

import (
	"strings"
	"testing"

	"iex-insight/src/helpers"
	"iex-insight/src/logger"
	"iex-insight/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHeader = "TYPE,Year,Date,Time_Block,IEX_Demand (GW),IEX_Supply (GW),MCP (Rs./kWh),MCV (GW)\n"

func newTestSource(badRowThreshold float64) *CSVSource {
	cfg := &models.MConfig{
		Dataset: models.MDatasetConfig{BadRowThreshold: badRowThreshold},
	}
	return NewCSVSource(cfg, logger.NewLogger("ERROR", "csv-test"))
}

func TestParseValidRows(t *testing.T) {
	data := testHeader +
		"DAM,2024,2024-03-01,00:00:00-00:15:00,10.5,12.0,4.25,3.1\n" +
		"gdam,2024,2024-03-01,00:15:00-00:30:00,,,5.00,2.0\n" +
		"RTM,2024,01-03-2024,23:45:00-00:00:00,9.0,9.5,6.75,1.5\n"

	records, err := newTestSource(0).parse(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, models.MarketDAM, records[0].Market)
	assert.Equal(t, 2024, records[0].Year)
	assert.Equal(t, "2024-03-01", records[0].DateKey())
	assert.Equal(t, "00:00:00-00:15:00", records[0].TimeBlock)
	assert.Equal(t, 4.25, records[0].Price)
	assert.Equal(t, 3.1, records[0].Volume)
	assert.Equal(t, 10.5, records[0].Demand)

	// Lowercase market names are accepted; blank demand/supply default to 0.
	assert.Equal(t, models.MarketGDAM, records[1].Market)
	assert.Zero(t, records[1].Demand)

	// Regional DD-MM-YYYY dates parse to the same day.
	assert.Equal(t, "2024-03-01", records[2].DateKey())
}

func TestParseNormalizesBlockShorthand(t *testing.T) {
	data := testHeader +
		"DAM,2024,2024-03-01,9:00-9:15,10,10,4,3\n"

	records, err := newTestSource(0).parse(strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "09:00:00-09:15:00", records[0].TimeBlock)
}

func TestParseAcceptsPandasTimestampDates(t *testing.T) {
	data := testHeader +
		"DAM,2024,2024-03-01 00:00:00,00:00:00-00:15:00,10,10,4,3\n"

	records, err := newTestSource(0).parse(strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", records[0].DateKey())
}

func TestParseSkipsInvalidRowsWithinThreshold(t *testing.T) {
	data := testHeader +
		"DAM,2024,2024-03-01,00:00:00-00:15:00,10,10,4,3\n" +
		"TAM,2024,2024-03-01,00:00:00-00:15:00,10,10,4,3\n" + // unknown market
		"DAM,2023,2024-03-01,00:00:00-00:15:00,10,10,4,3\n" + // year mismatch
		"DAM,2024,2024-03-01,00:00:00-00:20:00,10,10,4,3\n" + // not a 15-min block
		"DAM,2024,2024-03-01,00:00:00-00:15:00,10,10,-4,3\n" + // negative price
		"DAM,2024,2024-03-01,00:15:00-00:30:00,10,10,5,2\n"

	records, err := newTestSource(0.8).parse(strings.NewReader(data))
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestParseFailsAboveBadRowThreshold(t *testing.T) {
	data := testHeader +
		"DAM,2024,2024-03-01,00:00:00-00:15:00,10,10,4,3\n" +
		"TAM,2024,2024-03-01,00:00:00-00:15:00,10,10,4,3\n"

	_, err := newTestSource(0.01).parse(strings.NewReader(data))
	require.Error(t, err)
	assert.True(t, helpers.IsIngestError(err))
}

func TestParseRejectsMissingColumns(t *testing.T) {
	data := "TYPE,Year,Date\nDAM,2024,2024-03-01\n"

	_, err := newTestSource(0).parse(strings.NewReader(data))
	require.Error(t, err)
	assert.True(t, helpers.IsIngestError(err))
}

func TestParseRejectsEmptyDataset(t *testing.T) {
	_, err := newTestSource(0).parse(strings.NewReader(testHeader))
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	src := newTestSource(0)
	src.Config.Dataset.CSVPath = "/no/such/file.csv"

	_, err := src.Load()
	require.Error(t, err)
	assert.True(t, helpers.IsIngestError(err))
}
