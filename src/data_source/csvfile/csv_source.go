package csvfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"iex-insight/src/helpers"
	"iex-insight/src/logger"
	"iex-insight/src/models"
	"iex-insight/src/utils"
)

// -----------------------------------------------------------------------------
// CSVSource loads the IEX market dataset from the CSV export of the original
// "MCP Details" sheet. Expected columns (header names are trimmed):
//
//	TYPE, Year, Date, Time_Block,
//	IEX_Demand (GW), IEX_Supply (GW), MCP (Rs./kWh), MCV (GW)
//
// Rows violating the record invariants (unknown market, year != date year,
// non-canonical time block, negative values) are logged and skipped. The
// load fails only when the rejected fraction exceeds the configured
// threshold, so a handful of bad export rows never blocks startup.
// -----------------------------------------------------------------------------

type CSVSource struct {
	Config *models.MConfig
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewCSVSource(cfg *models.MConfig, log *logger.Logger) *CSVSource {
	return &CSVSource{Config: cfg, Logger: log}
}

// -----------------------------------------------------------------------------

func (s *CSVSource) Name() string {
	return "iex-csv"
}

// -----------------------------------------------------------------------------

// Load reads and validates the full dataset.
func (s *CSVSource) Load() ([]models.MMarketRecord, error) {
	f, err := os.Open(s.Config.Dataset.CSVPath)
	if err != nil {
		return nil, helpers.NewIngestError("failed to open dataset", err)
	}
	defer f.Close()

	return s.parse(f)
}

// -----------------------------------------------------------------------------

func (s *CSVSource) parse(r io.Reader) ([]models.MMarketRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerate ragged rows, validated per row

	header, err := reader.Read()
	if err != nil {
		return nil, helpers.NewIngestError("failed to read header", err)
	}

	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var records []models.MMarketRecord
	total, bad := 0, 0

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, helpers.NewIngestError("failed to read row", err)
		}

		total++
		rec, rowErr := s.parseRow(row, cols)
		if rowErr != nil {
			bad++
			if bad <= 20 {
				s.Logger.Warning("Skipping row %d: %v", total, rowErr)
			}
			continue
		}
		records = append(records, rec)
	}

	if total == 0 {
		return nil, helpers.NewIngestError("dataset is empty", nil)
	}

	badFraction := float64(bad) / float64(total)
	if badFraction > s.Config.Dataset.BadRowThreshold {
		return nil, helpers.NewIngestError(
			fmt.Sprintf("rejected %d of %d rows (%.2f%%), above threshold", bad, total, badFraction*100), nil)
	}

	s.Logger.Info("Loaded %d records (%d rejected) from %s", len(records), bad, s.Config.Dataset.CSVPath)
	return records, nil
}

// -----------------------------------------------------------------------------

// columnIndices locates the required dataset columns in the header.
type columnIndices struct {
	market, year, date, block, demand, supply, price, volume int
}

func mapColumns(header []string) (columnIndices, error) {
	idx := columnIndices{-1, -1, -1, -1, -1, -1, -1, -1}
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "TYPE":
			idx.market = i
		case "Year":
			idx.year = i
		case "Date":
			idx.date = i
		case "Time_Block":
			idx.block = i
		case "IEX_Demand (GW)":
			idx.demand = i
		case "IEX_Supply (GW)":
			idx.supply = i
		case "MCP (Rs./kWh)":
			idx.price = i
		case "MCV (GW)":
			idx.volume = i
		}
	}

	if idx.market < 0 || idx.year < 0 || idx.date < 0 || idx.block < 0 ||
		idx.price < 0 || idx.volume < 0 {
		return idx, helpers.NewIngestError("dataset header is missing required columns", nil)
	}
	return idx, nil
}

// -----------------------------------------------------------------------------

func (s *CSVSource) parseRow(row []string, cols columnIndices) (models.MMarketRecord, error) {
	var rec models.MMarketRecord

	get := func(i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	market := models.Market(strings.ToUpper(get(cols.market)))
	if !market.IsValid() {
		return rec, fmt.Errorf("unknown market %q", get(cols.market))
	}

	year, err := strconv.Atoi(get(cols.year))
	if err != nil {
		return rec, fmt.Errorf("bad year %q", get(cols.year))
	}

	date, err := parseDate(get(cols.date))
	if err != nil {
		return rec, err
	}
	if date.Year() != year {
		return rec, fmt.Errorf("year %d does not match date %s", year, date.Format("2006-01-02"))
	}

	block, err := utils.NormalizeBlock(get(cols.block))
	if err != nil {
		return rec, err
	}

	price, err := parseNonNegative(get(cols.price), "price")
	if err != nil {
		return rec, err
	}
	volume, err := parseNonNegative(get(cols.volume), "volume")
	if err != nil {
		return rec, err
	}

	// Demand and supply are informational; missing values default to 0.
	demand, _ := parseNonNegative(get(cols.demand), "demand")
	supply, _ := parseNonNegative(get(cols.supply), "supply")

	rec = models.MMarketRecord{
		Market:    market,
		Year:      year,
		Date:      date,
		TimeBlock: block,
		Demand:    demand,
		Supply:    supply,
		Price:     price,
		Volume:    volume,
	}
	return rec, nil
}

// -----------------------------------------------------------------------------

// parseDate accepts the pandas ISO export form first, then the regional
// DD-MM-YYYY form some manual exports use.
func parseDate(s string) (time.Time, error) {
	// pandas may export a midnight timestamp
	s = strings.TrimSuffix(s, " 00:00:00")

	for _, layout := range []string{"2006-01-02", "02-01-2006", "02/01/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("bad date %q", s)
}

// -----------------------------------------------------------------------------

func parseNonNegative(s, field string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("bad %s %q", field, s)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative %s %v", field, v)
	}
	return v, nil
}
