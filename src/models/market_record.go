package models

import "time"

// -----------------------------------------------------------------------------
// Market Segments
// -----------------------------------------------------------------------------

// Market identifies one of the three IEX trading segments.
type Market string

const (
	MarketDAM  Market = "DAM"  // Day-Ahead Market
	MarketGDAM Market = "GDAM" // Green Day-Ahead Market
	MarketRTM  Market = "RTM"  // Real-Time Market
)

// AllMarkets lists every valid segment in display order.
var AllMarkets = []Market{MarketDAM, MarketGDAM, MarketRTM}

// -----------------------------------------------------------------------------

// IsValid reports whether m is one of the three known segments.
func (m Market) IsValid() bool {
	switch m {
	case MarketDAM, MarketGDAM, MarketRTM:
		return true
	}
	return false
}

// -----------------------------------------------------------------------------
// MMarketRecord represents one 15-minute market observation.
// -----------------------------------------------------------------------------

// MMarketRecord is immutable after ingestion. Year always equals Date.Year()
// and TimeBlock is one of the 96 canonical zero-padded blocks; both are
// enforced by the CSV loader.
type MMarketRecord struct {
	Market    Market    `json:"market"`
	Year      int       `json:"year"`
	Date      time.Time `json:"date"`       // UTC midnight of the trading day
	TimeBlock string    `json:"time_block"` // "HH:MM:SS-HH:MM:SS"
	Demand    float64   `json:"demand"`     // IEX demand (GW)
	Supply    float64   `json:"supply"`     // IEX supply (GW)
	Price     float64   `json:"price"`      // MCP (Rs./kWh)
	Volume    float64   `json:"volume"`     // MCV (GW)
}

// -----------------------------------------------------------------------------

// DateKey returns the record's trading day as "YYYY-MM-DD".
func (r *MMarketRecord) DateKey() string {
	return r.Date.Format("2006-01-02")
}

// -----------------------------------------------------------------------------

// BlockStart returns the "HH:MM" start of the record's time block.
func (r *MMarketRecord) BlockStart() string {
	if len(r.TimeBlock) < 5 {
		return ""
	}
	return r.TimeBlock[:5]
}
