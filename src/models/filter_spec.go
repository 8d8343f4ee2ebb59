package models

import "time"

// -----------------------------------------------------------------------------
// MFilterSpec: per-request record constraints
// -----------------------------------------------------------------------------

// MFilterSpec is the normalized constraint set derived from free text and/or
// structured input. Every populated field is AND-combined by the engine; an
// unpopulated field imposes no constraint. Numeric bounds are pointers so an
// explicit zero stays distinguishable from "unset".
type MFilterSpec struct {
	Market Market `json:"market,omitempty"`

	Year  int `json:"year,omitempty"`
	Month int `json:"month,omitempty"` // 1..12
	Day   int `json:"day,omitempty"`   // 1..31

	// Half-open [StartDate, EndDate) range; zero time = unset.
	StartDate time.Time `json:"start_date,omitempty"`
	EndDate   time.Time `json:"end_date,omitempty"`

	PriceMin  *float64 `json:"price_min,omitempty"`
	PriceMax  *float64 `json:"price_max,omitempty"`
	VolumeMin *float64 `json:"volume_min,omitempty"`
	VolumeMax *float64 `json:"volume_max,omitempty"`

	// Explicit canonical block set; empty = all blocks.
	TimeBlocks []string `json:"time_blocks,omitempty"`

	// Time-of-day window on the block start, "HH:MM" zero-padded.
	// StartTime > EndTime means the window crosses midnight.
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
}

// -----------------------------------------------------------------------------

// HasDateRange reports whether an explicit [start, end) range is set.
func (f *MFilterSpec) HasDateRange() bool {
	return !f.StartDate.IsZero() && !f.EndDate.IsZero()
}

// -----------------------------------------------------------------------------

// HasTimeWindow reports whether a time-of-day window is set.
func (f *MFilterSpec) HasTimeWindow() bool {
	return f.StartTime != "" && f.EndTime != ""
}

// -----------------------------------------------------------------------------

// IsEmpty reports whether no constraint at all is populated.
func (f *MFilterSpec) IsEmpty() bool {
	return f.Market == "" && f.Year == 0 && f.Month == 0 && f.Day == 0 &&
		f.StartDate.IsZero() && f.EndDate.IsZero() &&
		f.PriceMin == nil && f.PriceMax == nil &&
		f.VolumeMin == nil && f.VolumeMax == nil &&
		len(f.TimeBlocks) == 0 && f.StartTime == "" && f.EndTime == ""
}

// -----------------------------------------------------------------------------
// MAggregationSpec: how to summarize the filtered set
// -----------------------------------------------------------------------------

// AggFunc enumerates the supported aggregation functions.
type AggFunc string

const (
	AggCount   AggFunc = "count"
	AggAverage AggFunc = "average"
	AggSum     AggFunc = "sum"
	AggMax     AggFunc = "max"
	AggMin     AggFunc = "min"
	AggStdDev  AggFunc = "stddev"
)

// GroupDim enumerates the supported group-by dimensions.
type GroupDim string

const (
	GroupByMarket    GroupDim = "market"
	GroupByYear      GroupDim = "year"
	GroupByMonth     GroupDim = "month"
	GroupByDate      GroupDim = "date"
	GroupByTimeBlock GroupDim = "timeblock"
	GroupByHour      GroupDim = "hour"
)

// MAggregationSpec selects an optional aggregation function and an optional
// group-by dimension. Both empty means the raw-rows path.
type MAggregationSpec struct {
	Function AggFunc  `json:"function,omitempty"`
	GroupBy  GroupDim `json:"group_by,omitempty"`
}

// -----------------------------------------------------------------------------

// IsValidAggFunc reports whether f is a known aggregation function.
func IsValidAggFunc(f AggFunc) bool {
	switch f {
	case AggCount, AggAverage, AggSum, AggMax, AggMin, AggStdDev:
		return true
	}
	return false
}

// IsValidGroupDim reports whether d is a known group-by dimension.
func IsValidGroupDim(d GroupDim) bool {
	switch d {
	case GroupByMarket, GroupByYear, GroupByMonth, GroupByDate, GroupByTimeBlock, GroupByHour:
		return true
	}
	return false
}
