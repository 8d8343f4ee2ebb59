package server

import (
	"strconv"
	"strings"

	"iex-insight/src/models"

	"github.com/gin-gonic/gin"
)

// -----------------------------------------------------------------------------

// filterFromParams builds a structured filter from query-string parameters.
// Unknown or unparsable values are ignored so a sloppy URL still answers.
func filterFromParams(c *gin.Context) *models.MFilterSpec {
	f := &models.MFilterSpec{}

	if m := strings.ToUpper(strings.TrimSpace(c.Query("market"))); m != "" {
		market := models.Market(m)
		if market.IsValid() {
			f.Market = market
		}
	}

	f.Year = intParam(c, "year", 0)
	f.Month = intParam(c, "month", 0)
	f.Day = intParam(c, "day", 0)

	if f.IsEmpty() {
		return nil
	}
	return f
}

// -----------------------------------------------------------------------------

func intParam(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
