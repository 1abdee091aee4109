package chart

import (
	"strings"
	"testing"
	"time"

	"KrakenCandles/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_ContainsLibraryMarker(t *testing.T) {
	s := model.NewOHLCSeries()
	s.Append(model.Candle{Time: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), Open: 3, High: 10, Low: 1, Close: 6})

	html, err := NewCandlestickRenderer().Render("Kraken OHLC Data for pair XXBTZUSD", s)
	require.NoError(t, err)

	assert.True(t, strings.Contains(html, "echarts"))
	assert.Contains(t, html, "2021-01-01 00:00")
	assert.Contains(t, html, "Kraken OHLC Data for pair XXBTZUSD")
}

func TestRender_EmptySeries(t *testing.T) {
	html, err := NewCandlestickRenderer().Render("empty", model.NewOHLCSeries())
	require.NoError(t, err)
	assert.Contains(t, html, "echarts")
}
