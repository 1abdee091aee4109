package chart

import (
	"bytes"
	"fmt"

	"KrakenCandles/internal/model"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const dateLayout = "2006-01-02 15:04"

// CandlestickRenderer renders OHLC series as an interactive echarts page.
type CandlestickRenderer struct {
	Width  string
	Height string
}

// NewCandlestickRenderer creates a renderer with the default canvas size.
func NewCandlestickRenderer() *CandlestickRenderer {
	return &CandlestickRenderer{Width: "1100px", Height: "560px"}
}

// Render returns a self-contained HTML document with the chart and its script.
func (r *CandlestickRenderer) Render(title string, series *model.OHLCSeries) (string, error) {
	kline := charts.NewKLine()
	kline.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     r.Width,
			Height:    r.Height,
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{SplitNumber: 20}),
		charts.WithYAxisOpts(opts.YAxis{Scale: true}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "inside", Start: 0, End: 100, XAxisIndex: []int{0}}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100, XAxisIndex: []int{0}}),
	)

	x := make([]string, series.Len())
	y := make([]opts.KlineData, series.Len())
	for i := range x {
		x[i] = series.Dates[i].UTC().Format(dateLayout)
		// echarts order: open, close, lowest, highest
		y[i] = opts.KlineData{Value: [4]float64{series.Opens[i], series.Closes[i], series.Lows[i], series.Highs[i]}}
	}
	kline.SetXAxis(x).AddSeries("ohlc", y)

	var buf bytes.Buffer
	if err := kline.Render(&buf); err != nil {
		return "", fmt.Errorf("render candlestick: %w", err)
	}
	return buf.String(), nil
}
