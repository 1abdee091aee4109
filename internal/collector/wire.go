package collector

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// krakenEnvelope is the top-level shape of every Kraken public response.
type krakenEnvelope struct {
	Error  []string                   `json:"error"`
	Result map[string]json.RawMessage `json:"result"`
}

// wireRecord is one candle as Kraken sends it:
// [time, open, high, low, close, vwap, volume, count].
// Prices usually arrive as strings, the timestamp as a number.
type wireRecord []json.RawMessage

// minRecordFields is the number of leading fields we read; vwap, volume
// and count are discarded.
const minRecordFields = 5

func (r wireRecord) field(i int) (decimal.Decimal, error) {
	if i >= len(r) {
		return decimal.Zero, fmt.Errorf("field %d missing", i)
	}
	raw := bytes.TrimSpace(r[i])
	text := string(raw)
	if len(raw) > 0 && raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return decimal.Zero, fmt.Errorf("field %d: %w", i, err)
		}
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, fmt.Errorf("field %d: %w", i, err)
	}
	return d, nil
}

func (r wireRecord) timestamp() (int64, error) {
	d, err := r.field(0)
	if err != nil {
		return 0, err
	}
	return d.IntPart(), nil
}

func (r wireRecord) price(i int) (float64, error) {
	d, err := r.field(i)
	if err != nil {
		return 0, err
	}
	return d.InexactFloat64(), nil
}
