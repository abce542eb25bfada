package defillama

import (
	"bytes"
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"time"
)

// Timestamp is a point in time sent by the API as unix seconds (number or
// numeric string) or as an RFC 3339 string. It encodes back to unix seconds.
type Timestamp struct {
	time.Time
}

var timestampType = reflect.TypeOf(Timestamp{})

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}

	if b[0] == '"' {
		s, err := strconv.Unquote(string(b))
		if err != nil {
			return &json.UnmarshalTypeError{Value: "string", Type: timestampType}
		}
		if s == "" {
			return nil
		}
		if secs, err := strconv.ParseFloat(s, 64); err == nil {
			t.Time = unixFloat(secs)
			return nil
		}
		parsed, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return &json.UnmarshalTypeError{Value: "string " + strconv.Quote(s), Type: timestampType}
		}
		t.Time = parsed.UTC()
		return nil
	}

	secs, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return &json.UnmarshalTypeError{Value: jsonKind(b), Type: timestampType}
	}
	t.Time = unixFloat(secs)
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, t.Unix(), 10), nil
}

func unixFloat(secs float64) time.Time {
	whole, frac := math.Modf(secs)
	return time.Unix(int64(whole), int64(frac*1e9)).UTC()
}

func jsonKind(b []byte) string {
	if len(b) == 0 {
		return "value"
	}
	switch b[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case 't', 'f':
		return "bool"
	case '"':
		return "string"
	default:
		return "number"
	}
}

// ChartPoint is a [timestamp, value] pair from a totalDataChart series.
type ChartPoint struct {
	Timestamp Timestamp
	Value     float64
}

var chartPointType = reflect.TypeOf(ChartPoint{})

func (p *ChartPoint) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return &json.UnmarshalTypeError{Value: jsonKind(bytes.TrimSpace(b)), Type: chartPointType}
	}
	if len(raw) != 2 {
		return &json.UnmarshalTypeError{Value: "array of length " + strconv.Itoa(len(raw)), Type: chartPointType}
	}
	if err := json.Unmarshal(raw[0], &p.Timestamp); err != nil {
		return err
	}
	return json.Unmarshal(raw[1], &p.Value)
}

func (p ChartPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{p.Timestamp, p.Value})
}

// BreakdownPoint is a [timestamp, {name: value}] pair from a
// totalDataChartBreakdown series. Summaries nest one level deeper
// ({chain: {protocol: value}}); those entries land in Nested.
type BreakdownPoint struct {
	Timestamp Timestamp
	Values    map[string]float64
	Nested    map[string]map[string]float64
}

var breakdownPointType = reflect.TypeOf(BreakdownPoint{})

func (p *BreakdownPoint) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return &json.UnmarshalTypeError{Value: jsonKind(bytes.TrimSpace(b)), Type: breakdownPointType}
	}
	if len(raw) != 2 {
		return &json.UnmarshalTypeError{Value: "array of length " + strconv.Itoa(len(raw)), Type: breakdownPointType}
	}
	if err := json.Unmarshal(raw[0], &p.Timestamp); err != nil {
		return err
	}

	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw[1], &entries); err != nil {
		return &json.UnmarshalTypeError{Value: jsonKind(bytes.TrimSpace(raw[1])), Type: breakdownPointType}
	}
	for name, val := range entries {
		val = bytes.TrimSpace(val)
		if len(val) > 0 && val[0] == '{' {
			var inner map[string]float64
			if err := json.Unmarshal(val, &inner); err != nil {
				return err
			}
			if p.Nested == nil {
				p.Nested = make(map[string]map[string]float64)
			}
			p.Nested[name] = inner
			continue
		}
		var f float64
		if err := json.Unmarshal(val, &f); err != nil {
			return err
		}
		if p.Values == nil {
			p.Values = make(map[string]float64)
		}
		p.Values[name] = f
	}
	return nil
}

func (p BreakdownPoint) MarshalJSON() ([]byte, error) {
	entries := make(map[string]any, len(p.Values)+len(p.Nested))
	for k, v := range p.Values {
		entries[k] = v
	}
	for k, v := range p.Nested {
		entries[k] = v
	}
	return json.Marshal([]any{p.Timestamp, entries})
}

// PeggedAmount holds a stablecoin supply figure. The API sends either a
// per-peg object ({"peggedUSD": 1.2e9}) or a bare number (usually 0).
type PeggedAmount struct {
	ByPeg map[string]float64
	Total *float64
}

var peggedAmountType = reflect.TypeOf(PeggedAmount{})

func (a *PeggedAmount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] == '{' {
		return json.Unmarshal(b, &a.ByPeg)
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return &json.UnmarshalTypeError{Value: jsonKind(b), Type: peggedAmountType}
	}
	a.Total = &f
	return nil
}

func (a PeggedAmount) MarshalJSON() ([]byte, error) {
	switch {
	case a.ByPeg != nil:
		return json.Marshal(a.ByPeg)
	case a.Total != nil:
		return json.Marshal(*a.Total)
	default:
		return []byte("null"), nil
	}
}

// IsZero reports whether the field was absent or null.
func (a PeggedAmount) IsZero() bool { return a.ByPeg == nil && a.Total == nil }

// TokenHistory is one dated token breakdown of a protocol's TVL.
type TokenHistory struct {
	Date   *Timestamp         `json:"date" validate:"required"`
	Tokens map[string]float64 `json:"tokens" validate:"required"`
}
