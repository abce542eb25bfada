package defillama

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimestampUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{name: "number", in: `1700000000`, want: time.Unix(1700000000, 0).UTC()},
		{name: "numeric string", in: `"1700000000"`, want: time.Unix(1700000000, 0).UTC()},
		{name: "rfc3339", in: `"2023-11-14T22:13:20Z"`, want: time.Unix(1700000000, 0).UTC()},
		{name: "null", in: `null`},
		{name: "empty string", in: `""`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			if err := json.Unmarshal([]byte(tt.in), &ts); err != nil {
				t.Fatalf("unmarshal %s: %v", tt.in, err)
			}
			if !ts.Equal(tt.want) {
				t.Errorf("got %v want %v", ts.Time, tt.want)
			}
		})
	}

	var ts Timestamp
	if err := json.Unmarshal([]byte(`true`), &ts); err == nil {
		t.Fatal("expected error for bool timestamp")
	}
}

func TestTimestampMarshal(t *testing.T) {
	b, err := json.Marshal(struct {
		At    Timestamp `json:"at"`
		Empty Timestamp `json:"empty"`
	}{At: Timestamp{time.Unix(1700000000, 0)}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"at":1700000000,"empty":null}` {
		t.Errorf("got %s", b)
	}
}

func TestChartPoint(t *testing.T) {
	var pts []ChartPoint
	if err := json.Unmarshal([]byte(`[["1700000000", 12.5],[1700086400, 0]]`), &pts); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(pts) != 2 || pts[0].Timestamp.Unix() != 1700000000 || pts[0].Value != 12.5 {
		t.Errorf("points = %+v", pts)
	}

	var p ChartPoint
	if err := json.Unmarshal([]byte(`[1700000000]`), &p); err == nil {
		t.Fatal("expected error for single-element pair")
	}
}

func TestBreakdownPoint(t *testing.T) {
	body := `[1700000000, {"Uniswap": 10, "Ethereum": {"Curve": 2.5, "Balancer": 1}}]`
	var p BreakdownPoint
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.Values["Uniswap"] != 10 {
		t.Errorf("values = %+v", p.Values)
	}
	if p.Nested["Ethereum"]["Curve"] != 2.5 || p.Nested["Ethereum"]["Balancer"] != 1 {
		t.Errorf("nested = %+v", p.Nested)
	}

	out, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if want := `[1700000000,{"Ethereum":{"Balancer":1,"Curve":2.5},"Uniswap":10}]`; string(out) != want {
		t.Errorf("got %s want %s", out, want)
	}
}

func TestPeggedAmount(t *testing.T) {
	var byPeg, total, absent PeggedAmount
	if err := json.Unmarshal([]byte(`{"peggedUSD": 5}`), &byPeg); err != nil {
		t.Fatalf("unmarshal object: %v", err)
	}
	if err := json.Unmarshal([]byte(`0`), &total); err != nil {
		t.Fatalf("unmarshal number: %v", err)
	}
	if err := json.Unmarshal([]byte(`null`), &absent); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}

	if byPeg.ByPeg["peggedUSD"] != 5 || byPeg.Total != nil {
		t.Errorf("byPeg = %+v", byPeg)
	}
	if total.Total == nil || *total.Total != 0 || total.ByPeg != nil {
		t.Errorf("total = %+v", total)
	}
	if !absent.IsZero() {
		t.Errorf("absent = %+v", absent)
	}

	var bad PeggedAmount
	if err := json.Unmarshal([]byte(`"lots"`), &bad); err == nil {
		t.Fatal("expected error for string amount")
	}
}

func TestResponseSnippet(t *testing.T) {
	if got := responseSnippet("   "); got != "<empty>" {
		t.Errorf("got %q", got)
	}
	long := make([]byte, 600)
	for i := range long {
		long[i] = 'x'
	}
	if got := responseSnippet(string(long)); len(got) != 515 {
		t.Errorf("snippet length = %d", len(got))
	}
}
