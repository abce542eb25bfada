package defillama

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	defaultSearchWidth = "4h"
	defaultPeriod      = "24h"
)

// Coin is a price quote keyed by coin identifier ({chain}:{address} or coingecko:{id}).
type Coin struct {
	Decimals   *int                `json:"decimals,omitempty"`
	Price      decimal.NullDecimal `json:"price"`
	Symbol     string              `json:"symbol,omitempty"`
	Timestamp  Timestamp           `json:"timestamp"`
	Confidence *float64            `json:"confidence,omitempty"`
}

// CoinPrices is the body of the current, historical and first price endpoints.
type CoinPrices struct {
	Coins map[string]Coin `json:"coins" validate:"required,dive"`
}

// HistoricalPrice is one timestamped price.
type HistoricalPrice struct {
	Timestamp  *Timestamp       `json:"timestamp" validate:"required"`
	Price      *decimal.Decimal `json:"price" validate:"required"`
	Confidence *float64         `json:"confidence,omitempty"`
}

// CoinHistory holds the prices of one coin in a batch historical response.
type CoinHistory struct {
	Symbol string            `json:"symbol" validate:"required"`
	Prices []HistoricalPrice `json:"prices" validate:"required,dive"`
}

// BatchHistoricalPrices is the body of GET /batchHistorical.
type BatchHistoricalPrices struct {
	Coins map[string]CoinHistory `json:"coins" validate:"required,dive"`
}

// CoinChart is the price series of one coin.
type CoinChart struct {
	Decimals   *int              `json:"decimals,omitempty"`
	Confidence *float64          `json:"confidence,omitempty"`
	Prices     []HistoricalPrice `json:"prices" validate:"required,dive"`
	Symbol     string            `json:"symbol" validate:"required"`
}

// PriceChart is the body of GET /chart/{coins}.
type PriceChart struct {
	Coins map[string]CoinChart `json:"coins" validate:"required,dive"`
}

// PercentageChange is the body of GET /percentage/{coins}.
type PercentageChange struct {
	Coins map[string]float64 `json:"coins" validate:"required"`
}

// Block is the chain block closest to a timestamp.
type Block struct {
	Height    *int64     `json:"height" validate:"required"`
	Timestamp *Timestamp `json:"timestamp" validate:"required"`
}

// ChartOptions tunes GET /chart/{coins}. Zero values are left out of the query.
type ChartOptions struct {
	Start       int64
	End         int64
	Span        int
	Period      string
	SearchWidth string
}

func (o ChartOptions) query() (url.Values, error) {
	q := url.Values{}
	if o.Start < 0 {
		return nil, invalidArg("start", "must not be negative")
	}
	if o.End < 0 {
		return nil, invalidArg("end", "must not be negative")
	}
	if o.Start > 0 && o.End > 0 && o.End < o.Start {
		return nil, invalidArg("end", "must not be before start")
	}
	if o.Span < 0 {
		return nil, invalidArg("span", "must not be negative")
	}
	if o.Start > 0 {
		q.Set("start", formatUnix(o.Start))
	}
	if o.End > 0 {
		q.Set("end", formatUnix(o.End))
	}
	if o.Span > 0 {
		q.Set("span", strconv.Itoa(o.Span))
	}
	if o.Period != "" {
		if err := checkDuration("period", o.Period); err != nil {
			return nil, err
		}
		q.Set("period", o.Period)
	}
	if o.SearchWidth != "" {
		if err := checkDuration("searchWidth", o.SearchWidth); err != nil {
			return nil, err
		}
		q.Set("searchWidth", o.SearchWidth)
	}
	return q, nil
}

// PercentageOptions tunes GET /percentage/{coins}. Period defaults to 24h and
// Timestamp to now (left out of the query when zero).
type PercentageOptions struct {
	Timestamp   int64
	LookForward bool
	Period      string
}

func (o PercentageOptions) query() (url.Values, error) {
	period := o.Period
	if period == "" {
		period = defaultPeriod
	}
	if err := checkDuration("period", period); err != nil {
		return nil, err
	}
	if o.Timestamp < 0 {
		return nil, invalidArg("timestamp", "must not be negative")
	}
	q := url.Values{}
	q.Set("lookForward", strconv.FormatBool(o.LookForward))
	q.Set("period", period)
	if o.Timestamp > 0 {
		q.Set("timestamp", formatUnix(o.Timestamp))
	}
	return q, nil
}

func searchWidthQuery(searchWidth string, fallback string) (url.Values, error) {
	if searchWidth == "" {
		searchWidth = fallback
	}
	if searchWidth == "" {
		return nil, nil
	}
	if err := checkDuration("searchWidth", searchWidth); err != nil {
		return nil, err
	}
	return url.Values{"searchWidth": {searchWidth}}, nil
}

// GetCurrentPrices returns current prices. searchWidth defaults to 4h.
func (c *Client) GetCurrentPrices(ctx context.Context, coins []string, searchWidth string) (*CoinPrices, error) {
	seg, err := coinsSegment(coins)
	if err != nil {
		return nil, err
	}
	q, err := searchWidthQuery(searchWidth, defaultSearchWidth)
	if err != nil {
		return nil, err
	}
	return fetchOne[CoinPrices](ctx, c, c.hosts.coins, "/prices/current/"+seg, q)
}

// GetCurrentPricesAsync is the non-blocking form of GetCurrentPrices.
func (c *Client) GetCurrentPricesAsync(ctx context.Context, coins []string, searchWidth string) *Future[*CoinPrices] {
	return runAsync(ctx, func(ctx context.Context) (*CoinPrices, error) {
		return c.GetCurrentPrices(ctx, coins, searchWidth)
	})
}

// GetHistoricalPrices returns prices at a unix timestamp. searchWidth defaults to 4h.
func (c *Client) GetHistoricalPrices(ctx context.Context, timestamp int64, coins []string, searchWidth string) (*CoinPrices, error) {
	if err := checkTimestamp("timestamp", timestamp); err != nil {
		return nil, err
	}
	seg, err := coinsSegment(coins)
	if err != nil {
		return nil, err
	}
	q, err := searchWidthQuery(searchWidth, defaultSearchWidth)
	if err != nil {
		return nil, err
	}
	path := fmt.Sprintf("/prices/historical/%d/%s", timestamp, seg)
	return fetchOne[CoinPrices](ctx, c, c.hosts.coins, path, q)
}

// GetHistoricalPricesAsync is the non-blocking form of GetHistoricalPrices.
func (c *Client) GetHistoricalPricesAsync(ctx context.Context, timestamp int64, coins []string, searchWidth string) *Future[*CoinPrices] {
	return runAsync(ctx, func(ctx context.Context) (*CoinPrices, error) {
		return c.GetHistoricalPrices(ctx, timestamp, coins, searchWidth)
	})
}

// GetBatchHistoricalPrices returns prices for several coins at several
// timestamps each. coins maps a coin identifier to its timestamps. An empty
// searchWidth lets the API apply its default.
func (c *Client) GetBatchHistoricalPrices(ctx context.Context, coins map[string][]int64, searchWidth string) (*BatchHistoricalPrices, error) {
	if len(coins) == 0 {
		return nil, invalidArg("coins", "at least one coin is required")
	}
	keys := make([]string, 0, len(coins))
	for coin := range coins {
		keys = append(keys, coin)
	}
	sort.Strings(keys)
	for _, coin := range keys {
		if _, err := pathSegment("coins", coin); err != nil {
			return nil, err
		}
		stamps := coins[coin]
		if len(stamps) == 0 {
			return nil, invalidArg("coins["+coin+"]", "at least one timestamp is required")
		}
		for _, ts := range stamps {
			if err := checkTimestamp("coins["+coin+"]", ts); err != nil {
				return nil, err
			}
		}
	}

	encoded, err := json.Marshal(coins)
	if err != nil {
		return nil, invalidArg("coins", err.Error())
	}
	q, err := searchWidthQuery(searchWidth, "")
	if err != nil {
		return nil, err
	}
	if q == nil {
		q = url.Values{}
	}
	q.Set("coins", string(encoded))
	return fetchOne[BatchHistoricalPrices](ctx, c, c.hosts.coins, "/batchHistorical", q)
}

// GetBatchHistoricalPricesAsync is the non-blocking form of GetBatchHistoricalPrices.
func (c *Client) GetBatchHistoricalPricesAsync(ctx context.Context, coins map[string][]int64, searchWidth string) *Future[*BatchHistoricalPrices] {
	return runAsync(ctx, func(ctx context.Context) (*BatchHistoricalPrices, error) {
		return c.GetBatchHistoricalPrices(ctx, coins, searchWidth)
	})
}

// GetPriceChart returns prices at regular intervals.
func (c *Client) GetPriceChart(ctx context.Context, coins []string, opts ChartOptions) (*PriceChart, error) {
	seg, err := coinsSegment(coins)
	if err != nil {
		return nil, err
	}
	q, err := opts.query()
	if err != nil {
		return nil, err
	}
	return fetchOne[PriceChart](ctx, c, c.hosts.coins, "/chart/"+seg, q)
}

// GetPriceChartAsync is the non-blocking form of GetPriceChart.
func (c *Client) GetPriceChartAsync(ctx context.Context, coins []string, opts ChartOptions) *Future[*PriceChart] {
	return runAsync(ctx, func(ctx context.Context) (*PriceChart, error) {
		return c.GetPriceChart(ctx, coins, opts)
	})
}

// GetPricePercentageChange returns the percentage price change over a period.
func (c *Client) GetPricePercentageChange(ctx context.Context, coins []string, opts PercentageOptions) (*PercentageChange, error) {
	seg, err := coinsSegment(coins)
	if err != nil {
		return nil, err
	}
	q, err := opts.query()
	if err != nil {
		return nil, err
	}
	return fetchOne[PercentageChange](ctx, c, c.hosts.coins, "/percentage/"+seg, q)
}

// GetPricePercentageChangeAsync is the non-blocking form of GetPricePercentageChange.
func (c *Client) GetPricePercentageChangeAsync(ctx context.Context, coins []string, opts PercentageOptions) *Future[*PercentageChange] {
	return runAsync(ctx, func(ctx context.Context) (*PercentageChange, error) {
		return c.GetPricePercentageChange(ctx, coins, opts)
	})
}

// GetFirstPrices returns the earliest recorded price of each coin.
func (c *Client) GetFirstPrices(ctx context.Context, coins []string) (*CoinPrices, error) {
	seg, err := coinsSegment(coins)
	if err != nil {
		return nil, err
	}
	return fetchOne[CoinPrices](ctx, c, c.hosts.coins, "/prices/first/"+seg, nil)
}

// GetFirstPricesAsync is the non-blocking form of GetFirstPrices.
func (c *Client) GetFirstPricesAsync(ctx context.Context, coins []string) *Future[*CoinPrices] {
	return runAsync(ctx, func(ctx context.Context) (*CoinPrices, error) {
		return c.GetFirstPrices(ctx, coins)
	})
}

// GetBlock returns the block closest to timestamp on chain. The chain name is lower-cased.
func (c *Client) GetBlock(ctx context.Context, chain string, timestamp int64) (*Block, error) {
	seg, err := pathSegment("chain", strings.ToLower(chain))
	if err != nil {
		return nil, err
	}
	if err := checkTimestamp("timestamp", timestamp); err != nil {
		return nil, err
	}
	return fetchOne[Block](ctx, c, c.hosts.coins, "/block/"+seg+"/"+formatUnix(timestamp), nil)
}

// GetBlockAsync is the non-blocking form of GetBlock.
func (c *Client) GetBlockAsync(ctx context.Context, chain string, timestamp int64) *Future[*Block] {
	return runAsync(ctx, func(ctx context.Context) (*Block, error) {
		return c.GetBlock(ctx, chain, timestamp)
	})
}
