package defillama

import "context"

// PoolPrediction is the yield-direction forecast attached to a pool.
type PoolPrediction struct {
	PredictedClass       string   `json:"predictedClass,omitempty"`
	PredictedProbability *float64 `json:"predictedProbability,omitempty"`
	BinnedConfidence     *int     `json:"binnedConfidence,omitempty"`
}

// Pool is one entry of GET /pools.
type Pool struct {
	Chain            string          `json:"chain" validate:"required"`
	Project          string          `json:"project" validate:"required"`
	Symbol           string          `json:"symbol" validate:"required"`
	TVLUSD           *float64        `json:"tvlUsd" validate:"required"`
	APYBase          *float64        `json:"apyBase,omitempty"`
	APYReward        *float64        `json:"apyReward,omitempty"`
	APY              *float64        `json:"apy,omitempty"`
	RewardTokens     []string        `json:"rewardTokens,omitempty"`
	Pool             string          `json:"pool" validate:"required"`
	APYPct1D         *float64        `json:"apyPct1D,omitempty"`
	APYPct7D         *float64        `json:"apyPct7D,omitempty"`
	APYPct30D        *float64        `json:"apyPct30D,omitempty"`
	Stablecoin       bool            `json:"stablecoin"`
	ILRisk           string          `json:"ilRisk,omitempty"`
	Exposure         string          `json:"exposure,omitempty"`
	Predictions      *PoolPrediction `json:"predictions,omitempty"`
	PoolMeta         string          `json:"poolMeta,omitempty"`
	Mu               *float64        `json:"mu,omitempty"`
	Sigma            *float64        `json:"sigma,omitempty"`
	Count            *int            `json:"count,omitempty"`
	Outlier          bool            `json:"outlier"`
	UnderlyingTokens []string        `json:"underlyingTokens,omitempty"`
	IL7d             *float64        `json:"il7d,omitempty"`
	APYBase7d        *float64        `json:"apyBase7d,omitempty"`
	APYMean30d       *float64        `json:"apyMean30d,omitempty"`
	VolumeUSD1d      *float64        `json:"volumeUsd1d,omitempty"`
	VolumeUSD7d      *float64        `json:"volumeUsd7d,omitempty"`
}

// PoolChartPoint is one point of a pool's APY and TVL history.
type PoolChartPoint struct {
	Timestamp *Timestamp `json:"timestamp" validate:"required"`
	TVLUSD    *float64   `json:"tvlUsd" validate:"required"`
	APY       *float64   `json:"apy,omitempty"`
	APYBase   *float64   `json:"apyBase,omitempty"`
	APYReward *float64   `json:"apyReward,omitempty"`
	IL7d      *float64   `json:"il7d,omitempty"`
	APYBase7d *float64   `json:"apyBase7d,omitempty"`
}

// GetPools lists yield pools with their current APY.
func (c *Client) GetPools(ctx context.Context) ([]Pool, error) {
	return fetchList[Pool](ctx, c, c.hosts.yields, "/pools", nil, "data")
}

// GetPoolsAsync is the non-blocking form of GetPools.
func (c *Client) GetPoolsAsync(ctx context.Context) *Future[[]Pool] {
	return runAsync(ctx, c.GetPools)
}

// GetPoolChart returns the APY and TVL history of one pool.
func (c *Client) GetPoolChart(ctx context.Context, poolID string) ([]PoolChartPoint, error) {
	seg, err := pathSegment("pool", poolID)
	if err != nil {
		return nil, err
	}
	return fetchList[PoolChartPoint](ctx, c, c.hosts.yields, "/chart/"+seg, nil, "data")
}

// GetPoolChartAsync is the non-blocking form of GetPoolChart.
func (c *Client) GetPoolChartAsync(ctx context.Context, poolID string) *Future[[]PoolChartPoint] {
	return runAsync(ctx, func(ctx context.Context) ([]PoolChartPoint, error) {
		return c.GetPoolChart(ctx, poolID)
	})
}
