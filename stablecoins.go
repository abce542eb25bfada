package defillama

import (
	"context"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
)

// Stablecoin is one entry of GET /stablecoins.
type Stablecoin struct {
	ID                   string                             `json:"id" validate:"required"`
	Name                 string                             `json:"name" validate:"required"`
	Symbol               string                             `json:"symbol" validate:"required"`
	GeckoID              string                             `json:"gecko_id,omitempty"`
	PegType              string                             `json:"pegType" validate:"required"`
	PriceSource          string                             `json:"priceSource,omitempty"`
	PegMechanism         string                             `json:"pegMechanism" validate:"required"`
	Circulating          map[string]float64                 `json:"circulating" validate:"required"`
	CirculatingPrevDay   PeggedAmount                       `json:"circulatingPrevDay"`
	CirculatingPrevWeek  PeggedAmount                       `json:"circulatingPrevWeek"`
	CirculatingPrevMonth PeggedAmount                       `json:"circulatingPrevMonth"`
	Price                decimal.NullDecimal                `json:"price"`
	Chains               []string                           `json:"chains,omitempty"`
	ChainCirculating     map[string]map[string]PeggedAmount `json:"chainCirculating,omitempty"`
}

// StablecoinChart is one point of GET /stablecoincharts/{chain}.
type StablecoinChart struct {
	Date                *Timestamp         `json:"date" validate:"required"`
	TotalCirculating    map[string]float64 `json:"totalCirculating" validate:"required"`
	TotalCirculatingUSD map[string]float64 `json:"totalCirculatingUSD" validate:"required"`
	TotalUnreleased     map[string]float64 `json:"totalUnreleased,omitempty"`
	TotalMintedUSD      map[string]float64 `json:"totalMintedUSD,omitempty"`
	TotalBridgedToUSD   map[string]float64 `json:"totalBridgedToUSD,omitempty"`
}

// StablecoinSupplyPoint is one dated supply record of a stablecoin on a chain.
type StablecoinSupplyPoint struct {
	Date        *Timestamp   `json:"date" validate:"required"`
	Circulating PeggedAmount `json:"circulating"`
	Unreleased  PeggedAmount `json:"unreleased"`
	Minted      PeggedAmount `json:"minted"`
}

// StablecoinChainBalance is the supply history of a stablecoin on one chain.
type StablecoinChainBalance struct {
	Tokens []StablecoinSupplyPoint `json:"tokens" validate:"dive"`
}

// StablecoinDetails is the body of GET /stablecoin/{id}.
type StablecoinDetails struct {
	ID                    string                            `json:"id" validate:"required"`
	Name                  string                            `json:"name" validate:"required"`
	Address               string                            `json:"address,omitempty"`
	Symbol                string                            `json:"symbol" validate:"required"`
	URL                   string                            `json:"url,omitempty"`
	Description           string                            `json:"description,omitempty"`
	MintRedeemDescription string                            `json:"mintRedeemDescription,omitempty"`
	OnCoinGecko           string                            `json:"onCoinGecko,omitempty"`
	GeckoID               string                            `json:"gecko_id,omitempty"`
	CmcID                 string                            `json:"cmcId,omitempty"`
	PegType               string                            `json:"pegType" validate:"required"`
	PegMechanism          string                            `json:"pegMechanism" validate:"required"`
	PriceSource           string                            `json:"priceSource,omitempty"`
	AuditLinks            []string                          `json:"auditLinks,omitempty"`
	Twitter               string                            `json:"twitter,omitempty"`
	Wiki                  string                            `json:"wiki,omitempty"`
	Price                 decimal.NullDecimal               `json:"price"`
	ChainBalances         map[string]StablecoinChainBalance `json:"chainBalances,omitempty" validate:"omitempty,dive"`
	CurrentChainBalances  map[string]PeggedAmount           `json:"currentChainBalances,omitempty"`
}

// StablecoinChain is one entry of GET /stablecoinchains.
type StablecoinChain struct {
	GeckoID             string             `json:"gecko_id,omitempty"`
	TotalCirculatingUSD map[string]float64 `json:"totalCirculatingUSD" validate:"required"`
	TokenSymbol         string             `json:"tokenSymbol,omitempty"`
	Name                string             `json:"name" validate:"required"`
}

// StablecoinPrice is one dated snapshot of GET /stablecoinprices, keyed by coingecko id.
type StablecoinPrice struct {
	Date   *Timestamp                 `json:"date" validate:"required"`
	Prices map[string]decimal.Decimal `json:"prices" validate:"required"`
}

// GetStablecoins lists stablecoins with their circulating supply.
func (c *Client) GetStablecoins(ctx context.Context, includePrices bool) ([]Stablecoin, error) {
	q := url.Values{"includePrices": {strconv.FormatBool(includePrices)}}
	return fetchList[Stablecoin](ctx, c, c.hosts.stablecoins, "/stablecoins", q, "peggedAssets")
}

// GetStablecoinsAsync is the non-blocking form of GetStablecoins.
func (c *Client) GetStablecoinsAsync(ctx context.Context, includePrices bool) *Future[[]Stablecoin] {
	return runAsync(ctx, func(ctx context.Context) ([]Stablecoin, error) {
		return c.GetStablecoins(ctx, includePrices)
	})
}

// GetStablecoinCharts returns stablecoin market cap history for chain (all
// chains when empty), optionally narrowed to one stablecoin id (all when 0).
func (c *Client) GetStablecoinCharts(ctx context.Context, chain string, stablecoinID int) ([]StablecoinChart, error) {
	path := "/stablecoincharts/all"
	if chain != "" {
		seg, err := pathSegment("chain", chain)
		if err != nil {
			return nil, err
		}
		path = "/stablecoincharts/" + seg
	}
	if stablecoinID < 0 {
		return nil, invalidArg("stablecoin", "must not be negative")
	}
	var q url.Values
	if stablecoinID > 0 {
		q = url.Values{"stablecoin": {strconv.Itoa(stablecoinID)}}
	}
	return fetch[[]StablecoinChart](ctx, c, c.hosts.stablecoins, path, q)
}

// GetStablecoinChartsAsync is the non-blocking form of GetStablecoinCharts.
func (c *Client) GetStablecoinChartsAsync(ctx context.Context, chain string, stablecoinID int) *Future[[]StablecoinChart] {
	return runAsync(ctx, func(ctx context.Context) ([]StablecoinChart, error) {
		return c.GetStablecoinCharts(ctx, chain, stablecoinID)
	})
}

// GetStablecoin returns a stablecoin's metadata and per-chain supply history.
func (c *Client) GetStablecoin(ctx context.Context, id int) (*StablecoinDetails, error) {
	if id <= 0 {
		return nil, invalidArg("id", "must be positive")
	}
	return fetchOne[StablecoinDetails](ctx, c, c.hosts.stablecoins, "/stablecoin/"+strconv.Itoa(id), nil)
}

// GetStablecoinAsync is the non-blocking form of GetStablecoin.
func (c *Client) GetStablecoinAsync(ctx context.Context, id int) *Future[*StablecoinDetails] {
	return runAsync(ctx, func(ctx context.Context) (*StablecoinDetails, error) {
		return c.GetStablecoin(ctx, id)
	})
}

// GetStablecoinChains lists chains with their stablecoin market cap.
func (c *Client) GetStablecoinChains(ctx context.Context) ([]StablecoinChain, error) {
	return fetch[[]StablecoinChain](ctx, c, c.hosts.stablecoins, "/stablecoinchains", nil)
}

// GetStablecoinChainsAsync is the non-blocking form of GetStablecoinChains.
func (c *Client) GetStablecoinChainsAsync(ctx context.Context) *Future[[]StablecoinChain] {
	return runAsync(ctx, c.GetStablecoinChains)
}

// GetStablecoinPrices returns historical stablecoin prices.
func (c *Client) GetStablecoinPrices(ctx context.Context) ([]StablecoinPrice, error) {
	return fetch[[]StablecoinPrice](ctx, c, c.hosts.stablecoins, "/stablecoinprices", nil)
}

// GetStablecoinPricesAsync is the non-blocking form of GetStablecoinPrices.
func (c *Client) GetStablecoinPricesAsync(ctx context.Context) *Future[[]StablecoinPrice] {
	return runAsync(ctx, c.GetStablecoinPrices)
}
