package defillama

import "context"

// Protocol is one entry of GET /protocols.
type Protocol struct {
	ID          string             `json:"id" validate:"required"`
	Name        string             `json:"name" validate:"required"`
	Address     string             `json:"address,omitempty"`
	Symbol      string             `json:"symbol"`
	URL         string             `json:"url,omitempty"`
	Description string             `json:"description,omitempty"`
	Chain       string             `json:"chain,omitempty"`
	Logo        string             `json:"logo,omitempty"`
	Chains      []string           `json:"chains" validate:"required"`
	GeckoID     string             `json:"gecko_id,omitempty"`
	CmcID       string             `json:"cmcId,omitempty"`
	Category    string             `json:"category" validate:"required"`
	Slug        string             `json:"slug,omitempty"`
	TVL         *float64           `json:"tvl,omitempty"`
	ChainTVLs   map[string]float64 `json:"chainTvls" validate:"required"`
	Change1h    *float64           `json:"change_1h,omitempty"`
	Change1d    *float64           `json:"change_1d,omitempty"`
	Change7d    *float64           `json:"change_7d,omitempty"`
}

// ProtocolTVL is one point of a protocol's TVL history.
type ProtocolTVL struct {
	Date              *Timestamp `json:"date" validate:"required"`
	TotalLiquidityUSD *float64   `json:"totalLiquidityUSD" validate:"required"`
}

// ProtocolChainTVL is the per-chain TVL history of a protocol.
type ProtocolChainTVL struct {
	TVL         []ProtocolTVL  `json:"tvl" validate:"dive"`
	Tokens      []TokenHistory `json:"tokens,omitempty" validate:"omitempty,dive"`
	TokensInUSD []TokenHistory `json:"tokensInUsd,omitempty" validate:"omitempty,dive"`
}

// ProtocolDetails is the body of GET /protocol/{slug}.
type ProtocolDetails struct {
	ID               string                      `json:"id" validate:"required"`
	Name             string                      `json:"name" validate:"required"`
	Address          string                      `json:"address,omitempty"`
	Symbol           string                      `json:"symbol"`
	URL              string                      `json:"url,omitempty"`
	Description      string                      `json:"description,omitempty"`
	Chain            string                      `json:"chain,omitempty"`
	Logo             string                      `json:"logo,omitempty"`
	Chains           []string                    `json:"chains" validate:"required"`
	GeckoID          string                      `json:"gecko_id,omitempty"`
	CmcID            string                      `json:"cmcId,omitempty"`
	Category         string                      `json:"category" validate:"required"`
	TVL              []ProtocolTVL               `json:"tvl" validate:"dive"`
	Tokens           []TokenHistory              `json:"tokens,omitempty" validate:"omitempty,dive"`
	TokensInUSD      []TokenHistory              `json:"tokensInUsd,omitempty" validate:"omitempty,dive"`
	ChainTVLs        map[string]ProtocolChainTVL `json:"chainTvls" validate:"required,dive"`
	CurrentChainTVLs map[string]float64          `json:"currentChainTvls,omitempty"`
}

// HistoricalTVL is one point of GET /v2/historicalChainTvl.
type HistoricalTVL struct {
	Date *Timestamp `json:"date" validate:"required"`
	TVL  *float64   `json:"tvl" validate:"required"`
}

// Chain is one entry of GET /v2/chains.
type Chain struct {
	GeckoID     string   `json:"gecko_id,omitempty"`
	TVL         *float64 `json:"tvl,omitempty"`
	TokenSymbol string   `json:"tokenSymbol,omitempty"`
	CmcID       string   `json:"cmcId,omitempty"`
	Name        string   `json:"name" validate:"required"`
	ChainID     *int64   `json:"chainId,omitempty"`
}

// GetProtocols lists every protocol with its current TVL.
func (c *Client) GetProtocols(ctx context.Context) ([]Protocol, error) {
	return fetch[[]Protocol](ctx, c, c.hosts.api, "/protocols", nil)
}

// GetProtocolsAsync is the non-blocking form of GetProtocols.
func (c *Client) GetProtocolsAsync(ctx context.Context) *Future[[]Protocol] {
	return runAsync(ctx, c.GetProtocols)
}

// GetProtocol returns the TVL history of a protocol with token and chain breakdowns.
func (c *Client) GetProtocol(ctx context.Context, slug string) (*ProtocolDetails, error) {
	seg, err := pathSegment("slug", slug)
	if err != nil {
		return nil, err
	}
	return fetchOne[ProtocolDetails](ctx, c, c.hosts.api, "/protocol/"+seg, nil)
}

// GetProtocolAsync is the non-blocking form of GetProtocol.
func (c *Client) GetProtocolAsync(ctx context.Context, slug string) *Future[*ProtocolDetails] {
	return runAsync(ctx, func(ctx context.Context) (*ProtocolDetails, error) {
		return c.GetProtocol(ctx, slug)
	})
}

// GetHistoricalChainTVL returns DeFi TVL history for chain, or across all chains when chain is empty.
func (c *Client) GetHistoricalChainTVL(ctx context.Context, chain string) ([]HistoricalTVL, error) {
	path := "/v2/historicalChainTvl"
	if chain != "" {
		seg, err := pathSegment("chain", chain)
		if err != nil {
			return nil, err
		}
		path += "/" + seg
	}
	return fetch[[]HistoricalTVL](ctx, c, c.hosts.api, path, nil)
}

// GetHistoricalChainTVLAsync is the non-blocking form of GetHistoricalChainTVL.
func (c *Client) GetHistoricalChainTVLAsync(ctx context.Context, chain string) *Future[[]HistoricalTVL] {
	return runAsync(ctx, func(ctx context.Context) ([]HistoricalTVL, error) {
		return c.GetHistoricalChainTVL(ctx, chain)
	})
}

// GetProtocolTVL returns the current TVL of a protocol in USD.
func (c *Client) GetProtocolTVL(ctx context.Context, slug string) (float64, error) {
	seg, err := pathSegment("slug", slug)
	if err != nil {
		return 0, err
	}
	return fetch[float64](ctx, c, c.hosts.api, "/tvl/"+seg, nil)
}

// GetProtocolTVLAsync is the non-blocking form of GetProtocolTVL.
func (c *Client) GetProtocolTVLAsync(ctx context.Context, slug string) *Future[float64] {
	return runAsync(ctx, func(ctx context.Context) (float64, error) {
		return c.GetProtocolTVL(ctx, slug)
	})
}

// GetChains lists chains with their current TVL.
func (c *Client) GetChains(ctx context.Context) ([]Chain, error) {
	return fetch[[]Chain](ctx, c, c.hosts.api, "/v2/chains", nil)
}

// GetChainsAsync is the non-blocking form of GetChains.
func (c *Client) GetChainsAsync(ctx context.Context) *Future[[]Chain] {
	return runAsync(ctx, c.GetChains)
}
