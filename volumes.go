package defillama

import (
	"context"
	"net/url"
	"strconv"
)

// VolumeDataType selects the series reported by the options endpoints.
type VolumeDataType string

// Options volume series; the empty value selects DailyNotionalVolume.
const (
	DailyNotionalVolume VolumeDataType = "dailyNotionalVolume"
	DailyPremiumVolume  VolumeDataType = "dailyPremiumVolume"
)

func (t VolumeDataType) orDefault() (string, error) {
	switch t {
	case "":
		return string(DailyNotionalVolume), nil
	case DailyNotionalVolume, DailyPremiumVolume:
		return string(t), nil
	}
	return "", invalidArg("dataType", "unknown volume data type "+strconv.Quote(string(t)))
}

// ChartFlags controls which chart series the overview and summary endpoints
// embed. The zero value asks for neither, which keeps responses small.
type ChartFlags struct {
	IncludeTotalDataChart          bool
	IncludeTotalDataChartBreakdown bool
}

func (f ChartFlags) apply(q url.Values) {
	q.Set("excludeTotalDataChart", strconv.FormatBool(!f.IncludeTotalDataChart))
	q.Set("excludeTotalDataChartBreakdown", strconv.FormatBool(!f.IncludeTotalDataChartBreakdown))
}

// OverviewOptions narrows an overview to one chain and picks the chart series.
type OverviewOptions struct {
	Chain string
	ChartFlags
}

func (o OverviewOptions) path(kind string) (string, error) {
	path := "/overview/" + kind
	if o.Chain == "" {
		return path, nil
	}
	seg, err := pathSegment("chain", o.Chain)
	if err != nil {
		return "", err
	}
	return path + "/" + seg, nil
}

// Overview is the body of the /overview/{dexs,options,fees} endpoints.
type Overview struct {
	TotalDataChart          []ChartPoint                  `json:"totalDataChart,omitempty"`
	TotalDataChartBreakdown []BreakdownPoint              `json:"totalDataChartBreakdown,omitempty"`
	Breakdown24h            map[string]map[string]float64 `json:"breakdown24h,omitempty"`
	Breakdown30d            map[string]map[string]float64 `json:"breakdown30d,omitempty"`
	Chain                   string                        `json:"chain,omitempty"`
	AllChains               []string                      `json:"allChains" validate:"required"`
	Protocols               []OverviewProtocol            `json:"protocols" validate:"required,dive"`
	Total24h                *float64                      `json:"total24h,omitempty"`
	Total48hto24h           *float64                      `json:"total48hto24h,omitempty"`
	Total7d                 *float64                      `json:"total7d,omitempty"`
	Total14dto7d            *float64                      `json:"total14dto7d,omitempty"`
	Total30d                *float64                      `json:"total30d,omitempty"`
	Total60dto30d           *float64                      `json:"total60dto30d,omitempty"`
	Total1y                 *float64                      `json:"total1y,omitempty"`
	TotalAllTime            *float64                      `json:"totalAllTime,omitempty"`
	Change1d                *float64                      `json:"change_1d,omitempty"`
	Change7d                *float64                      `json:"change_7d,omitempty"`
	Change1m                *float64                      `json:"change_1m,omitempty"`
	Change7dOver7d          *float64                      `json:"change_7dover7d,omitempty"`
	Change30dOver30d        *float64                      `json:"change_30dover30d,omitempty"`
}

// OverviewProtocol is one protocol row of an overview.
type OverviewProtocol struct {
	DefillamaID    string                        `json:"defillamaId,omitempty"`
	Name           string                        `json:"name" validate:"required"`
	DisplayName    string                        `json:"displayName,omitempty"`
	Module         string                        `json:"module,omitempty"`
	Category       string                        `json:"category,omitempty"`
	Logo           string                        `json:"logo,omitempty"`
	Chains         []string                      `json:"chains,omitempty"`
	ProtocolType   string                        `json:"protocolType,omitempty"`
	MethodologyURL string                        `json:"methodologyURL,omitempty"`
	Methodology    map[string]string             `json:"methodology,omitempty"`
	Slug           string                        `json:"slug,omitempty"`
	ID             string                        `json:"id,omitempty"`
	ParentProtocol string                        `json:"parentProtocol,omitempty"`
	Total24h       *float64                      `json:"total24h,omitempty"`
	Total48hto24h  *float64                      `json:"total48hto24h,omitempty"`
	Total7d        *float64                      `json:"total7d,omitempty"`
	Total30d       *float64                      `json:"total30d,omitempty"`
	Total1y        *float64                      `json:"total1y,omitempty"`
	TotalAllTime   *float64                      `json:"totalAllTime,omitempty"`
	Change1d       *float64                      `json:"change_1d,omitempty"`
	Change7d       *float64                      `json:"change_7d,omitempty"`
	Change1m       *float64                      `json:"change_1m,omitempty"`
	Breakdown24h   map[string]map[string]float64 `json:"breakdown24h,omitempty"`
}

// Summary is the body of the /summary/{dexs,options,fees}/{slug} endpoints.
type Summary struct {
	ID                      string            `json:"id,omitempty"`
	Name                    string            `json:"name" validate:"required"`
	DisplayName             string            `json:"displayName,omitempty"`
	URL                     string            `json:"url,omitempty"`
	Description             string            `json:"description,omitempty"`
	Logo                    string            `json:"logo,omitempty"`
	GeckoID                 string            `json:"gecko_id,omitempty"`
	CmcID                   string            `json:"cmcId,omitempty"`
	Chains                  []string          `json:"chains,omitempty"`
	Twitter                 string            `json:"twitter,omitempty"`
	Module                  string            `json:"module,omitempty"`
	Category                string            `json:"category,omitempty"`
	Slug                    string            `json:"slug,omitempty"`
	ProtocolType            string            `json:"protocolType,omitempty"`
	MethodologyURL          string            `json:"methodologyURL,omitempty"`
	Methodology             map[string]string `json:"methodology,omitempty"`
	ParentProtocol          string            `json:"parentProtocol,omitempty"`
	Total24h                *float64          `json:"total24h,omitempty"`
	Total48hto24h           *float64          `json:"total48hto24h,omitempty"`
	Total7d                 *float64          `json:"total7d,omitempty"`
	Total30d                *float64          `json:"total30d,omitempty"`
	TotalAllTime            *float64          `json:"totalAllTime,omitempty"`
	Change1d                *float64          `json:"change_1d,omitempty"`
	TotalDataChart          []ChartPoint      `json:"totalDataChart,omitempty"`
	TotalDataChartBreakdown []BreakdownPoint  `json:"totalDataChartBreakdown,omitempty"`
}

// DexOverview is the body of GET /overview/dexs.
type DexOverview = Overview

// OptionsOverview is the body of GET /overview/options.
type OptionsOverview = Overview

// DexSummary is the body of GET /summary/dexs/{slug}.
type DexSummary = Summary

// OptionsSummary is the body of GET /summary/options/{slug}.
type OptionsSummary = Summary

// SummaryOptions picks the chart series embedded in a DEX summary.
type SummaryOptions = ChartFlags

func (c *Client) overview(ctx context.Context, kind string, opts OverviewOptions, dataType string) (*Overview, error) {
	path, err := opts.path(kind)
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	opts.apply(q)
	if dataType != "" {
		q.Set("dataType", dataType)
	}
	return fetchOne[Overview](ctx, c, c.hosts.api, path, q)
}

func (c *Client) summary(ctx context.Context, kind, slug string, q url.Values) (*Summary, error) {
	seg, err := pathSegment("slug", slug)
	if err != nil {
		return nil, err
	}
	return fetchOne[Summary](ctx, c, c.hosts.api, "/summary/"+kind+"/"+seg, q)
}

// GetDexs returns DEX volume across all protocols, optionally for one chain.
func (c *Client) GetDexs(ctx context.Context, opts OverviewOptions) (*DexOverview, error) {
	return c.overview(ctx, "dexs", opts, "")
}

// GetDexsAsync is the non-blocking form of GetDexs.
func (c *Client) GetDexsAsync(ctx context.Context, opts OverviewOptions) *Future[*DexOverview] {
	return runAsync(ctx, func(ctx context.Context) (*DexOverview, error) {
		return c.GetDexs(ctx, opts)
	})
}

// GetDexSummary returns the volume history of one DEX.
func (c *Client) GetDexSummary(ctx context.Context, slug string, opts SummaryOptions) (*DexSummary, error) {
	q := url.Values{}
	opts.apply(q)
	return c.summary(ctx, "dexs", slug, q)
}

// GetDexSummaryAsync is the non-blocking form of GetDexSummary.
func (c *Client) GetDexSummaryAsync(ctx context.Context, slug string, opts SummaryOptions) *Future[*DexSummary] {
	return runAsync(ctx, func(ctx context.Context) (*DexSummary, error) {
		return c.GetDexSummary(ctx, slug, opts)
	})
}

// GetOptionsDexs returns options trading volume across all protocols.
func (c *Client) GetOptionsDexs(ctx context.Context, opts OverviewOptions, dataType VolumeDataType) (*OptionsOverview, error) {
	dt, err := dataType.orDefault()
	if err != nil {
		return nil, err
	}
	return c.overview(ctx, "options", opts, dt)
}

// GetOptionsDexsAsync is the non-blocking form of GetOptionsDexs.
func (c *Client) GetOptionsDexsAsync(ctx context.Context, opts OverviewOptions, dataType VolumeDataType) *Future[*OptionsOverview] {
	return runAsync(ctx, func(ctx context.Context) (*OptionsOverview, error) {
		return c.GetOptionsDexs(ctx, opts, dataType)
	})
}

// GetOptionsDexSummary returns the volume history of one options protocol.
func (c *Client) GetOptionsDexSummary(ctx context.Context, slug string, dataType VolumeDataType) (*OptionsSummary, error) {
	dt, err := dataType.orDefault()
	if err != nil {
		return nil, err
	}
	return c.summary(ctx, "options", slug, url.Values{"dataType": {dt}})
}

// GetOptionsDexSummaryAsync is the non-blocking form of GetOptionsDexSummary.
func (c *Client) GetOptionsDexSummaryAsync(ctx context.Context, slug string, dataType VolumeDataType) *Future[*OptionsSummary] {
	return runAsync(ctx, func(ctx context.Context) (*OptionsSummary, error) {
		return c.GetOptionsDexSummary(ctx, slug, dataType)
	})
}
