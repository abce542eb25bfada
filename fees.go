package defillama

import (
	"context"
	"net/url"
	"strconv"
)

// FeeDataType selects between fees paid by users and revenue kept by the protocol.
type FeeDataType string

// Fee series; the empty value selects DailyFees.
const (
	DailyFees    FeeDataType = "dailyFees"
	DailyRevenue FeeDataType = "dailyRevenue"
)

func (t FeeDataType) orDefault() (string, error) {
	switch t {
	case "":
		return string(DailyFees), nil
	case DailyFees, DailyRevenue:
		return string(t), nil
	}
	return "", invalidArg("dataType", "unknown fee data type "+strconv.Quote(string(t)))
}

// FeeOverview is the body of GET /overview/fees.
type FeeOverview = Overview

// FeeSummary is the body of GET /summary/fees/{slug}.
type FeeSummary = Summary

// GetFees returns fees or revenue across all protocols, optionally for one chain.
func (c *Client) GetFees(ctx context.Context, opts OverviewOptions, dataType FeeDataType) (*FeeOverview, error) {
	dt, err := dataType.orDefault()
	if err != nil {
		return nil, err
	}
	return c.overview(ctx, "fees", opts, dt)
}

// GetFeesAsync is the non-blocking form of GetFees.
func (c *Client) GetFeesAsync(ctx context.Context, opts OverviewOptions, dataType FeeDataType) *Future[*FeeOverview] {
	return runAsync(ctx, func(ctx context.Context) (*FeeOverview, error) {
		return c.GetFees(ctx, opts, dataType)
	})
}

// GetFeeSummary returns the fee or revenue history of one protocol.
func (c *Client) GetFeeSummary(ctx context.Context, slug string, dataType FeeDataType) (*FeeSummary, error) {
	dt, err := dataType.orDefault()
	if err != nil {
		return nil, err
	}
	return c.summary(ctx, "fees", slug, url.Values{"dataType": {dt}})
}

// GetFeeSummaryAsync is the non-blocking form of GetFeeSummary.
func (c *Client) GetFeeSummaryAsync(ctx context.Context, slug string, dataType FeeDataType) *Future[*FeeSummary] {
	return runAsync(ctx, func(ctx context.Context) (*FeeSummary, error) {
		return c.GetFeeSummary(ctx, slug, dataType)
	})
}
