package defillama

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// durationPattern matches the API's candle notation: "4h", "2d", "1w", "1M", or plain seconds.
var durationPattern = regexp.MustCompile(`^[0-9]+[smhdwMy]?$`)

// pathSegment validates an identifier and escapes it for use as one URL path segment.
func pathSegment(param, v string) (string, error) {
	if strings.TrimSpace(v) == "" {
		return "", invalidArg(param, "must not be empty")
	}
	if v != strings.TrimSpace(v) {
		return "", invalidArg(param, "must not have leading or trailing whitespace")
	}
	if strings.ContainsAny(v, "/?#,%") {
		return "", invalidArg(param, "must not contain any of / ? # , %")
	}
	for _, r := range v {
		if unicode.IsControl(r) {
			return "", invalidArg(param, "must not contain control characters")
		}
	}
	return url.PathEscape(v), nil
}

// coinsSegment joins coin identifiers with commas, preserving order.
func coinsSegment(coins []string) (string, error) {
	if len(coins) == 0 {
		return "", invalidArg("coins", "at least one coin is required")
	}
	parts := make([]string, 0, len(coins))
	for i, coin := range coins {
		seg, err := pathSegment("coins["+strconv.Itoa(i)+"]", coin)
		if err != nil {
			return "", err
		}
		parts = append(parts, seg)
	}
	return strings.Join(parts, ","), nil
}

func checkTimestamp(param string, ts int64) error {
	if ts <= 0 {
		return invalidArg(param, "must be a positive unix timestamp")
	}
	return nil
}

func checkDuration(param, v string) error {
	if !durationPattern.MatchString(v) {
		return invalidArg(param, "must look like 4h, 2d, 1w or 1M")
	}
	return nil
}

func formatUnix(ts int64) string { return strconv.FormatInt(ts, 10) }
