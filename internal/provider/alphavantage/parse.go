package alphavantage

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

const dayLayout = "2006-01-02"

// field returns the string at path, or "" when the path does not resolve.
func field(doc any, path string) string {
	v, err := jsonpath.Get(path, doc)
	if err != nil {
		return ""
	}
	// jsonpath returns a list for wildcard paths; keep the first answer.
	if list, ok := v.([]any); ok {
		if len(list) == 0 {
			return ""
		}
		v = list[0]
	}
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// object returns the JSON object at path, or nil.
func object(doc any, path string) map[string]any {
	v, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil
	}
	m, _ := v.(map[string]any)
	return m
}

func parseDecimal(name, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s %q", ErrMalformed, name, s)
	}
	return d, nil
}

// parsePercent parses values like "-1.2534%".
func parsePercent(s string) (decimal.Decimal, error) {
	return parseDecimal("change percent", strings.TrimSuffix(strings.TrimSpace(s), "%"))
}

func parseVolume(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: volume %q", ErrMalformed, s)
	}
	return n, nil
}

func parseDay(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: trading day %q", ErrMalformed, s)
	}
	return t, nil
}

// parseMarketCap returns nil for the "None" and "-" placeholders.
func parseMarketCap(s string) (*int64, error) {
	switch s {
	case "", "None", "-":
		return nil, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: market capitalization %q", ErrMalformed, s)
	}
	return &n, nil
}
