package alphavantage

import (
	"context"
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"

	"portfolioquotes/internal/quote"
)

// SymbolSearch returns at most limit best matches for keywords, in the
// order the API ranks them. limit <= 0 means no cap.
func (c *Client) SymbolSearch(ctx context.Context, keywords string, limit int) ([]quote.Match, error) {
	keywords = strings.TrimSpace(keywords)
	if keywords == "" {
		return []quote.Match{}, nil
	}
	doc, err := c.get(ctx, "SYMBOL_SEARCH", map[string]string{"keywords": keywords})
	if err != nil {
		return nil, err
	}

	raw, err := jsonpath.Get("$.bestMatches", doc)
	if err != nil {
		return nil, fmt.Errorf("%w: symbol search %q: missing bestMatches", ErrMalformed, keywords)
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: symbol search %q: bestMatches is not a list", ErrMalformed, keywords)
	}

	matches := make([]quote.Match, 0, len(items))
	for _, item := range items {
		if limit > 0 && len(matches) == limit {
			break
		}
		m := quote.Match{
			Symbol:   quote.NormalizeSymbol(field(item, `$["1. symbol"]`)),
			Name:     field(item, `$["2. name"]`),
			Type:     field(item, `$["3. type"]`),
			Region:   field(item, `$["4. region"]`),
			Currency: field(item, `$["8. currency"]`),
		}
		if m.Symbol == "" {
			continue
		}
		matches = append(matches, m)
	}
	return matches, nil
}
