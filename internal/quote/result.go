package quote

import "encoding/json"

// Source tells where the data in a Result came from.
type Source int

const (
	// NotFound means no data exists for the symbol in any source.
	NotFound Source = iota
	// Live means the data was fetched from the upstream API.
	Live
	// StaticFallback means the data came from the built-in static table.
	StaticFallback
)

func (s Source) String() string {
	switch s {
	case Live:
		return "live"
	case StaticFallback:
		return "static_fallback"
	default:
		return "not_found"
	}
}

func (s Source) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// ParseSource is the inverse of Source.String. Unknown names are NotFound.
func ParseSource(name string) Source {
	switch name {
	case "live":
		return Live
	case "static_fallback":
		return StaticFallback
	default:
		return NotFound
	}
}

func (s *Source) UnmarshalText(b []byte) error {
	*s = ParseSource(string(b))
	return nil
}

// Result is the outcome of a single quote lookup.
//
// Symbol is the normalized symbol that was looked up. Cause is nil for live
// results. For fallback and not-found results it holds the reason the live
// lookup did not produce data; a fallback result has no cause when no live
// upstream is configured, and a not-found result then wraps ErrUnknownSymbol.
type Result struct {
	Symbol string
	Quote  *Quote
	Source Source
	Cached bool
	Cause  error
}

// Found reports whether the result carries a quote.
func (r Result) Found() bool { return r.Source != NotFound && r.Quote != nil }

type resultJSON struct {
	Symbol string `json:"symbol"`
	Quote  *Quote `json:"quote,omitempty"`
	Source Source `json:"source"`
	Cached bool   `json:"cached"`
	Cause  string `json:"cause,omitempty"`
}

func (r Result) MarshalJSON() ([]byte, error) {
	out := resultJSON{Symbol: r.Symbol, Quote: r.Quote, Source: r.Source, Cached: r.Cached}
	if r.Cause != nil {
		out.Cause = r.Cause.Error()
	}
	return json.Marshal(out)
}
