package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/google/subcommands"

	"portfolioquotes/internal/app"
	"portfolioquotes/internal/quote"
)

var errNoQuotes = errors.New("no quotes found")

type quoteCmd struct {
	env    *Env
	asJSON bool
}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "print the quote of one or more symbols" }
func (*quoteCmd) Usage() string {
	return `quote [-json] <symbol>...

  Looks up each symbol on its own, using the cache when fresh. The source
  column tells live data apart from the built-in static table.
`
}

func (c *quoteCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.asJSON, "json", false, "print lookup results as JSON")
}

func (c *quoteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() == 0 {
		c.env.errorf("at least one symbol is required")
		return subcommands.ExitUsageError
	}
	return c.env.run(ctx, func(a *app.App) error {
		results := make([]quote.Result, 0, f.NArg())
		for _, s := range f.Args() {
			results = append(results, a.Quotes.GetQuote(ctx, s))
		}
		if c.asJSON {
			return c.env.writeJSON(results)
		}
		return c.env.printResults(results)
	})
}

type batchCmd struct {
	env    *Env
	asJSON bool
}

func (*batchCmd) Name() string     { return "batch" }
func (*batchCmd) Synopsis() string { return "fetch quotes for many symbols, rate limited" }
func (*batchCmd) Usage() string {
	return `batch [-json] <symbol>[,<symbol>...]...

  Fetches the symbols in order, waiting the configured batch delay between
  live calls. Symbols without a quote are listed on stderr.
`
}

func (c *batchCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.asJSON, "json", false, "print quotes as JSON")
}

func (c *batchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	var symbols []string
	for _, arg := range f.Args() {
		symbols = append(symbols, strings.Split(arg, ",")...)
	}
	if len(quote.NormalizeSymbols(symbols)) == 0 {
		c.env.errorf("at least one symbol is required")
		return subcommands.ExitUsageError
	}
	return c.env.run(ctx, func(a *app.App) error {
		var found, missing []quote.Result
		for _, res := range a.Quotes.FetchQuotes(ctx, symbols) {
			if res.Found() {
				found = append(found, res)
			} else {
				missing = append(missing, res)
			}
		}
		for _, res := range missing {
			fmt.Fprintf(c.env.Err, "missing: %s\n", res.Symbol)
		}
		if len(found) == 0 {
			return errNoQuotes
		}
		if c.asJSON {
			quotes := make([]quote.Quote, len(found))
			for i, res := range found {
				quotes[i] = *res.Quote
			}
			return c.env.writeJSON(quotes)
		}
		return c.env.printResults(found)
	})
}

func (e *Env) printResults(results []quote.Result) error {
	w := tabwriter.NewWriter(e.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SYMBOL\tPRICE\tCHANGE\tCHANGE%\tVOLUME\tSOURCE\tCACHED")
	for _, r := range results {
		if !r.Found() {
			fmt.Fprintf(w, "%s\t-\t-\t-\t-\t%s\t-\n", r.Symbol, r.Source)
			continue
		}
		q := r.Quote
		fmt.Fprintf(w, "%s\t%s\t%s\t%s%%\t%d\t%s\t%t\n",
			q.Symbol, q.Price.StringFixed(2), q.Change.StringFixed(2), q.ChangePercent.StringFixed(2),
			q.Volume, r.Source, r.Cached)
	}
	return w.Flush()
}

type companyCmd struct{ env *Env }

func (*companyCmd) Name() string     { return "company" }
func (*companyCmd) Synopsis() string { return "print the company profile of a symbol" }
func (*companyCmd) Usage() string {
	return `company <symbol>
`
}
func (*companyCmd) SetFlags(*flag.FlagSet) {}

func (c *companyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		c.env.errorf("exactly one symbol is required")
		return subcommands.ExitUsageError
	}
	return c.env.run(ctx, func(a *app.App) error {
		info, src, err := a.Quotes.GetCompanyInfo(ctx, f.Arg(0))
		if err != nil {
			return err
		}
		return c.env.writeJSON(map[string]any{"company": info, "source": src})
	})
}

type searchCmd struct{ env *Env }

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "search symbols by ticker or company name" }
func (*searchCmd) Usage() string {
	return `search <query>...

  The words of the query are joined with spaces.
`
}
func (*searchCmd) SetFlags(*flag.FlagSet) {}

func (c *searchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	query := strings.Join(f.Args(), " ")
	if strings.TrimSpace(query) == "" {
		c.env.errorf("a query is required")
		return subcommands.ExitUsageError
	}
	return c.env.run(ctx, func(a *app.App) error {
		w := tabwriter.NewWriter(c.env.Out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SYMBOL\tNAME\tTYPE\tREGION\tCURRENCY")
		for _, m := range a.Quotes.SearchSymbols(ctx, query) {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", m.Symbol, m.Name, m.Type, m.Region, m.Currency)
		}
		return w.Flush()
	})
}

type validateCmd struct{ env *Env }

func (*validateCmd) Name() string     { return "validate" }
func (*validateCmd) Synopsis() string { return "check that symbols resolve to a quote" }
func (*validateCmd) Usage() string {
	return `validate <symbol>...

  Prints "<symbol> valid" or "<symbol> invalid" per symbol and fails when
  any symbol is invalid.
`
}
func (*validateCmd) SetFlags(*flag.FlagSet) {}

func (c *validateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() == 0 {
		c.env.errorf("at least one symbol is required")
		return subcommands.ExitUsageError
	}
	return c.env.run(ctx, func(a *app.App) error {
		var invalid []string
		for _, s := range quote.NormalizeSymbols(f.Args()) {
			state := "valid"
			if !a.Quotes.ValidateSymbol(ctx, s) {
				state = "invalid"
				invalid = append(invalid, s)
			}
			fmt.Fprintf(c.env.Out, "%s %s\n", s, state)
		}
		if len(invalid) > 0 {
			return fmt.Errorf("invalid symbols: %s", strings.Join(invalid, ", "))
		}
		return nil
	})
}

type invalidateCmd struct {
	env *Env
	all bool
}

func (*invalidateCmd) Name() string     { return "invalidate" }
func (*invalidateCmd) Synopsis() string { return "drop cached quotes" }
func (*invalidateCmd) Usage() string {
	return `invalidate (-all | <symbol>...)
`
}

func (c *invalidateCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.all, "all", false, "drop every cached quote")
}

func (c *invalidateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if c.all == (f.NArg() > 0) {
		c.env.errorf("either -all or symbols are required")
		return subcommands.ExitUsageError
	}
	return c.env.run(ctx, func(a *app.App) error {
		if c.all {
			return a.Quotes.InvalidateAll(ctx)
		}
		for _, s := range f.Args() {
			if err := a.Quotes.Invalidate(ctx, s); err != nil {
				return err
			}
		}
		return nil
	})
}
