package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/acdex/internal/domain"
	"github.com/kailas-cloud/acdex/internal/domain/aircraft"
	"github.com/kailas-cloud/acdex/internal/domain/search/suggestion"
	chiTransport "github.com/kailas-cloud/acdex/internal/transport/chi"
	searchuc "github.com/kailas-cloud/acdex/internal/usecase/search"
)

func newSearchCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Resolve a query to one aircraft variant",
		Example: `  acdex search b744
  acdex search "id:1[2sf]"
  acdex search "name:A380-800[x]"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closeFn, err := opts.openSearcher(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()
			return runSearch(cmd.Context(), s, strings.Join(args, " "), cmd.OutOrStdout(), asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the API JSON response")
	return cmd
}

func newSuggestCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "suggest <query>",
		Short: "Rank catalog aircraft by similarity to a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closeFn, err := opts.openSearcher(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			items, err := s.Suggest(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), chiTransport.NewSuggestResponse(items))
			}
			return printSuggestions(cmd.OutOrStdout(), items)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the API JSON response")
	return cmd
}

// openSearcher loads config and catalog and returns the engine with a cleanup func.
func (o *rootOptions) openSearcher(ctx context.Context) (searchuc.Searcher, func(), error) {
	a, err := o.setup()
	if err != nil {
		return nil, nil, err
	}
	cat, err := a.loadCatalog(ctx)
	if err != nil {
		a.Close()
		return nil, nil, err
	}
	s, err := a.searcher(cat, nil)
	if err != nil {
		a.Close()
		return nil, nil, err
	}
	return searchuc.NewInstrumented(s, a.logger), a.Close, nil
}

// runSearch prints the resolved aircraft. On a miss it lists suggestions
// before returning the original error.
func runSearch(ctx context.Context, s searchuc.Searcher, q string, out io.Writer, asJSON bool) error {
	res, err := s.Search(ctx, q)
	if errors.Is(err, domain.ErrNotFound) {
		if items, serr := s.Suggest(ctx, q); serr == nil {
			fmt.Fprintln(out, "did you mean:")
			_ = printSuggestions(out, items)
		}
		return err
	}
	if err != nil {
		return err
	}

	if asJSON {
		return writeJSON(out, chiTransport.NewSearchResponse(res))
	}
	return printResult(out, res)
}

func printResult(out io.Writer, res searchuc.Result) error {
	a, base := res.Aircraft, res.Base
	mods := strings.Join(res.Clause.Mods.Names(), ", ")
	if mods == "" {
		mods = "none"
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s (%s, %s)\n", "aircraft", a.Name, a.ShortName, a.Manufacturer)
	fmt.Fprintf(tw, "%s\t%d\n", "id", a.ID)
	fmt.Fprintf(tw, "%s\t%s\n", "type", a.Type)
	fmt.Fprintf(tw, "%s\t%d %s (engine id %d)\n", "engine", a.Priority, a.EngineName, a.EngineID)
	fmt.Fprintf(tw, "%s\t%s\n", "matched by", res.MatchedBy)
	fmt.Fprintf(tw, "%s\t%s\n", "modifiers", mods)
	fmt.Fprintf(tw, "%s\t%s\n", "speed", stat(a.Speed, base.Speed, "km/h"))
	fmt.Fprintf(tw, "%s\t%s\n", "fuel", stat(a.Fuel, base.Fuel, "lbs/km"))
	fmt.Fprintf(tw, "%s\t%s\n", "co2", stat(a.CO2, base.CO2, "kg/pax/km"))
	fmt.Fprintf(tw, "%s\t%d\n", "capacity", a.Capacity)
	fmt.Fprintf(tw, "%s\t%d km\n", "range", a.Range)
	fmt.Fprintf(tw, "%s\t%d ft\n", "runway", a.Rwy)
	fmt.Fprintf(tw, "%s\t$%d\n", "cost", a.Cost)
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

func stat(v, base float64, unit string) string {
	if v == base {
		return fmt.Sprintf("%.4g %s", v, unit)
	}
	return fmt.Sprintf("%.4g %s (base %.4g)", v, unit, base)
}

func printSuggestions(out io.Writer, items []suggestion.Item) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, it := range items {
		fmt.Fprintf(tw, "  %.3f\t%s\t%s\t%s\n", it.Score, it.Aircraft.ShortName, it.Aircraft.Name, idQuery(it.Aircraft))
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write suggestions: %w", err)
	}
	return nil
}

func idQuery(a aircraft.Aircraft) string { return fmt.Sprintf("id:%d", a.ID) }

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
