package cli

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/obinss/CoCreate-MVP/internal/bootstrap"
	"github.com/obinss/CoCreate-MVP/internal/config"
	"github.com/obinss/CoCreate-MVP/internal/domain/search/filter"
	"github.com/obinss/CoCreate-MVP/internal/domain/search/request"
	"github.com/obinss/CoCreate-MVP/internal/domain/search/result"
	"github.com/obinss/CoCreate-MVP/internal/domain/search/sortorder"
	searchuc "github.com/obinss/CoCreate-MVP/internal/usecase/search"
)

type searchHitJSON struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Location string  `json:"locationName"`
	Score    float64 `json:"score"`
}

func (a *app) newSearchCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "search [query]",
		Short: "Search a catalog file",
		Long: `Rank catalog listings against a free-text query and optional filters.
Without a query, every listing that passes the filters is returned in catalog order.`,
		Args: cobra.ArbitraryArgs,
		RunE: a.runSearch,
	}
	c.Flags().String(FlagCatalog, DefaultCatalog, "Catalog JSON file")
	c.Flags().String("category", "", "Exact category")
	c.Flags().String("condition", "", "Condition: new, opened_unused, cut_undamaged, slightly_damaged")
	c.Flags().String("min-price", "", "Minimum price")
	c.Flags().String("max-price", "", "Maximum price")
	c.Flags().String("location", "", "Location substring")
	c.Flags().String("sort", "", "Sort: relevance, newest, price-low, price-high, distance")
	c.Flags().Float64("lat", 0, "Origin latitude for the distance sort")
	c.Flags().Float64("lon", 0, "Origin longitude for the distance sort")
	c.Flags().Bool("highlight", false, "Mark matched terms in titles")
	return c
}

func (a *app) runSearch(c *cobra.Command, args []string) error {
	ctx := c.Context()
	query := strings.Join(args, " ")

	raw := map[string]string{}
	for _, name := range []string{"category", "condition", "location"} {
		raw[name], _ = c.Flags().GetString(name)
	}
	raw["min_price"], _ = c.Flags().GetString("min-price")
	raw["max_price"], _ = c.Flags().GetString("max-price")

	sortFlag, _ := c.Flags().GetString("sort")
	order, ok := sortorder.Parse(sortFlag)
	if !ok {
		return fmt.Errorf("invalid sort order %q", sortFlag)
	}
	var origin *request.Origin
	if c.Flags().Changed("lat") || c.Flags().Changed("lon") {
		lat, _ := c.Flags().GetFloat64("lat")
		lon, _ := c.Flags().GetFloat64("lon")
		origin = &request.Origin{Latitude: lat, Longitude: lon}
	}
	highlight, _ := c.Flags().GetBool("highlight")

	req, err := request.New(query, filter.Parse(raw), order, origin, highlight)
	if err != nil {
		return err
	}

	path, _ := c.Flags().GetString(FlagCatalog)
	cat, err := bootstrap.OpenCatalog(config.CatalogConfig{Source: config.SourceJSON, Path: path}, a.logger)
	if err != nil {
		return err
	}
	defer func() { _ = cat.Close() }()

	history, closeHistory, err := a.openHistory()
	if err != nil {
		return err
	}
	defer closeHistory()

	hits, err := searchuc.New(cat.Source, history).Search(ctx, &req)
	if err != nil {
		return err
	}
	a.logger.Debug("search done", zap.String("query", query), zap.Int("hits", len(hits)))

	if a.asJSON {
		return a.printJSON(hitsToJSON(hits))
	}
	return a.printHits(hits)
}

func hitsToJSON(hits []result.Hit) []searchHitJSON {
	out := make([]searchHitJSON, len(hits))
	for i, h := range hits {
		it := h.Item()
		out[i] = searchHitJSON{
			ID:       it.ID,
			Title:    it.Title,
			Category: it.Category,
			Price:    it.Price,
			Location: it.LocationName,
			Score:    h.Score(),
		}
	}
	return out
}

func (a *app) printHits(hits []result.Hit) error {
	if len(hits) == 0 {
		_, err := fmt.Fprintln(a.out, "No items found")
		return err
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SCORE\tTITLE\tCATEGORY\tPRICE\tLOCATION")
	for _, h := range hits {
		it := h.Item()
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			strconv.FormatFloat(h.Score(), 'f', -1, 64),
			it.Title, it.Category,
			strconv.FormatFloat(it.Price, 'f', 2, 64),
			it.LocationName)
	}
	return tw.Flush()
}

func (a *app) newHighlightCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "highlight <text> <query>",
		Short: "Mark query terms in text",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			marked := searchuc.HighlightTerms(args[0], args[1])
			if a.asJSON {
				return a.printJSON(map[string]string{"text": marked})
			}
			_, err := fmt.Fprintln(a.out, marked)
			return err
		},
	}
}
