package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bialog/bialog/internal/api"
	"github.com/bialog/bialog/internal/config"
	"github.com/bialog/bialog/internal/pagination"
	"github.com/bialog/bialog/internal/tui"
)

// purchaselogOutput is the JSON form of one page of history.
type purchaselogOutput struct {
	Meta        pagination.Meta   `json:"meta"`
	Window      string            `json:"window"`
	Purchaselog []api.Purchaselog `json:"purchaselog"`
}

// NewPurchaselogCmd creates the purchaselog command.
func NewPurchaselogCmd() *cobra.Command {
	var (
		page    int
		output  string
		sortStr string
	)

	cmd := &cobra.Command{
		Use:   "purchaselog",
		Short: "Show purchase history",
		Long: `Shows your purchase history one page at a time.

On a terminal this opens the interactive history view. When the output is
redirected, or with --output json, a single page is printed together with
the page selector.`,
		Example: `  # Browse interactively
  bialog purchaselog

  # Print page 3 with items sorted by price, highest first
  bialog purchaselog --page 3 --sort price:desc > history.txt

  # JSON for scripts
  bialog purchaselog --page 2 --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format := config.GetOutputFormat(output)
			if err := validateOutput(format); err != nil {
				return err
			}
			field, order, err := pagination.ParseSort(sortStr)
			if err != nil {
				return err
			}
			if field != "" && !api.IsValidDetailSortField(field) {
				return fmt.Errorf("invalid sort field %q, valid fields: %v", field, api.DetailSortFields())
			}

			params := pagination.Params{
				Page:       page,
				WindowSize: config.GetGlobalConfig().Pagination.WindowSize,
				SortField:  field,
				SortOrder:  order,
			}
			if validateErr := params.Validate(); validateErr != nil {
				return validateErr
			}

			if format == outputTable && isInteractive(cmd) {
				return runApp(cmd, tui.AppOptions{Start: tui.TargetPurchaselog, StartPage: page})
			}
			return printPurchaselog(cmd, params, format)
		},
	}

	cmd.Flags().IntVar(&page, "page", pagination.FirstPage, "page to show")
	cmd.Flags().StringVar(&output, "output", "", "output format: table or json (default from config)")
	cmd.Flags().StringVar(&sortStr, "sort", "",
		fmt.Sprintf("sort purchase items by field[:asc|desc], fields: %v", api.DetailSortFields()))
	return cmd
}

func printPurchaselog(cmd *cobra.Command, params pagination.Params, format string) error {
	d, err := newDeps(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	result, err := tui.PurchaselogFetcher(d.client)(ctx, params.Page)
	if err != nil {
		return apiError("fetching purchase history", err)
	}

	items := make([]api.Purchaselog, len(result.Items))
	for i, p := range result.Items {
		p.Details = api.SortDetails(p.Details, params.SortField, params.SortOrder)
		items[i] = p
	}

	meta := pagination.NewMeta(params.Page, result.TotalPage, len(items), false)
	window := pagination.FormatWindow(
		pagination.VisiblePageWindow(params.Page, meta.TotalPages, params.WindowSize), params.Page)

	logger.Debug().Ctx(ctx).
		Int("page", params.Page).
		Int("total_page", meta.TotalPages).
		Int("items", len(items)).
		Msg("purchase history fetched")

	if format == outputJSON {
		return writeJSON(cmd.OutOrStdout(), purchaselogOutput{Meta: meta, Window: window, Purchaselog: items})
	}
	return renderPurchaselogTable(cmd.OutOrStdout(), meta, window, items)
}

func renderPurchaselogTable(out io.Writer, meta pagination.Meta, window string, items []api.Purchaselog) error {
	if len(items) == 0 {
		if meta.CurrentPage > meta.TotalPages {
			fmt.Fprintf(out, "Page %d is past the last page (%d)\n", meta.CurrentPage, meta.TotalPages)
		} else {
			fmt.Fprintln(out, "購入履歴はありません")
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tTOTAL\tCANS\tSURVEY")
	fmt.Fprintln(w, "--\t----\t-----\t----\t------")
	for _, p := range items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			p.PurchaseID, tui.FormatPurchaseDate(p), tui.FormatYen(p.TotalAmount),
			tui.FormatCans(p.TotalCans), tui.SurveyLabel(p.SurveyCompletion))
		for _, item := range p.Details {
			fmt.Fprintf(w, "\t  %s\t%s\t×%d\t%s\n", item.Name, tui.FormatYen(item.Price), item.Count, item.Category)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing table: %w", err)
	}

	fmt.Fprintf(out, "\nPage %d/%d  %s\n", meta.CurrentPage, meta.TotalPages, window)
	return nil
}
