package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bialog/bialog/internal/api"
	"github.com/bialog/bialog/internal/config"
	"github.com/bialog/bialog/internal/tui"
)

// ErrInvalidScoreArg is returned for a malformed item-id=score argument.
var ErrInvalidScoreArg = errors.New("preference must be <item-id>=<score>")

// NewProfileCmd creates the profile command group.
func NewProfileCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show your profile, favorite brands and preferences",
		Example: `  # Open the profile screen
  bialog profile

  # Print the profile as JSON
  bialog profile --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format := config.GetOutputFormat(output)
			if err := validateOutput(format); err != nil {
				return err
			}
			if format == outputTable && isInteractive(cmd) {
				return runApp(cmd, tui.AppOptions{Start: tui.TargetProfile})
			}
			return printProfile(cmd, format)
		},
	}
	cmd.Flags().StringVar(&output, "output", "", "output format: table or json (default from config)")

	cmd.AddCommand(newFavoriteCmd(), newPreferenceCmd())
	return cmd
}

func printProfile(cmd *cobra.Command, format string) error {
	d, err := newDeps(cmd)
	if err != nil {
		return err
	}
	p, err := tui.LoadProfile(cmd.Context(), d.client)
	if err != nil {
		return apiError("loading profile", err)
	}
	if format == outputJSON {
		return writeJSON(cmd.OutOrStdout(), p)
	}
	return renderProfile(cmd.OutOrStdout(), p)
}

func renderProfile(out io.Writer, p tui.Profile) error {
	fmt.Fprintf(out, "%s (id %d)\n", p.User.UserName, p.UserID)
	if p.User.UserProfile != "" {
		fmt.Fprintln(out, p.User.UserProfile)
	}
	fmt.Fprintf(out, "投稿写真: %d枚\n\n", p.PhotoCount)

	w := tabwriter.NewWriter(out, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(w, "BRAND ID\tFAVORITE BRAND")
	fmt.Fprintln(w, "--------\t--------------")
	for _, b := range p.Favorites {
		fmt.Fprintf(w, "%d\t%s\n", b.BrandID, b.BrandName)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "ITEM ID\tPREFERENCE\tSCORE")
	fmt.Fprintln(w, "-------\t----------\t-----")
	for _, pref := range p.Preferences {
		fmt.Fprintf(w, "%d\t%s\t%s %d\n", pref.ItemID, pref.Item.ItemName, tui.ScoreBar(pref.Score), pref.Score)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing table: %w", err)
	}
	return nil
}

func newFavoriteCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "favorite", Short: "Manage favorite brands"}
	cmd.AddCommand(
		&cobra.Command{
			Use:     "add <brand-name>",
			Short:   "Add a favorite brand",
			Example: `  bialog profile favorite add "Yona Yona Ale"`,
			Args:    cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return addFavorite(cmd, strings.Join(args, " "))
			},
		},
		&cobra.Command{
			Use:     "remove <brand-id>...",
			Aliases: []string{"rm"},
			Short:   "Remove favorite brands by id",
			Example: `  bialog profile favorite remove 12 15`,
			Args:    cobra.MinimumNArgs(1),
			RunE:    removeFavorites,
		},
	)
	return cmd
}

func addFavorite(cmd *cobra.Command, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("brand name cannot be empty")
	}
	d, err := newDeps(cmd)
	if err != nil {
		return err
	}
	userID, err := d.client.UserID()
	if err != nil {
		return apiError("adding favorite", err)
	}

	brand, err := d.client.AddFavorite(cmd.Context(), userID, name)
	if err != nil {
		if errors.Is(err, api.ErrAlreadyFavorite) {
			return fmt.Errorf("%q is already a favorite: %w", name, err)
		}
		return apiError("adding favorite", err)
	}
	logger.Info().Ctx(cmd.Context()).Int("brand_id", brand.BrandID).Msg("favorite added")
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s (id %d)\n", brand.BrandName, brand.BrandID)
	return nil
}

func removeFavorites(cmd *cobra.Command, args []string) error {
	ids := make([]int, 0, len(args))
	for _, arg := range splitArgs(args) {
		id, err := strconv.Atoi(arg)
		if err != nil || id < 1 {
			return fmt.Errorf("invalid brand id %q", arg)
		}
		ids = append(ids, id)
	}

	d, err := newDeps(cmd)
	if err != nil {
		return err
	}
	userID, err := d.client.UserID()
	if err != nil {
		return apiError("removing favorite", err)
	}
	for _, id := range ids {
		if delErr := d.client.DeleteFavorite(cmd.Context(), userID, id); delErr != nil {
			return apiError(fmt.Sprintf("removing favorite %d", id), delErr)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed brand %d\n", id)
	}
	return nil
}

func newPreferenceCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "preference", Short: "Manage beer preferences"}
	cmd.AddCommand(&cobra.Command{
		Use:   "set <item-id>=<score>...",
		Short: fmt.Sprintf("Set preference scores (%d-%d)", api.MinScore, api.MaxScore),
		Example: `  # Rate item 3 with 5 and item 7 with 2
  bialog profile preference set 3=5 7=2`,
		Args: cobra.MinimumNArgs(1),
		RunE: setPreferences,
	})
	return cmd
}

// parseScores parses item-id=score pairs. A repeated item keeps the last score.
func parseScores(args []string) (map[int]int, error) {
	scores := make(map[int]int, len(args))
	for _, arg := range splitArgs(args) {
		idStr, scoreStr, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("%w: got %q", ErrInvalidScoreArg, arg)
		}
		id, err := strconv.Atoi(strings.TrimSpace(idStr))
		if err != nil || id < 1 {
			return nil, fmt.Errorf("%w: invalid item id in %q", ErrInvalidScoreArg, arg)
		}
		score, err := strconv.Atoi(strings.TrimSpace(scoreStr))
		if err != nil {
			return nil, fmt.Errorf("%w: invalid score in %q", ErrInvalidScoreArg, arg)
		}
		if score < api.MinScore || score > api.MaxScore {
			return nil, fmt.Errorf("%w: score %d for item %d", api.ErrInvalidScore, score, id)
		}
		scores[id] = score
	}
	return scores, nil
}

func setPreferences(cmd *cobra.Command, args []string) error {
	scores, err := parseScores(args)
	if err != nil {
		return err
	}
	d, err := newDeps(cmd)
	if err != nil {
		return err
	}
	userID, err := d.client.UserID()
	if err != nil {
		return apiError("updating preferences", err)
	}
	if updateErr := d.client.UpdatePreferences(cmd.Context(), userID, scores); updateErr != nil {
		return apiError("updating preferences", updateErr)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated %d preference(s)\n", len(scores))
	return nil
}
