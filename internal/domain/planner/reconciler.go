package planner

import (
	"fmt"
	"log/slog"

	"github.com/FACorreiaa/loci-travel-bot/internal/types"
)

// ReconcileResult is the outcome of filtering one AI response against the
// session's shown-IDs ledger.
type ReconcileResult struct {
	// Accepted preserves the input order of the surviving items.
	Accepted []types.RecommendationItem
	// AcceptedIDs holds the ID of every accepted item, fallback IDs included,
	// ready to merge into the shown ledger.
	AcceptedIDs []string
	// AllDuplicates is true when a non-empty input list was filtered down to
	// nothing. Callers surface the same "nothing new" message as for an empty
	// AI response, but the two outcomes are logged distinctly.
	AllDuplicates bool
}

// Reconcile drops items whose ID was already shown and synthesizes a stable
// fallback ID for items the model failed to tag, deterministic from the
// session key, the request round, and the item's position. The input slice is
// not mutated.
func Reconcile(items []types.RecommendationItem, alreadyShown map[string]struct{}, userID int64, round int, logger *slog.Logger) ReconcileResult {
	res := ReconcileResult{}

	for i, item := range items {
		id := types.NormalizeNullable(item.ID)
		if id != "" {
			if _, seen := alreadyShown[id]; seen {
				// Expected under more_options, not an anomaly.
				logger.Info("dropping already shown recommendation",
					slog.String("recommendation_id", id),
					slog.Int64("user_id", userID))
				continue
			}
		} else {
			id = fallbackID(userID, round, i)
			logger.Warn("recommendation missing id, assigned fallback",
				slog.String("fallback_id", id),
				slog.String("name", item.Name),
				slog.Int64("user_id", userID))
		}

		item.ID = id
		res.Accepted = append(res.Accepted, item)
		res.AcceptedIDs = append(res.AcceptedIDs, id)
	}

	res.AllDuplicates = len(items) > 0 && len(res.Accepted) == 0
	return res
}

// fallbackID must stay stable for the lifetime of one rendered batch so
// like/dislike callbacks on untagged items keep resolving.
func fallbackID(userID int64, round, index int) string {
	return fmt.Sprintf("rec_%d_%d_%d", userID, round, index)
}
