package planner

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FACorreiaa/loci-travel-bot/internal/types"
)

func recItem(id, name string) types.RecommendationItem {
	return types.RecommendationItem{ID: id, Type: types.RecommendationMuseum, Name: name}
}

func TestReconcile_DropsAlreadyShown(t *testing.T) {
	shown := map[string]struct{}{"rec_b": {}}
	items := []types.RecommendationItem{recItem("rec_b", "B"), recItem("rec_c", "C")}

	res := Reconcile(items, shown, 1, 1, slog.Default())

	assert.Len(t, res.Accepted, 1)
	assert.Equal(t, "rec_c", res.Accepted[0].ID)
	assert.Equal(t, []string{"rec_c"}, res.AcceptedIDs)
	assert.False(t, res.AllDuplicates)
}

func TestReconcile_AllDuplicates(t *testing.T) {
	shown := map[string]struct{}{"rec_a": {}, "rec_b": {}}
	items := []types.RecommendationItem{recItem("rec_a", "A"), recItem("rec_b", "B")}

	res := Reconcile(items, shown, 1, 1, slog.Default())

	assert.Empty(t, res.Accepted)
	assert.True(t, res.AllDuplicates)
}

func TestReconcile_EmptyInputIsNotAllDuplicates(t *testing.T) {
	res := Reconcile(nil, map[string]struct{}{}, 1, 0, slog.Default())

	assert.Empty(t, res.Accepted)
	assert.False(t, res.AllDuplicates)
}

func TestReconcile_SynthesizesFallbackIDs(t *testing.T) {
	items := []types.RecommendationItem{
		recItem("", "Untagged"),
		recItem("null", "NullTagged"),
		recItem("rec_x", "Tagged"),
	}

	res := Reconcile(items, map[string]struct{}{}, 42, 2, slog.Default())

	assert.Equal(t, []string{"rec_42_2_0", "rec_42_2_1", "rec_x"}, res.AcceptedIDs)
	assert.Equal(t, "rec_42_2_0", res.Accepted[0].ID)
	assert.Equal(t, "Untagged", res.Accepted[0].Name)
}

func TestReconcile_PreservesOrderAndInput(t *testing.T) {
	items := []types.RecommendationItem{recItem("rec_1", "A"), recItem("rec_2", "B"), recItem("rec_3", "C")}

	res := Reconcile(items, map[string]struct{}{"rec_2": {}}, 1, 0, slog.Default())

	assert.Equal(t, []string{"rec_1", "rec_3"}, res.AcceptedIDs)
	// input slice untouched
	assert.Equal(t, "rec_2", items[1].ID)
}

func TestReconcile_Idempotent(t *testing.T) {
	shown := map[string]struct{}{}
	items := []types.RecommendationItem{recItem("rec_1", "A"), recItem("rec_2", "B")}

	first := Reconcile(items, shown, 1, 0, slog.Default())
	for _, id := range first.AcceptedIDs {
		shown[id] = struct{}{}
	}

	second := Reconcile(items, shown, 1, 1, slog.Default())

	assert.Len(t, first.Accepted, 2)
	assert.Empty(t, second.Accepted)
	assert.True(t, second.AllDuplicates)
}
