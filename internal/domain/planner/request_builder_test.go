package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FACorreiaa/loci-travel-bot/internal/types"
)

func TestBuildRequest_GeoWinsOverText(t *testing.T) {
	sess := types.NewSession(1, "en")
	sess.Collected.LocationText = "Paris"
	sess.Collected.LocationGeo = &types.GeoPoint{Latitude: 48.85, Longitude: 2.35}

	req := BuildRequest(sess, types.RequestInitial)

	assert.Equal(t, "coordinates: 48.85,2.35", req.Location)
}

func TestBuildRequest_UnspecifiedFallbacks(t *testing.T) {
	sess := types.NewSession(1, "en")

	req := BuildRequest(sess, types.RequestInitial)

	assert.Equal(t, "unspecified", req.Location)
	assert.Equal(t, "unspecified", req.TripDurationText)
	assert.Equal(t, "mid", req.Preferences.Budget)
	assert.Equal(t, "moderate", req.Preferences.PreferredPace)
}

func TestBuildRequest_HistoryOmittedWhenEmpty(t *testing.T) {
	sess := types.NewSession(1, "en")

	req := BuildRequest(sess, types.RequestInitial)
	assert.Empty(t, req.History)

	sess.Like("rec_b")
	sess.Like("rec_a")
	req = BuildRequest(sess, types.RequestInitial)
	assert.Len(t, req.History, 1)
	assert.Equal(t, "positive", req.History[0].Type)
	assert.Equal(t, []string{"rec_a", "rec_b"}, req.History[0].ItemIDs)

	sess.Dislike("rec_c")
	req = BuildRequest(sess, types.RequestInitial)
	assert.Len(t, req.History, 2)
	assert.Equal(t, "positive", req.History[0].Type)
	assert.Equal(t, "negative", req.History[1].Type)
	assert.Equal(t, []string{"rec_c"}, req.History[1].ItemIDs)
}

func TestBuildRequest_PreviouslyShownEmptyOnInitial(t *testing.T) {
	sess := types.NewSession(1, "en")
	sess.MarkShown([]string{"rec_1", "rec_2"})

	req := BuildRequest(sess, types.RequestInitial)

	assert.NotNil(t, req.PreviouslyShownIDs)
	assert.Empty(t, req.PreviouslyShownIDs)
}

func TestBuildRequest_PreviouslyShownSortedOnMoreOptions(t *testing.T) {
	sess := types.NewSession(1, "en")
	sess.MarkShown([]string{"rec_2", "rec_1", "rec_3"})

	req := BuildRequest(sess, types.RequestMoreOptions)

	assert.Equal(t, []string{"rec_1", "rec_2", "rec_3"}, req.PreviouslyShownIDs)
}

func TestBuildRequest_CopiesSlices(t *testing.T) {
	sess := types.NewSession(1, "en")
	sess.Collected.Interests = []string{"food", "food", "museums"}

	req := BuildRequest(sess, types.RequestInitial)
	req.Preferences.Interests[0] = "mutated"

	assert.Equal(t, []string{"food", "food", "museums"}, sess.Collected.Interests)
}
