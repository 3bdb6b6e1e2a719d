package spotRepo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestCountableFilterRewritesNearSphere(t *testing.T) {
	filter := bson.M{
		"isApproved": true,
		"location": bson.M{
			"$nearSphere": bson.M{
				"$geometry":    bson.M{"type": "Point", "coordinates": []float64{12.4922, 41.8902}},
				"$maxDistance": 5000.0,
			},
		},
	}

	out := CountableFilter(filter)

	assert.Equal(t, true, out["isApproved"])
	loc, ok := out["location"].(bson.M)
	require.True(t, ok)
	within, ok := loc["$geoWithin"].(bson.M)
	require.True(t, ok)
	sphere, ok := within["$centerSphere"].(bson.A)
	require.True(t, ok)
	require.Len(t, sphere, 2)
	assert.Equal(t, []float64{12.4922, 41.8902}, sphere[0])
	assert.InDelta(t, 5.0/6378.1, sphere[1], 1e-12)

	// The original filter is left untouched for the paged query.
	_, stillNear := filter["location"].(bson.M)["$nearSphere"]
	assert.True(t, stillNear)
}

func TestCountableFilterWithoutGeoIsCopy(t *testing.T) {
	filter := bson.M{"type": "artwork"}
	out := CountableFilter(filter)
	assert.Equal(t, filter, out)

	out["type"] = "venue"
	assert.Equal(t, "artwork", filter["type"])
}
