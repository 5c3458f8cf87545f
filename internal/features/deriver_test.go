package features

import (
	"math"
	"testing"

	"github.com/cretelab/strengthserve/internal/errors"
	"github.com/cretelab/strengthserve/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func referenceMix() *schema.MixComposition {
	return &schema.MixComposition{
		Cement:           540.0,
		BlastFurnaceSlag: 0.0,
		FlyAsh:           0.0,
		Water:            162.0,
		Superplasticizer: 2.5,
		CoarseAggregate:  1040.0,
		FineAggregate:    676.0,
		AgeDays:          28,
	}
}

func TestDerive_ReferenceMix(t *testing.T) {
	fv, err := Derive(referenceMix())
	require.NoError(t, err)

	assert.Equal(t, NumFeatures, len(fv.Values()))
	assert.Equal(t, 540.0, fv[0])
	assert.Equal(t, 162.0, fv[3])
	assert.Equal(t, 28.0, fv[7])
	// engineered features, exactly as in the training notebook
	assert.Equal(t, 540.0, fv[8])            // total_binder = 540 + 0 + 0
	assert.Equal(t, 162.0/540.0, fv[9])      // water_binder_ratio
	assert.Equal(t, (1040.0+676.0)/540.0, fv[10]) // aggregate_cement_ratio
}

func TestDerive_AllFinite(t *testing.T) {
	fv, err := Derive(referenceMix())
	require.NoError(t, err)
	for i, v := range fv.Values() {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "feature %s is not finite", FeatureNames[i])
	}
}

func TestDerive_Deterministic(t *testing.T) {
	first, err := Derive(referenceMix())
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		again, err := Derive(referenceMix())
		require.NoError(t, err)
		assert.Equal(t, first, again)
		assert.Equal(t, first.Bytes(), again.Bytes())
	}
}

func TestDerive_ZeroCement(t *testing.T) {
	mix := referenceMix()
	mix.Cement = 0

	_, err := Derive(mix)
	require.Error(t, err)
	_, ok := err.(*errors.DegenerateMixError)
	assert.True(t, ok, "expected *errors.DegenerateMixError, got %T", err)
}

func TestDerive_SlagOnlyBinderStillDegenerate(t *testing.T) {
	// slag alone keeps total_binder positive but aggregate_cement_ratio
	// still divides by cement, so the mix is rejected
	mix := referenceMix()
	mix.Cement = 0
	mix.BlastFurnaceSlag = 300.0

	_, err := Derive(mix)
	require.Error(t, err)
	_, ok := err.(*errors.DegenerateMixError)
	assert.True(t, ok)
}

func TestDerive_DenormalCementOverflowsRatios(t *testing.T) {
	// the smallest positive float64 passes the range check but makes both
	// ratios overflow to +Inf; the mix must be rejected, not predicted on
	mix := referenceMix()
	mix.Cement = 5e-324

	_, err := Derive(mix)
	require.Error(t, err)
	_, ok := err.(*errors.DegenerateMixError)
	assert.True(t, ok, "expected *errors.DegenerateMixError, got %T", err)
}

func TestDerive_TinyCementNeverEmitsNonFinite(t *testing.T) {
	for _, cement := range []float64{5e-324, 1e-310, 1e-300, 1e-30, 0.001, 1, 102} {
		mix := referenceMix()
		mix.Cement = cement

		fv, err := Derive(mix)
		if err != nil {
			_, ok := err.(*errors.DegenerateMixError)
			assert.True(t, ok, "cement=%g: expected *errors.DegenerateMixError, got %T", cement, err)
			continue
		}
		for i, v := range fv.Values() {
			assert.False(t, math.IsNaN(v) || math.IsInf(v, 0),
				"cement=%g: feature %s is not finite", cement, FeatureNames[i])
		}
	}
}

func TestFeatureNames_OrderIsFixed(t *testing.T) {
	expected := []string{
		"cement", "blast_furnace_slag", "fly_ash", "water", "superplasticizer",
		"coarse_aggregate", "fine_aggregate", "age",
		"total_binder", "water_binder_ratio", "aggregate_cement_ratio",
	}
	assert.Equal(t, expected, FeatureNames)
}

func TestFeatureVector_BytesRoundTrip(t *testing.T) {
	fv, err := Derive(referenceMix())
	require.NoError(t, err)

	b := fv.Bytes()
	assert.Equal(t, NumFeatures*8, len(b))

	other, err := Derive(referenceMix())
	require.NoError(t, err)
	assert.Equal(t, b, other.Bytes())

	changed := referenceMix()
	changed.Water = 163.0
	fvChanged, err := Derive(changed)
	require.NoError(t, err)
	assert.NotEqual(t, b, fvChanged.Bytes())
}
