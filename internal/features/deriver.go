package features

import (
	"encoding/binary"
	"math"

	"github.com/cretelab/strengthserve/internal/errors"
	"github.com/cretelab/strengthserve/internal/schema"
)

// NumFeatures is the dimensionality of the vector the artifact was fit on.
const NumFeatures = 11

// Engineered feature names, appended after the raw fields.
const (
	FeatureTotalBinder          = "total_binder"
	FeatureWaterBinderRatio     = "water_binder_ratio"
	FeatureAggregateCementRatio = "aggregate_cement_ratio"
)

// FeatureNames lists the model input features in their exact training order.
// This order is a compatibility contract with the trained artifact: any
// reordering silently invalidates every prediction.
var FeatureNames = []string{
	schema.FieldCement,
	schema.FieldBlastFurnaceSlag,
	schema.FieldFlyAsh,
	schema.FieldWater,
	schema.FieldSuperplasticizer,
	schema.FieldCoarseAggregate,
	schema.FieldFineAggregate,
	schema.FieldAge,
	FeatureTotalBinder,
	FeatureWaterBinderRatio,
	FeatureAggregateCementRatio,
}

// FeatureVector is the fixed-order model input: the eight raw fields
// followed by the three engineered ratios.
type FeatureVector [NumFeatures]float64

// Values returns the vector as a slice for the model adapter.
func (fv FeatureVector) Values() []float64 {
	return fv[:]
}

// Bytes returns a deterministic bit-level encoding of the vector, usable as
// a cache key: identical inputs always produce identical bytes.
func (fv FeatureVector) Bytes() []byte {
	buf := make([]byte, NumFeatures*8)
	for i, v := range fv {
		binary.BigEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return buf
}

// Derive computes the engineered features of a validated mix:
//
//	total_binder           = cement + blast_furnace_slag + fly_ash
//	water_binder_ratio     = water / total_binder
//	aggregate_cement_ratio = (coarse_aggregate + fine_aggregate) / cement
//
// A zero cement content makes the ratios undefined, so such a mix is
// rejected with a DegenerateMixError instead of emitting Inf or NaN. The
// same applies to a denormally small cement content whose ratios overflow.
func Derive(mix *schema.MixComposition) (FeatureVector, error) {
	if mix.Cement == 0 {
		return FeatureVector{}, &errors.DegenerateMixError{
			ErrorMsg: "cement content is zero, engineered ratios are undefined for this mix",
		}
	}

	totalBinder := mix.Cement + mix.BlastFurnaceSlag + mix.FlyAsh
	waterBinderRatio := mix.Water / totalBinder
	aggregateCementRatio := (mix.CoarseAggregate + mix.FineAggregate) / mix.Cement

	if !isFinite(waterBinderRatio) || !isFinite(aggregateCementRatio) {
		return FeatureVector{}, &errors.DegenerateMixError{
			ErrorMsg: "cement content is too small, engineered ratios overflow for this mix",
		}
	}

	return FeatureVector{
		mix.Cement,
		mix.BlastFurnaceSlag,
		mix.FlyAsh,
		mix.Water,
		mix.Superplasticizer,
		mix.CoarseAggregate,
		mix.FineAggregate,
		float64(mix.AgeDays),
		totalBinder,
		waterBinderRatio,
		aggregateCementRatio,
	}, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
