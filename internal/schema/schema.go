package schema

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/cretelab/strengthserve/internal/errors"
)

// ParseAndValidate builds a MixComposition from a flat request mapping.
// It fails with a ValidationError naming the first offending field when a
// required field is missing, non-numeric or outside its acceptance range.
// Fields are checked in the documented order so the reported field is
// deterministic for a given request.
func ParseAndValidate(raw map[string]interface{}) (*MixComposition, error) {
	values := make(map[string]float64, len(RequiredFields))
	for _, field := range RequiredFields {
		v, ok := raw[field]
		if !ok {
			return nil, &errors.ValidationError{Field: field, ErrorMsg: "required field is missing"}
		}
		num, err := toFloat(v)
		if err != nil {
			return nil, &errors.ValidationError{Field: field, ErrorMsg: "must be numeric"}
		}
		if math.IsNaN(num) || math.IsInf(num, 0) {
			return nil, &errors.ValidationError{Field: field, ErrorMsg: "must be finite"}
		}
		r := acceptRanges[field]
		if num < r.min || num > r.max {
			return nil, &errors.ValidationError{
				Field:    field,
				ErrorMsg: fmt.Sprintf("value %v outside allowed range [%v, %v]", num, r.min, r.max),
			}
		}
		values[field] = num
	}

	age := values[FieldAge]
	if age != math.Trunc(age) {
		return nil, &errors.ValidationError{Field: FieldAge, ErrorMsg: "must be a whole number of days"}
	}

	return &MixComposition{
		Cement:           values[FieldCement],
		BlastFurnaceSlag: values[FieldBlastFurnaceSlag],
		FlyAsh:           values[FieldFlyAsh],
		Water:            values[FieldWater],
		Superplasticizer: values[FieldSuperplasticizer],
		CoarseAggregate:  values[FieldCoarseAggregate],
		FineAggregate:    values[FieldFineAggregate],
		AgeDays:          int(age),
	}, nil
}

// OutOfTrainingRange reports the fields of an accepted mix that fall outside
// the training data ranges. Predictions for such mixes are extrapolations.
func OutOfTrainingRange(mix *MixComposition) []string {
	fieldValues := map[string]float64{
		FieldCement:           mix.Cement,
		FieldBlastFurnaceSlag: mix.BlastFurnaceSlag,
		FieldFlyAsh:           mix.FlyAsh,
		FieldWater:            mix.Water,
		FieldSuperplasticizer: mix.Superplasticizer,
		FieldCoarseAggregate:  mix.CoarseAggregate,
		FieldFineAggregate:    mix.FineAggregate,
		FieldAge:              float64(mix.AgeDays),
	}
	var outside []string
	for _, field := range RequiredFields {
		r := trainingRanges[field]
		if v := fieldValues[field]; v < r.min || v > r.max {
			outside = append(outside, field)
		}
	}
	return outside
}

func toFloat(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}
