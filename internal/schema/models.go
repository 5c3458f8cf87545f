package schema

// Raw input field names, matching the documented request keys.
const (
	FieldCement           = "cement"
	FieldBlastFurnaceSlag = "blast_furnace_slag"
	FieldFlyAsh           = "fly_ash"
	FieldWater            = "water"
	FieldSuperplasticizer = "superplasticizer"
	FieldCoarseAggregate  = "coarse_aggregate"
	FieldFineAggregate    = "fine_aggregate"
	FieldAge              = "age"
)

// RequiredFields lists the eight raw request keys in the order the model was
// fit on. The deriver depends on this order staying fixed.
var RequiredFields = []string{
	FieldCement,
	FieldBlastFurnaceSlag,
	FieldFlyAsh,
	FieldWater,
	FieldSuperplasticizer,
	FieldCoarseAggregate,
	FieldFineAggregate,
	FieldAge,
}

// MixComposition is an immutable record of the raw measurements of one
// concrete mix. All masses are kg per m^3 of mixture.
type MixComposition struct {
	Cement           float64
	BlastFurnaceSlag float64
	FlyAsh           float64
	Water            float64
	Superplasticizer float64
	CoarseAggregate  float64
	FineAggregate    float64
	AgeDays          int
}

// fieldRange is a closed interval a raw field must fall into to be accepted.
type fieldRange struct {
	min float64
	max float64
}

// Physical acceptance ranges. Masses only need to be non-negative; the upper
// bound exists to catch unit mistakes (nothing packs more than ~2500 kg into
// a cubic metre of mix). Age is capped at a year to catch input errors.
var acceptRanges = map[string]fieldRange{
	FieldCement:           {0, 2500},
	FieldBlastFurnaceSlag: {0, 2500},
	FieldFlyAsh:           {0, 2500},
	FieldWater:            {0, 2500},
	FieldSuperplasticizer: {0, 2500},
	FieldCoarseAggregate:  {0, 2500},
	FieldFineAggregate:    {0, 2500},
	FieldAge:              {0, 365},
}

// Ranges observed in the training data. Values outside these are still
// accepted but counted, since the model extrapolates there.
var trainingRanges = map[string]fieldRange{
	FieldCement:           {102.0, 540.0},
	FieldBlastFurnaceSlag: {0.0, 359.4},
	FieldFlyAsh:           {0.0, 200.1},
	FieldWater:            {121.75, 247.0},
	FieldSuperplasticizer: {0.0, 32.2},
	FieldCoarseAggregate:  {801.0, 1145.0},
	FieldFineAggregate:    {594.0, 992.6},
	FieldAge:              {1, 365},
}
