package monitoring

import (
	"fmt"
	"sort"
	"sync"

	"github.com/cretelab/strengthserve/internal/schema"
	"github.com/cretelab/strengthserve/pkg/logger"
	"github.com/cretelab/strengthserve/pkg/metric"
	"github.com/cretelab/strengthserve/pkg/set"
)

const (
	defaultWindowSize = 500
	// KS statistic above which a feature's input distribution is considered
	// to have drifted from the training distribution
	ksThreshold = 0.3
)

// Per-feature deciles of the training data (0th to 100th percentile),
// exported from the training notebook. They act as the reference sample for
// the two-sample Kolmogorov-Smirnov check.
var trainingDeciles = map[string][]float64{
	schema.FieldCement:           {102, 143, 167, 192, 212, 272, 305, 331, 374, 425, 540},
	schema.FieldBlastFurnaceSlag: {0, 0, 0, 0, 0, 22, 95, 129, 162, 193, 359.4},
	schema.FieldFlyAsh:           {0, 0, 0, 0, 0, 0, 94, 118, 133, 160, 200.1},
	schema.FieldWater:            {121.75, 154, 164, 171, 178, 185, 192, 197, 203, 216, 247},
	schema.FieldSuperplasticizer: {0, 0, 0, 1.9, 4.1, 6.4, 7.8, 9.0, 10.3, 12.2, 32.2},
	schema.FieldCoarseAggregate:  {801, 852, 898, 932, 953, 968, 1001, 1029, 1058, 1104, 1145},
	schema.FieldFineAggregate:    {594, 664, 697, 721, 734, 779, 788, 808, 824, 853, 992.6},
	schema.FieldAge:              {1, 3, 7, 7, 14, 28, 28, 56, 90, 100, 365},
}

// DriftMonitor keeps a rolling window of accepted inputs per raw feature and
// compares each full window against the training distribution. It never
// influences predictions; it only reports.
type DriftMonitor struct {
	windowSize int
	mu         sync.Mutex
	windows    map[string][]float64
	drifting   *set.ThreadSafeSet
}

func NewDriftMonitor(windowSize int) *DriftMonitor {
	if windowSize <= 0 {
		windowSize = defaultWindowSize
	}
	windows := make(map[string][]float64, len(schema.RequiredFields))
	for _, field := range schema.RequiredFields {
		windows[field] = make([]float64, 0, windowSize)
	}
	return &DriftMonitor{
		windowSize: windowSize,
		windows:    windows,
		drifting:   set.NewThreadSafeSet(),
	}
}

// Record adds one accepted mix to the rolling windows. When a window fills
// up it is scored against the training deciles and cleared.
func (d *DriftMonitor) Record(mix *schema.MixComposition) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.windows[schema.FieldCement] = append(d.windows[schema.FieldCement], mix.Cement)
	d.windows[schema.FieldBlastFurnaceSlag] = append(d.windows[schema.FieldBlastFurnaceSlag], mix.BlastFurnaceSlag)
	d.windows[schema.FieldFlyAsh] = append(d.windows[schema.FieldFlyAsh], mix.FlyAsh)
	d.windows[schema.FieldWater] = append(d.windows[schema.FieldWater], mix.Water)
	d.windows[schema.FieldSuperplasticizer] = append(d.windows[schema.FieldSuperplasticizer], mix.Superplasticizer)
	d.windows[schema.FieldCoarseAggregate] = append(d.windows[schema.FieldCoarseAggregate], mix.CoarseAggregate)
	d.windows[schema.FieldFineAggregate] = append(d.windows[schema.FieldFineAggregate], mix.FineAggregate)
	d.windows[schema.FieldAge] = append(d.windows[schema.FieldAge], float64(mix.AgeDays))

	if len(d.windows[schema.FieldCement]) < d.windowSize {
		return
	}
	d.score()
	for _, field := range schema.RequiredFields {
		d.windows[field] = d.windows[field][:0]
	}
}

func (d *DriftMonitor) score() {
	driftingCount := 0
	for _, field := range schema.RequiredFields {
		stat := ksStatistic(d.windows[field], trainingDeciles[field])
		metric.Gauge(metric.DriftStatistic, stat, metric.BuildTag(metric.NewTag(metric.TagField, field)))
		if stat > ksThreshold {
			driftingCount++
			if !d.drifting.Contains(field) {
				d.drifting.Add(field)
				logger.Warn(fmt.Sprintf("Input distribution drift detected for feature %s (ks=%.3f)", field, stat))
			}
		} else {
			d.drifting.Remove(field)
		}
	}
	metric.Gauge(metric.DriftingFeatureCount, float64(driftingCount), nil)
}

// DriftingFeatures returns the features whose last scored window drifted.
func (d *DriftMonitor) DriftingFeatures() []string {
	values := d.drifting.Values()
	sort.Strings(values)
	return values
}

// ksStatistic computes the two-sample Kolmogorov-Smirnov statistic, the
// maximum distance between the empirical CDFs of the two samples.
func ksStatistic(sample, reference []float64) float64 {
	if len(sample) == 0 || len(reference) == 0 {
		return 0
	}
	a := append([]float64(nil), sample...)
	b := append([]float64(nil), reference...)
	sort.Float64s(a)
	sort.Float64s(b)

	var maxDist float64
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i] <= b[j] {
			i++
		} else {
			j++
		}
		dist := float64(i)/float64(len(a)) - float64(j)/float64(len(b))
		if dist < 0 {
			dist = -dist
		}
		if dist > maxDist {
			maxDist = dist
		}
	}
	return maxDist
}
