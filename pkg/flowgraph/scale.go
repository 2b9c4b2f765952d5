package flowgraph

import "math"

// Node radius mapping: combined move-in+move-out volume is clamped into
// [VolumeFloor, VolumeCeil] before linear interpolation into
// [RadiusMin, RadiusMax]. Keeps single-digit villages and Bangkok on the same
// screen without either degenerating.
const (
	RadiusMin = 15.0
	RadiusMax = 40.0

	VolumeFloor = 10_000.0
	VolumeCeil  = 200_000.0
)

// Flow rate mapping: magnitudes land in [RateBase, RateBase+RateSpan] with
// the input's sign preserved, so direction survives normalization.
const (
	RateBase = 1.0
	RateSpan = 49.0
)

// NodeRadius maps a location's period volume onto a display radius in
// [RadiusMin, RadiusMax]. Monotonic non-decreasing in moveIn+moveOut; total
// over all float inputs (NaN and infinities clamp, never propagate).
func NodeRadius(moveIn, moveOut float64) float64 {
	volume := sanitize(moveIn) + sanitize(moveOut)

	if volume < VolumeFloor {
		volume = VolumeFloor
	}

	if volume > VolumeCeil {
		volume = VolumeCeil
	}

	fraction := (volume - VolumeFloor) / (VolumeCeil - VolumeFloor)

	return RadiusMin + fraction*(RadiusMax-RadiusMin)
}

// FlowRate maps a signed flow count onto a display rate relative to the
// period's maximum absolute count. A zero basis returns 0 (no flows to scale
// against); otherwise the result is sign(count) * (RateBase +
// |count|/maxCount * RateSpan), magnitude within [1, 50]. Odd in sign:
// FlowRate(-c, max) == -FlowRate(c, max).
func FlowRate(count, maxCount float64) float64 {
	maxCount = sanitize(maxCount)
	if maxCount <= 0 {
		return 0
	}

	count = sanitize(count)
	if count == 0 {
		return 0
	}

	magnitude := math.Abs(count)
	if magnitude > maxCount {
		magnitude = maxCount
	}

	rate := RateBase + magnitude/maxCount*RateSpan

	if count < 0 {
		return -rate
	}

	return rate
}

// sanitize collapses NaN and infinities to 0 so the scaling functions stay
// total.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}

	return v
}
