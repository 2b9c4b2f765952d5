// Package geo projects real-world coordinates into 2-D canvas layouts.
//
// Two independent layout strategies exist: a continuous linear projection of
// latitude/longitude against Thailand's bounding box, and a discrete hexagon
// lattice for the stylized map mode. Both are pure functions; coordinate
// resolution and fallback decisions live with the caller.
package geo

// Thailand's real-world extremities. Out-of-box inputs are clamped into this
// range rather than rejected: boundary datasets routinely carry points a few
// hundredths of a degree outside it.
const (
	MinLatitude = 5.61
	MaxLatitude = 20.47

	MinLongitude = 97.34
	MaxLongitude = 105.64
)

// Coordinate is a real-world point in degrees.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Point is a canvas-space position.
type Point struct {
	X float64
	Y float64
}

// Canvas describes the target drawing surface for a projection.
type Canvas struct {
	Width   float64
	Height  float64
	OriginX float64
	OriginY float64
}

// Project maps a latitude/longitude pair onto the canvas. The coordinate is
// normalized linearly against the Thailand bounding box, clamped into range,
// scaled by the canvas dimensions, and offset by the canvas origin. Canvas Y
// grows downward, so northern latitudes map to smaller Y.
func Project(coord Coordinate, canvas Canvas) Point {
	lat := clamp(coord.Lat, MinLatitude, MaxLatitude)
	lon := clamp(coord.Lon, MinLongitude, MaxLongitude)

	normX := (lon - MinLongitude) / (MaxLongitude - MinLongitude)
	normY := (MaxLatitude - lat) / (MaxLatitude - MinLatitude)

	return Point{
		X: canvas.OriginX + normX*canvas.Width,
		Y: canvas.OriginY + normY*canvas.Height,
	}
}

func clamp(v, low, high float64) float64 {
	if v < low {
		return low
	}

	if v > high {
		return high
	}

	return v
}
