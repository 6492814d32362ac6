package gesture

import "math"

// Point is a screen position in logical pixels; Y grows downward
type Point struct {
	X, Y float64
}

// Sub returns the displacement vector p - q
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Add returns p + q
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Len returns the length of p taken as a vector
func (p Point) Len() float64 {
	return math.Hypot(p.X, p.Y)
}

// Dist returns the distance between p and q
func (p Point) Dist(q Point) float64 {
	return p.Sub(q).Len()
}

// Angle returns the direction of p taken as a vector, in degrees from the +X axis
// Because Y grows downward, increasing angles turn clockwise on screen
func (p Point) Angle() float64 {
	return math.Atan2(p.Y, p.X) * 180 / math.Pi
}

// Polar returns the point at distance r from the origin in direction deg
func Polar(r, deg float64) Point {
	rad := deg * math.Pi / 180
	return Point{X: r * math.Cos(rad), Y: r * math.Sin(rad)}
}
