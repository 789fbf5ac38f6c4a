package geometry

import (
	"math"
	"strings"

	"numkit/domain/core"

	"gonum.org/v1/gonum/spatial/r2"
)

// Point is a position in the plane
type Point = r2.Vec

func CircleArea(radius float64) float64 {
	return math.Pi * radius * radius
}

func CirclePerimeter(radius float64) float64 {
	return 2 * math.Pi * radius
}

func RectangleArea(length, width float64) float64 {
	return length * width
}

func RectanglePerimeter(length, width float64) float64 {
	return 2 * (length + width)
}

func TriangleArea(base, height float64) float64 {
	return 0.5 * base * height
}

// Distance returns the Euclidean distance between (x1, y1) and (x2, y2)
func Distance(x1, y1, x2, y2 float64) float64 {
	return r2.Norm(r2.Sub(Point{X: x2, Y: y2}, Point{X: x1, Y: y1}))
}

func SphereVolume(radius float64) float64 {
	return 4.0 / 3.0 * math.Pi * math.Pow(radius, 3)
}

func CylinderVolume(radius, height float64) float64 {
	return math.Pi * radius * radius * height
}

// TriangleAreaFromSides applies Heron's formula. Sides must be non-negative
// and satisfy the triangle inequality; a degenerate triangle has zero area.
func TriangleAreaFromSides(a, b, c float64) (float64, error) {
	if a < 0 || b < 0 || c < 0 {
		return 0, core.NewInvalidArgumentError("triangle sides must be non-negative")
	}
	if a+b < c || a+c < b || b+c < a {
		return 0, core.NewInvalidArgumentError("sides %g, %g, %g do not form a triangle", a, b, c)
	}
	s := (a + b + c) / 2
	return math.Sqrt(s * (s - a) * (s - b) * (s - c)), nil
}

// PolygonArea returns the area of a simple polygon using the shoelace formula.
// Vertices may be listed in either winding order.
func PolygonArea(vertices []Point) (float64, error) {
	n := len(vertices)
	if n < 3 {
		return 0, core.NewInvalidArgumentError("a polygon must have at least 3 vertices, got %d", n)
	}
	var twice float64
	for i := range vertices {
		twice += r2.Cross(vertices[i], vertices[(i+1)%n])
	}
	return math.Abs(twice) / 2, nil
}

// Measure names a formula reachable through Evaluate
type Measure string

const (
	MeasureCircleArea          Measure = "circle_area"
	MeasureCirclePerimeter     Measure = "circle_perimeter"
	MeasureRectangleArea       Measure = "rectangle_area"
	MeasureRectanglePerimeter  Measure = "rectangle_perimeter"
	MeasureTriangleArea        Measure = "triangle_area"
	MeasureDistance            Measure = "distance"
	MeasureSphereVolume        Measure = "sphere_volume"
	MeasureCylinderVolume      Measure = "cylinder_volume"
	MeasureTriangleAreaBySides Measure = "triangle_area_sides"
	MeasurePolygonArea         Measure = "polygon_area"
)

// arity is the number of arguments each fixed-arity measure takes
var arity = map[Measure]int{
	MeasureCircleArea:          1,
	MeasureCirclePerimeter:     1,
	MeasureRectangleArea:       2,
	MeasureRectanglePerimeter:  2,
	MeasureTriangleArea:        2,
	MeasureDistance:            4,
	MeasureSphereVolume:        1,
	MeasureCylinderVolume:      2,
	MeasureTriangleAreaBySides: 3,
}

// Measures lists every measure in display order
func Measures() []Measure {
	return []Measure{
		MeasureCircleArea,
		MeasureCirclePerimeter,
		MeasureRectangleArea,
		MeasureRectanglePerimeter,
		MeasureTriangleArea,
		MeasureDistance,
		MeasureSphereVolume,
		MeasureCylinderVolume,
		MeasureTriangleAreaBySides,
		MeasurePolygonArea,
	}
}

// ParseMeasure resolves a measure name; dashes and case are ignored
func ParseMeasure(name string) (Measure, error) {
	m := Measure(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_"))
	for _, known := range Measures() {
		if m == known {
			return m, nil
		}
	}
	return "", core.NewInvalidArgumentError("unknown geometry measure %q", name)
}

// Evaluate applies a measure to positional arguments. polygon_area takes a
// flat list of x, y pairs.
func Evaluate(m Measure, args []float64) (float64, error) {
	if m == MeasurePolygonArea {
		if len(args)%2 != 0 {
			return 0, core.NewInvalidArgumentError("polygon_area needs x, y pairs, got %d values", len(args))
		}
		vertices := make([]Point, 0, len(args)/2)
		for i := 0; i < len(args); i += 2 {
			vertices = append(vertices, Point{X: args[i], Y: args[i+1]})
		}
		return PolygonArea(vertices)
	}

	want, ok := arity[m]
	if !ok {
		return 0, core.NewInvalidArgumentError("unknown geometry measure %q", m)
	}
	if len(args) != want {
		return 0, core.NewInvalidArgumentError("%s takes %d arguments, got %d", m, want, len(args))
	}

	switch m {
	case MeasureCircleArea:
		return CircleArea(args[0]), nil
	case MeasureCirclePerimeter:
		return CirclePerimeter(args[0]), nil
	case MeasureRectangleArea:
		return RectangleArea(args[0], args[1]), nil
	case MeasureRectanglePerimeter:
		return RectanglePerimeter(args[0], args[1]), nil
	case MeasureTriangleArea:
		return TriangleArea(args[0], args[1]), nil
	case MeasureDistance:
		return Distance(args[0], args[1], args[2], args[3]), nil
	case MeasureSphereVolume:
		return SphereVolume(args[0]), nil
	case MeasureCylinderVolume:
		return CylinderVolume(args[0], args[1]), nil
	default:
		return TriangleAreaFromSides(args[0], args[1], args[2])
	}
}
