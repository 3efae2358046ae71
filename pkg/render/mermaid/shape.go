package mermaid

import "github.com/matzehuels/mermaidspec/pkg/spec"

// Shape is the bracket pair that gives a Mermaid node its outline.
type Shape struct {
	Name  string
	Open  string
	Close string
}

// Node shapes.
var (
	ShapeRounded       = Shape{Name: "rounded", Open: "(", Close: ")"}
	ShapeRhombus       = Shape{Name: "rhombus", Open: "{", Close: "}"}
	ShapeParallelogram = Shape{Name: "parallelogram", Open: "[/", Close: "/]"}
	ShapeHexagon       = Shape{Name: "hexagon", Open: "{{", Close: "}}"}
	ShapeRectangle     = Shape{Name: "rectangle", Open: "[", Close: "]"}
)

type shapeRule struct {
	match func(nodeType string) bool
	shape Shape
}

func typeIs(want string) func(string) bool {
	return func(nodeType string) bool { return nodeType == want }
}

// shapeRules is evaluated top to bottom; order matters because the LLM rule
// is a substring match.
var shapeRules = []shapeRule{
	{typeIs(spec.TypeFunction), ShapeRounded},
	{typeIs(spec.TypeRouter), ShapeRhombus},
	{typeIs(spec.TypeHumanInput), ShapeParallelogram},
	{spec.IsLLMType, ShapeHexagon},
}

// ShapeFor returns the shape for a node type, falling back to [ShapeRectangle].
func ShapeFor(nodeType string) Shape {
	for _, r := range shapeRules {
		if r.match(nodeType) {
			return r.shape
		}
	}
	return ShapeRectangle
}
