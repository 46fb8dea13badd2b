package adapter

import (
	"context"
	"errors"
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// ErrUnparseable is returned when the syntax tree could not be built.
var ErrUnparseable = errors.New("source could not be parsed")

// DecoratedFunction describes a decorated function definition found in a
// Python syntax tree. Rows are 0-based.
type DecoratedFunction struct {
	Name         string
	Decorators   []string // source text of each decorator, in order
	Scope        string   // nearest enclosing class name, empty at module level
	StartRow     int      // row of the first decorator
	DefRow       int      // row of the def keyword
	BodyStartRow int      // row of the first body statement
	EndRow       int      // last row of the definition
}

// PythonSyntaxAdapter hides the Python parser from the domain layer so the
// syntax-tree extractor only deals with rows and decorator texts.
type PythonSyntaxAdapter interface {
	// DecoratedFunctions lists every decorated function of src in source order.
	DecoratedFunctions(ctx context.Context, src []byte) ([]DecoratedFunction, error)
}

// TreeSitterPythonAdapter implements PythonSyntaxAdapter with tree-sitter.
type TreeSitterPythonAdapter struct {
	language *sitter.Language
}

// NewTreeSitterPythonAdapter constructs a TreeSitterPythonAdapter.
func NewTreeSitterPythonAdapter() *TreeSitterPythonAdapter {
	return &TreeSitterPythonAdapter{
		language: sitter.NewLanguage(python.Language()),
	}
}

// DecoratedFunctions parses src and collects its decorated function definitions.
func (a *TreeSitterPythonAdapter) DecoratedFunctions(ctx context.Context, src []byte) ([]DecoratedFunction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(a.language); err != nil {
		return nil, fmt.Errorf("set python language: %w", err)
	}

	tree := parser.Parse(src, nil)
	if tree == nil {
		return nil, ErrUnparseable
	}
	defer tree.Close()

	var functions []DecoratedFunction

	walkTree(tree.RootNode(), func(node *sitter.Node) bool {
		if node.Kind() != "decorated_definition" {
			return true
		}

		if fn, ok := decoratedFunction(node, src); ok {
			functions = append(functions, fn)
		}

		// Nested definitions inside the body are still visited.
		return true
	})

	return functions, ctx.Err()
}

func decoratedFunction(node *sitter.Node, src []byte) (DecoratedFunction, bool) {
	definition := node.ChildByFieldName("definition")
	if definition == nil || definition.Kind() != "function_definition" {
		return DecoratedFunction{}, false
	}

	nameNode := definition.ChildByFieldName("name")
	bodyNode := definition.ChildByFieldName("body")

	if nameNode == nil || bodyNode == nil {
		return DecoratedFunction{}, false
	}

	fn := DecoratedFunction{
		Name:         nameNode.Utf8Text(src),
		Scope:        enclosingClass(node, src),
		StartRow:     int(node.StartPosition().Row),
		DefRow:       int(definition.StartPosition().Row),
		BodyStartRow: int(bodyNode.StartPosition().Row),
		EndRow:       int(definition.EndPosition().Row),
	}

	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child != nil && child.Kind() == "decorator" {
			fn.Decorators = append(fn.Decorators, child.Utf8Text(src))
		}
	}

	return fn, true
}

func enclosingClass(node *sitter.Node, src []byte) string {
	for parent := node.Parent(); parent != nil; parent = parent.Parent() {
		if parent.Kind() != "class_definition" {
			continue
		}

		if name := parent.ChildByFieldName("name"); name != nil {
			return name.Utf8Text(src)
		}
	}

	return ""
}

// walkTree visits node and its descendants depth first while visitor returns true.
func walkTree(node *sitter.Node, visitor func(*sitter.Node) bool) {
	if node == nil {
		return
	}

	if !visitor(node) {
		return
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		walkTree(node.Child(i), visitor)
	}
}
