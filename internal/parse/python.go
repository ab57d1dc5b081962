package parse

import (
	"context"
	"errors"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// testPrefix is the conventional test-name prefix recognized during
// advisory test-name extraction.
const testPrefix = "test_"

// Python extracts symbols from Python source using Tree-sitter.
//
// Classes and functions count wherever they are nested; a method and a free
// function both land in Functions. Globals count only when the assignment is
// lexically outside every function and class body - an assignment under a
// top-level if/try/with still counts, one inside a def never does.
type Python struct {
	parser *sitter.Parser
}

// NewPython creates a Python symbol extractor.
func NewPython() *Python {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())
	return &Python{parser: parser}
}

// Language returns "py".
func (p *Python) Language() string { return "py" }

// Extensions returns [".py", ".pyw"].
func (p *Python) Extensions() []string { return []string{".py", ".pyw"} }

// Extract parses content and collects declared symbols. A tree with syntax
// errors is reported as a *Error; the engine treats that as a finding on the
// file, not a fault.
func (p *Python) Extract(path string, content []byte) (*Symbols, error) {
	tree, err := p.parser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, &Error{Path: path, Err: errors.New("syntax error")}
	}

	symbols := NewSymbols()
	p.walk(root, content, false, symbols)
	return symbols, nil
}

// walk visits named nodes recursively. insideDef is true once the walk has
// descended into any function or class body.
func (p *Python) walk(node *sitter.Node, content []byte, insideDef bool, symbols *Symbols) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)

		switch child.Type() {
		case "class_definition":
			if name := fieldText(child, "name", content); name != "" {
				symbols.Classes[name] = true
			}
			if body := child.ChildByFieldName("body"); body != nil {
				p.walk(body, content, true, symbols)
			}

		case "function_definition":
			if name := fieldText(child, "name", content); name != "" {
				symbols.Functions[name] = true
			}
			if body := child.ChildByFieldName("body"); body != nil {
				p.walk(body, content, true, symbols)
			}

		case "assignment":
			if !insideDef {
				left := child.ChildByFieldName("left")
				if left != nil && left.Type() == "identifier" {
					symbols.Globals[nodeText(left, content)] = true
				}
			}
			// Chained assignments nest on the right-hand side.
			p.walk(child, content, insideDef, symbols)

		default:
			p.walk(child, content, insideDef, symbols)
		}
	}
}

// TestNames collects every function named with the test_ prefix. Parse
// problems are swallowed; extraction here is advisory.
func (p *Python) TestNames(path string, content []byte) map[string]bool {
	names := make(map[string]bool)
	tree, err := p.parser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return names
	}
	defer tree.Close()

	var visit func(node *sitter.Node)
	visit = func(node *sitter.Node) {
		for i := 0; i < int(node.NamedChildCount()); i++ {
			child := node.NamedChild(i)
			if child.Type() == "function_definition" {
				if name := fieldText(child, "name", content); strings.HasPrefix(name, testPrefix) {
					names[name] = true
				}
			}
			visit(child)
		}
	}
	visit(tree.RootNode())
	return names
}

func fieldText(node *sitter.Node, field string, content []byte) string {
	child := node.ChildByFieldName(field)
	if child == nil {
		return ""
	}
	return nodeText(child, content)
}

func nodeText(node *sitter.Node, content []byte) string {
	return string(content[node.StartByte():node.EndByte()])
}
