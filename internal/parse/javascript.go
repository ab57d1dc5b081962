package parse

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// JavaScript extracts symbols from JavaScript and TypeScript source through
// an ordered strategy chain: a structural Tree-sitter pass first, then a
// pattern-based fallback that never fails. The fallback is line-driven, so
// it may under-report unusually formatted code; it will not crash on it.
type JavaScript struct {
	strategies []jsStrategy
}

// jsStrategy is one tier of the extraction chain.
type jsStrategy interface {
	extract(path string, content []byte) (*Symbols, error)
}

// NewJavaScript creates a JavaScript/TypeScript extractor with the default
// strategy chain.
func NewJavaScript() *JavaScript {
	return &JavaScript{
		strategies: []jsStrategy{
			newJSStructural(),
			jsPattern{},
		},
	}
}

// Language returns "js".
func (j *JavaScript) Language() string { return "js" }

// Extensions returns the JavaScript and TypeScript extensions.
func (j *JavaScript) Extensions() []string {
	return []string{".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs"}
}

// Extract runs the strategy chain and returns the first successful result.
// The pattern tier never fails, so extraction as a whole never does.
func (j *JavaScript) Extract(path string, content []byte) (*Symbols, error) {
	var lastErr error
	for _, strategy := range j.strategies {
		symbols, err := strategy.extract(path, content)
		if err == nil {
			return symbols, nil
		}
		lastErr = err
	}
	return nil, &Error{Path: path, Err: lastErr}
}

var jsTestCallRe = regexp.MustCompile(`(?:\btest|\bit)\s*\(\s*['"]([^'"]+)['"]`)

// TestNames collects the string literal passed to test(...) or it(...)
// registration calls. Advisory; never fails.
func (j *JavaScript) TestNames(path string, content []byte) map[string]bool {
	names := make(map[string]bool)
	for _, m := range jsTestCallRe.FindAllStringSubmatch(string(content), -1) {
		names[m[1]] = true
	}
	return names
}

// jsStructural is the Tree-sitter tier. A syntax-broken tree is reported as
// an error so the chain falls through to the pattern tier.
type jsStructural struct {
	jsParser  *sitter.Parser
	tsParser  *sitter.Parser
	tsxParser *sitter.Parser
}

func newJSStructural() *jsStructural {
	jsParser := sitter.NewParser()
	jsParser.SetLanguage(javascript.GetLanguage())
	tsParser := sitter.NewParser()
	tsParser.SetLanguage(typescript.GetLanguage())
	tsxParser := sitter.NewParser()
	tsxParser.SetLanguage(tsx.GetLanguage())
	return &jsStructural{jsParser: jsParser, tsParser: tsParser, tsxParser: tsxParser}
}

func (s *jsStructural) parserFor(path string) *sitter.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts":
		return s.tsParser
	case ".tsx":
		return s.tsxParser
	default:
		return s.jsParser
	}
}

func (s *jsStructural) extract(path string, content []byte) (*Symbols, error) {
	tree, err := s.parserFor(path).ParseCtx(context.Background(), nil, content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, errors.New("syntax error")
	}

	symbols := NewSymbols()
	s.walk(root, content, true, symbols)
	return symbols, nil
}

// walk visits named nodes. topLevel tracks whether the current scope is the
// module scope: only there do non-function bindings count as globals.
// Function names count wherever they appear.
func (s *jsStructural) walk(node *sitter.Node, content []byte, topLevel bool, symbols *Symbols) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)

		switch child.Type() {
		case "class_declaration":
			if name := fieldText(child, "name", content); name != "" {
				symbols.Classes[name] = true
			}
			if body := child.ChildByFieldName("body"); body != nil {
				s.walkClassBody(body, content, symbols)
			}

		case "interface_declaration":
			if name := fieldText(child, "name", content); name != "" {
				symbols.Classes[name] = true
			}

		case "function_declaration", "generator_function_declaration":
			if name := fieldText(child, "name", content); name != "" {
				symbols.Functions[name] = true
			}
			if body := child.ChildByFieldName("body"); body != nil {
				s.walk(body, content, false, symbols)
			}

		case "lexical_declaration", "variable_declaration":
			s.walkDeclarators(child, content, topLevel, symbols)

		case "export_statement":
			s.walk(child, content, topLevel, symbols)

		case "expression_statement":
			if topLevel {
				s.walkModuleAssignment(child, content, symbols)
			}
			s.walk(child, content, false, symbols)

		default:
			s.walk(child, content, topLevel, symbols)
		}
	}
}

// walkClassBody collects method names from a class body.
func (s *jsStructural) walkClassBody(body *sitter.Node, content []byte, symbols *Symbols) {
	for i := 0; i < int(body.NamedChildCount()); i++ {
		member := body.NamedChild(i)
		switch member.Type() {
		case "method_definition":
			if name := fieldText(member, "name", content); name != "" {
				symbols.Functions[name] = true
			}
		case "field_definition", "public_field_definition":
			value := member.ChildByFieldName("value")
			if value != nil && isFunctionValue(value.Type()) {
				if name := fieldText(member, "property", content); name != "" {
					symbols.Functions[name] = true
				}
			}
		}
	}
}

// walkDeclarators classifies const/let/var declarators: a binding whose
// value is a function or arrow literal is a function, any other initialized
// top-level binding is a global.
func (s *jsStructural) walkDeclarators(decl *sitter.Node, content []byte, topLevel bool, symbols *Symbols) {
	for i := 0; i < int(decl.NamedChildCount()); i++ {
		declarator := decl.NamedChild(i)
		if declarator.Type() != "variable_declarator" {
			continue
		}
		name := fieldText(declarator, "name", content)
		if name == "" {
			continue
		}
		value := declarator.ChildByFieldName("value")
		switch {
		case value == nil:
			// Uninitialized binding, nothing to classify.
		case isFunctionValue(value.Type()):
			symbols.Functions[name] = true
			s.walk(value, content, false, symbols)
		case topLevel:
			symbols.Globals[name] = true
		}
	}
}

// walkModuleAssignment handles the two bare-export forms: attaching a name
// to the window object, and assigning a mapping literal to module.exports
// (each key is treated as a function-like symbol).
func (s *jsStructural) walkModuleAssignment(stmt *sitter.Node, content []byte, symbols *Symbols) {
	for i := 0; i < int(stmt.NamedChildCount()); i++ {
		assign := stmt.NamedChild(i)
		if assign.Type() != "assignment_expression" {
			continue
		}
		left := assign.ChildByFieldName("left")
		right := assign.ChildByFieldName("right")
		if left == nil || left.Type() != "member_expression" {
			continue
		}
		object := fieldText(left, "object", content)
		property := fieldText(left, "property", content)
		switch {
		case object == "window" || object == "globalThis":
			if property != "" {
				symbols.Globals[property] = true
			}
		case object == "module" && property == "exports":
			if right != nil && right.Type() == "object" {
				s.collectExportKeys(right, content, symbols)
			}
		}
	}
}

func (s *jsStructural) collectExportKeys(object *sitter.Node, content []byte, symbols *Symbols) {
	for i := 0; i < int(object.NamedChildCount()); i++ {
		pair := object.NamedChild(i)
		switch pair.Type() {
		case "pair":
			if key := fieldText(pair, "key", content); key != "" {
				symbols.Functions[strings.Trim(key, `'"`)] = true
			}
		case "shorthand_property_identifier":
			symbols.Functions[nodeText(pair, content)] = true
		}
	}
}

func isFunctionValue(nodeType string) bool {
	switch nodeType {
	case "arrow_function", "function", "function_expression", "generator_function":
		return true
	}
	return false
}
