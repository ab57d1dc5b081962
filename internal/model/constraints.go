package model

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ConstraintKind discriminates the value held by a ConstraintValue.
type ConstraintKind int

const (
	ConstraintString ConstraintKind = iota
	ConstraintNumber
	ConstraintBool
)

// ConstraintValue is one entry in a Solution's open constraints map. The
// schema is deliberately unconstrained so host projects can invent their own
// constraint names, but values are restricted to a closed union of string,
// number, and bool so comparison and serialization stay well-defined.
type ConstraintValue struct {
	Kind ConstraintKind
	Str  string
	Num  float64
	Bool bool
}

// String renders the value the way it was written in the manifest.
func (v ConstraintValue) String() string {
	switch v.Kind {
	case ConstraintNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case ConstraintBool:
		return strconv.FormatBool(v.Bool)
	default:
		return v.Str
	}
}

// UnmarshalYAML decodes a scalar YAML node into the closed union. Mapping or
// sequence values are rejected.
func (v *ConstraintValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("constraint value must be a string, number, or bool (line %d)", node.Line)
	}
	switch node.Tag {
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return err
		}
		*v = ConstraintValue{Kind: ConstraintBool, Bool: b}
	case "!!int", "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return err
		}
		*v = ConstraintValue{Kind: ConstraintNumber, Num: f}
	default:
		*v = ConstraintValue{Kind: ConstraintString, Str: node.Value}
	}
	return nil
}

// MarshalYAML emits the underlying primitive.
func (v ConstraintValue) MarshalYAML() (interface{}, error) {
	switch v.Kind {
	case ConstraintNumber:
		return v.Num, nil
	case ConstraintBool:
		return v.Bool, nil
	default:
		return v.Str, nil
	}
}
