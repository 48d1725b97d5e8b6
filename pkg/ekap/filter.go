package ekap

import "encoding/json"

// Expr is a node of the DevExtreme-style filter list accepted by the
// loadOptions endpoints.
type Expr interface {
	json.Marshaler
	expr()
}

// Condition is a single [field, operator, value] triple.
type Condition struct {
	Field    string
	Operator string
	Value    any
}

// Contains matches records whose field contains value.
func Contains(field string, value any) Condition {
	return Condition{Field: field, Operator: "contains", Value: value}
}

func (Condition) expr() {}

// MarshalJSON implements json.Marshaler for Condition
func (c Condition) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{c.Field, c.Operator, c.Value})
}

// Group joins operands with a literal joiner token: [e1, "or", e2, ...].
// A group with a single operand marshals as [e1] and the zero value as [].
type Group struct {
	Joiner   string
	Operands []Expr
}

// Or joins exprs with "or".
func Or(exprs ...Expr) Group {
	return Group{Joiner: "or", Operands: exprs}
}

// And joins exprs with "and".
func And(exprs ...Expr) Group {
	return Group{Joiner: "and", Operands: exprs}
}

func (Group) expr() {}

// MarshalJSON implements json.Marshaler for Group
func (g Group) MarshalJSON() ([]byte, error) {
	items := make([]any, 0, 2*len(g.Operands))
	for i, operand := range g.Operands {
		if i > 0 {
			items = append(items, g.Joiner)
		}
		items = append(items, operand)
	}
	return json.Marshal(items)
}
