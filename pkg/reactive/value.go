package reactive

import "fmt"

// Value is either a literal string or a reactive accessor.
// The zero Value is unset and resolves to "". Literal("") is set.
type Value struct {
	literal string
	get     func() string
	set     bool
}

// Literal returns a fixed value.
func Literal(s string) Value {
	return Value{literal: s, set: true}
}

// Reactive returns a value re-evaluated by calling get. A nil get yields the
// zero Value.
func Reactive(get func() string) Value {
	return Value{get: get}
}

// Ref returns a reactive value whose result is formatted with fmt.Sprint.
func Ref(get func() any) Value {
	if get == nil {
		return Value{}
	}
	return Value{get: func() string { return fmt.Sprint(get()) }}
}

// IsReactive reports whether the value has an accessor.
func (v Value) IsReactive() bool {
	return v.get != nil
}

// IsZero reports whether the value is unset: neither a literal (even an
// empty one) nor an accessor.
func (v Value) IsZero() bool {
	return v.get == nil && !v.set
}

// Resolve returns the literal, or calls the accessor. Reads made by the
// accessor are tracked by whatever listener is current.
func (v Value) Resolve() string {
	if v.get != nil {
		return v.get()
	}
	return v.literal
}

// String implements fmt.Stringer without evaluating reactive values.
func (v Value) String() string {
	if v.get != nil {
		return "<reactive>"
	}
	return v.literal
}
