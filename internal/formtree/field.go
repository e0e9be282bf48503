package formtree

// Field is a terminal node holding a single value and status flags.
// A new field is enabled, untouched and valid.
type Field struct {
	value    any
	disabled bool
	touched  bool
	valid    bool
	onChange func(any)
}

// NewField creates a field holding value.
func NewField(value any) *Field {
	return &Field{
		value: value,
		valid: true,
	}
}

// WithOnChange sets the hook fired by SetValue and returns the field.
// The owning component uses this to react to edits of its own fields.
func (f *Field) WithOnChange(fn func(any)) *Field {
	f.onChange = fn
	return f
}

// Kind returns KindField.
func (f *Field) Kind() Kind { return KindField }

// Child always returns (nil, false): fields have no children.
func (f *Field) Child(string) (Node, bool) { return nil, false }

// Value returns the current value.
func (f *Field) Value() any { return f.value }

// SetValue stores value and fires the OnChange hook, if any. This is
// the only mutation that fires the hook; status setters are silent.
func (f *Field) SetValue(value any) {
	f.value = value
	if f.onChange != nil {
		f.onChange(value)
	}
}

// Disabled reports the disabled flag.
func (f *Field) Disabled() bool { return f.disabled }

// SetDisabled sets the disabled flag without firing OnChange.
func (f *Field) SetDisabled(disabled bool) { f.disabled = disabled }

// Touched reports whether the field has been interacted with.
func (f *Field) Touched() bool { return f.touched }

// SetTouched sets the touched flag without firing OnChange.
func (f *Field) SetTouched(touched bool) { f.touched = touched }

// Valid reports the valid flag. Fields start valid; what makes one
// invalid is entirely up to the owning component.
func (f *Field) Valid() bool { return f.valid }

// SetValid sets the valid flag without firing OnChange.
func (f *Field) SetValid(valid bool) { f.valid = valid }
