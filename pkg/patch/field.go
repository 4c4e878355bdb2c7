package patch

// Field is one patchable integer slot carrying its engine default and the
// value after script mutation. The baseline is fixed at construction; only
// the current side moves. A field is exported iff it is dirty.
type Field struct {
	base int32
	cur  int32
}

// NewField creates a field whose baseline and current value are v.
func NewField(v int32) Field {
	return Field{base: v, cur: v}
}

// Set replaces the current value. Setting a field back to its baseline
// makes it clean again.
func (f *Field) Set(v int32) { f.cur = v }

// Value returns the current value.
func (f Field) Value() int32 { return f.cur }

// Baseline returns the engine default.
func (f Field) Baseline() int32 { return f.base }

// Dirty reports whether the current value differs from the baseline.
func (f Field) Dirty() bool { return f.cur != f.base }

// TextField is the string counterpart of Field, used by the string and
// cheat tables.
type TextField struct {
	base string
	cur  string
}

// NewTextField creates a text field whose baseline and current value are s.
func NewTextField(s string) TextField {
	return TextField{base: s, cur: s}
}

// Set replaces the current text.
func (f *TextField) Set(s string) { f.cur = s }

// Value returns the current text.
func (f TextField) Value() string { return f.cur }

// Baseline returns the engine default text.
func (f TextField) Baseline() string { return f.base }

// Dirty reports whether the current text differs from the baseline.
func (f TextField) Dirty() bool { return f.cur != f.base }

// ActionField tracks a state's bound action pointer by mnemonic. The empty
// mnemonic means no action. Comparison is exact: the binder stores the
// registry's canonical mnemonic, so case never differs.
type ActionField struct {
	base string
	cur  string
}

// NewActionField creates an action field bound to the given mnemonic.
func NewActionField(mnemonic string) ActionField {
	return ActionField{base: mnemonic, cur: mnemonic}
}

// Set rebinds the current action mnemonic.
func (f *ActionField) Set(mnemonic string) { f.cur = mnemonic }

// Value returns the currently bound mnemonic ("" when unbound).
func (f ActionField) Value() string { return f.cur }

// Baseline returns the engine default mnemonic.
func (f ActionField) Baseline() string { return f.base }

// Dirty reports whether the binding changed.
func (f ActionField) Dirty() bool { return f.cur != f.base }
