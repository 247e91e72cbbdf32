package formula

// BooleanField is a checkbox column.
type BooleanField struct {
	column
}

// NewBooleanField returns a boolean field named name.
func NewBooleanField(name string) BooleanField {
	return BooleanField{column{name: name}}
}

func (BooleanField) Kind() Kind { return KindBoolean }

func (f BooleanField) Equals(v bool) string {
	return f.ref() + "=" + Bool(v)
}

func (f BooleanField) IsTrue() string  { return f.Equals(true) }
func (f BooleanField) IsFalse() string { return f.Equals(false) }
