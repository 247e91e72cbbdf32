package formula

import "fmt"

// Kind identifies the semantic type of a field.
type Kind string

const (
	KindText       Kind = "text"
	KindTextList   Kind = "text_list"
	KindNumber     Kind = "number"
	KindBoolean    Kind = "boolean"
	KindAttachment Kind = "attachment"
	KindDate       Kind = "date"
)

// Kinds lists every field kind.
var Kinds = []Kind{KindText, KindTextList, KindNumber, KindBoolean, KindAttachment, KindDate}

// ParseKind returns the kind spelled s.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown field kind %q", s)
}

// Field is a named column of a known kind.
//
// This is a sealed interface: only the field types in this package
// implement it, so a switch over Kind is exhaustive.
type Field interface {
	// Name returns the display name of the column.
	Name() string

	// Kind returns the semantic type of the column.
	Kind() Kind

	// IsEmpty returns a condition that holds when the field is blank.
	IsEmpty() string

	// IsNotEmpty returns a condition that holds when the field is not blank.
	IsNotEmpty() string

	fieldNode() // Marker method - seals interface to this package
}

// NewField returns the field variant for kind.
func NewField(kind Kind, name string) (Field, error) {
	switch kind {
	case KindText:
		return NewTextField(name), nil
	case KindTextList:
		return NewTextListField(name), nil
	case KindNumber:
		return NewNumberField(name), nil
	case KindBoolean:
		return NewBooleanField(name), nil
	case KindAttachment:
		return NewAttachmentField(name), nil
	case KindDate:
		return NewDateField(name), nil
	default:
		return nil, fmt.Errorf("unknown field kind %q", kind)
	}
}

// column holds what every field variant shares.
type column struct {
	name string
}

func (c column) Name() string { return c.name }

func (c column) ref() string { return Ref(c.name) }

func (c column) IsEmpty() string {
	return c.ref() + "=BLANK()"
}

// IsNotEmpty is the bare reference: a non-blank field is truthy.
func (c column) IsNotEmpty() string {
	return c.ref()
}

func (column) fieldNode() {}
