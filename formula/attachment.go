package formula

import "strconv"

// AttachmentField is an attachment column. Emptiness is decided by the
// number of attachments, not by BLANK().
type AttachmentField struct {
	column
}

// NewAttachmentField returns an attachment field named name.
func NewAttachmentField(name string) AttachmentField {
	return AttachmentField{column{name: name}}
}

func (AttachmentField) Kind() Kind { return KindAttachment }

func (f AttachmentField) IsEmpty() string {
	return "LEN(" + f.ref() + ")=0"
}

func (f AttachmentField) IsNotEmpty() string {
	return "LEN(" + f.ref() + ")>0"
}

// CountIs holds when exactly n attachments are present.
func (f AttachmentField) CountIs(n int) string {
	return "LEN(" + f.ref() + ")=" + strconv.Itoa(n)
}
