package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBooleanField(t *testing.T) {
	f := NewBooleanField("Active")

	assert.Equal(t, "{Active}=TRUE()", f.Equals(true))
	assert.Equal(t, "{Active}=FALSE()", f.Equals(false))
	assert.Equal(t, "{Active}=TRUE()", f.IsTrue())
	assert.Equal(t, "{Active}=FALSE()", f.IsFalse())
	assert.Equal(t, KindBoolean, f.Kind())
}

func TestBooleanField_Emptiness(t *testing.T) {
	f := NewBooleanField("Is Published")

	assert.Equal(t, "{Is Published}=BLANK()", f.IsEmpty())
	assert.Equal(t, "{Is Published}", f.IsNotEmpty())
}
