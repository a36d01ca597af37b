package facebook_tracking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashEmail(t *testing.T) {
	want := "fb98d44ad7501a959f3f4f4a3f004fe2d9e581ea6207e218c4b02c08a4d75adf"

	assert.Equal(t, want, HashEmail("a@b.com"))
	assert.Equal(t, want, HashEmail(" A@B.com "))
	assert.Equal(t, want, HashEmail("\tA@b.COM\n"))
	assert.NotEqual(t, "a@b.com", HashEmail("a@b.com"))
	assert.Len(t, HashEmail("someone@example.com"), 64)
}

func TestHashPhone(t *testing.T) {
	want := "beac9dfcfadbc799c464ab7a4f175b4a108b05412db10f8ad050c010444cbed9"

	assert.Equal(t, want, HashPhone("15550001111"))
	assert.Equal(t, want, HashPhone("+1 (555) 000-1111"))
	assert.Equal(t, want, HashPhone("1.555.000.1111"))
}

func TestHashName(t *testing.T) {
	want := "81f8f6dde88365f3928796ec7aa53f72820b06db8664f5fe76a7eb13e24546a2"

	assert.Equal(t, want, HashName("jane"))
	assert.Equal(t, want, HashName(" Jane "))
}

func TestHashEmptyInput(t *testing.T) {
	assert.Equal(t, "", HashEmail(""))
	assert.Equal(t, "", HashEmail("   "))
	assert.Equal(t, "", HashPhone(""))
	assert.Equal(t, "", HashPhone("ext."))
	assert.Equal(t, "", HashName("\t"))
}
