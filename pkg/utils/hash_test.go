package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashString(t *testing.T) {
	// sha256("abc")
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", HashString("abc"))
}

func TestEmailFingerprint(t *testing.T) {
	fp := EmailFingerprint("Ana@Clinic.com ")

	assert.Len(t, fp, 16)
	assert.Equal(t, fp, EmailFingerprint("ana@clinic.com"))
	assert.NotEqual(t, fp, EmailFingerprint("bob@clinic.com"))
	assert.Empty(t, EmailFingerprint("  "))
}
