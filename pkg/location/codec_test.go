package location_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ADB-Data-Division/DataBlox-frontend-sub001/pkg/location"
)

func TestNormalize_LowercasesAndTrims(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "bangkok", location.Normalize("  Bangkok "))
}

func TestNormalize_StripsCountryPrefix(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "10", location.Normalize("TH-10"))
	assert.Equal(t, "10", location.Normalize("th-10"))
}

func TestNormalize_StripsRepeatedCountryPrefix(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "5", location.Normalize("th-th-5"))
	assert.Equal(t, "10", location.Normalize("TH-TH-010"))
	assert.Equal(t, "bangkok", location.Normalize("th-th-bangkok"))
}

func TestNormalize_StripsLeadingZerosFromTrailingDigits(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "10", location.Normalize("010"))
	assert.Equal(t, "10", location.Normalize("TH-010"))
	assert.Equal(t, "province10", location.Normalize("Province010"))
}

func TestNormalize_KeepsAtLeastOneDigit(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0", location.Normalize("000"))
}

func TestNormalize_NonNumericKeysPassThrough(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "chiang mai", location.Normalize("Chiang Mai"))
}

func TestNormalize_EmptyWithoutAlphanumerics(t *testing.T) {
	t.Parallel()

	assert.Empty(t, location.Normalize("  --- "))
	assert.Empty(t, location.Normalize(""))
}

func TestNormalize_PreservesThaiScript(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "กรุงเทพมหานคร", location.Normalize("กรุงเทพมหานคร"))
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{"TH-010", "Bangkok", "  Chiang Mai ", "000", "th-96", "th-th-5", "TH-TH-010", "th-th-bangkok"}

	for _, raw := range inputs {
		once := location.Normalize(raw)

		assert.Equal(t, once, location.Normalize(once), "input %q", raw)
	}
}
