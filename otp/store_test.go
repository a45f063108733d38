package otp_test

import (
	"testing"

	"food-ordering-api/otp"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code := otp.GenerateCode()
		assert.Regexp(t, `^\d{6}$`, code)
		seen[code] = true
	}
	// 50 draws from a million values colliding down to a handful would mean
	// the generator is broken
	assert.Greater(t, len(seen), 40)
}
