package tfa

import (
	"strings"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTOTP_GenerateAndValidate(t *testing.T) {
	tf := New("jobboard")

	s, err := tf.Generate("ada@example.com")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(s.URL, "otpauth://totp/"))
	assert.Contains(t, s.URL, "issuer=jobboard")

	code, err := totp.GenerateCode(s.Secret, time.Now().UTC())
	require.NoError(t, err)
	assert.NoError(t, tf.Validate(code, s.Secret))

	assert.ErrorIs(t, tf.Validate("000000x", s.Secret), ErrInvalidCode)
}
