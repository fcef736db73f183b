// Package tfa generates and checks time-based one-time passwords.
package tfa

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

var ErrInvalidCode = errors.New("invalid tfa code")

type Secret struct {
	Secret string
	URL    string
}

type TOTP struct {
	issuer string
	now    func() time.Time
}

func New(issuer string) *TOTP {
	return &TOTP{issuer: issuer, now: time.Now}
}

// Generate creates a new secret for account and its otpauth:// URL.
func (t *TOTP) Generate(account string) (Secret, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      t.issuer,
		AccountName: account,
		Algorithm:   otp.AlgorithmSHA1,
		Digits:      otp.DigitsSix,
	})
	if err != nil {
		return Secret{}, errors.Wrap(err, "generate totp secret")
	}
	return Secret{Secret: key.Secret(), URL: key.URL()}, nil
}

func (t *TOTP) Validate(code, secret string) error {
	ok, err := totp.ValidateCustom(code, secret, t.now().UTC(), totp.ValidateOpts{
		Period:    30,
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil || !ok {
		return ErrInvalidCode
	}
	return nil
}
