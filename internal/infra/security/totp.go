package security

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/base32"
	"encoding/binary"
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	totpDigits = 6
	// TOTPPeriod is the RFC 6238 time step used for generated codes.
	TOTPPeriod = 30 * time.Second
	// totpSkewSteps tolerates clock drift of one step either side on verify.
	totpSkewSteps = 1
)

// ErrMissingSecret is returned when the TOTP secret is empty.
var ErrMissingSecret = fmt.Errorf("totp secret is required")

var b32 = base32.StdEncoding.WithPadding(base32.NoPadding)

// GenerateTOTPSecret returns a new random base32-encoded shared secret.
func GenerateTOTPSecret() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate totp secret: %w", err)
	}
	return b32.EncodeToString(buf), nil
}

// TOTPProvisioningURI builds the otpauth:// URI encoded into the enrollment
// QR code shown by the dashboard.
func TOTPProvisioningURI(issuer, account, secret string) string {
	label := url.PathEscape(fmt.Sprintf("%s:%s", issuer, account))
	params := url.Values{}
	params.Set("secret", secret)
	params.Set("issuer", issuer)
	params.Set("digits", fmt.Sprintf("%d", totpDigits))
	params.Set("period", fmt.Sprintf("%d", int(TOTPPeriod.Seconds())))
	return fmt.Sprintf("otpauth://totp/%s?%s", label, params.Encode())
}

// GenerateTOTP computes the RFC 6238 code for the secret at the given moment.
func GenerateTOTP(secret string, at time.Time) (string, error) {
	if secret == "" {
		return "", ErrMissingSecret
	}

	key, err := b32.DecodeString(strings.ToUpper(strings.TrimSpace(secret)))
	if err != nil {
		return "", fmt.Errorf("decode totp secret: %w", err)
	}

	counter := uint64(at.Unix() / int64(TOTPPeriod.Seconds()))
	return hotp(key, counter), nil
}

// VerifyTOTP checks the provided code against the secret, tolerating one time
// step of drift in either direction.
func VerifyTOTP(secret, code string, at time.Time) (bool, error) {
	if secret == "" {
		return false, ErrMissingSecret
	}

	code = strings.TrimSpace(code)
	if len(code) != totpDigits {
		return false, nil
	}

	key, err := b32.DecodeString(strings.ToUpper(strings.TrimSpace(secret)))
	if err != nil {
		return false, fmt.Errorf("decode totp secret: %w", err)
	}

	counter := at.Unix() / int64(TOTPPeriod.Seconds())
	for offset := int64(-totpSkewSteps); offset <= totpSkewSteps; offset++ {
		candidate := hotp(key, uint64(counter+offset))
		if subtle.ConstantTimeCompare([]byte(candidate), []byte(code)) == 1 {
			return true, nil
		}
	}

	return false, nil
}

func hotp(key []byte, counter uint64) string {
	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], counter)

	mac := hmac.New(sha1.New, key)
	mac.Write(msg[:])
	sum := mac.Sum(nil)

	offset := sum[len(sum)-1] & 0x0f
	value := binary.BigEndian.Uint32(sum[offset:offset+4]) & 0x7fffffff

	return fmt.Sprintf("%06d", value%1000000)
}
