package security

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateTOTPRoundTrip(t *testing.T) {
	secret, err := GenerateTOTPSecret()
	if err != nil {
		t.Fatalf("GenerateTOTPSecret: %v", err)
	}

	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	code, err := GenerateTOTP(secret, at)
	if err != nil {
		t.Fatalf("GenerateTOTP: %v", err)
	}
	if len(code) != 6 {
		t.Fatalf("code = %q, want 6 digits", code)
	}

	ok, err := VerifyTOTP(secret, code, at)
	if err != nil {
		t.Fatalf("VerifyTOTP: %v", err)
	}
	if !ok {
		t.Error("freshly generated code rejected")
	}
}

func TestVerifyTOTPToleratesOneStepDrift(t *testing.T) {
	secret, err := GenerateTOTPSecret()
	if err != nil {
		t.Fatalf("GenerateTOTPSecret: %v", err)
	}

	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	code, err := GenerateTOTP(secret, at)
	if err != nil {
		t.Fatalf("GenerateTOTP: %v", err)
	}

	for _, drift := range []time.Duration{-TOTPPeriod, TOTPPeriod} {
		ok, err := VerifyTOTP(secret, code, at.Add(drift))
		if err != nil {
			t.Fatalf("VerifyTOTP(%v): %v", drift, err)
		}
		if !ok {
			t.Errorf("code rejected at %v drift", drift)
		}
	}

	ok, err := VerifyTOTP(secret, code, at.Add(2*TOTPPeriod))
	if err != nil {
		t.Fatalf("VerifyTOTP: %v", err)
	}
	if ok {
		t.Error("code accepted two steps away")
	}
}

func TestVerifyTOTPRejectsWrongCode(t *testing.T) {
	secret, err := GenerateTOTPSecret()
	if err != nil {
		t.Fatalf("GenerateTOTPSecret: %v", err)
	}

	at := time.Now()
	code, err := GenerateTOTP(secret, at)
	if err != nil {
		t.Fatalf("GenerateTOTP: %v", err)
	}

	wrong := "000000"
	if wrong == code {
		wrong = "111111"
	}
	ok, err := VerifyTOTP(secret, wrong, at)
	if err != nil {
		t.Fatalf("VerifyTOTP: %v", err)
	}
	if ok {
		t.Error("wrong code accepted")
	}

	ok, err = VerifyTOTP(secret, "12345", at)
	if err != nil {
		t.Fatalf("VerifyTOTP: %v", err)
	}
	if ok {
		t.Error("short code accepted")
	}
}

func TestTOTPMissingSecret(t *testing.T) {
	if _, err := GenerateTOTP("", time.Now()); err != ErrMissingSecret {
		t.Errorf("GenerateTOTP err = %v, want ErrMissingSecret", err)
	}
	if _, err := VerifyTOTP("", "123456", time.Now()); err != ErrMissingSecret {
		t.Errorf("VerifyTOTP err = %v, want ErrMissingSecret", err)
	}
}

func TestTOTPProvisioningURI(t *testing.T) {
	uri := TOTPProvisioningURI("OneHealth", "admin@clinic.test", "SECRET123")

	if !strings.HasPrefix(uri, "otpauth://totp/") {
		t.Errorf("uri = %q, want otpauth://totp/ scheme", uri)
	}
	for _, want := range []string{"secret=SECRET123", "issuer=OneHealth", "digits=6", "period=30"} {
		if !strings.Contains(uri, want) {
			t.Errorf("uri %q missing %q", uri, want)
		}
	}
}

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	ok, err := VerifyPassword("correct horse battery staple", hash)
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if !ok {
		t.Error("correct password rejected")
	}

	ok, err = VerifyPassword("wrong password", hash)
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if ok {
		t.Error("wrong password accepted")
	}
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	if _, err := VerifyPassword("pw", "not-a-valid-hash"); err == nil {
		t.Error("malformed hash did not error")
	}

	ok, err := VerifyPassword("", "salt:hash")
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if ok {
		t.Error("empty password accepted")
	}
}

func TestGenerateSecureToken(t *testing.T) {
	token, err := GenerateSecureToken(32)
	if err != nil {
		t.Fatalf("GenerateSecureToken: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}

	other, err := GenerateSecureToken(32)
	if err != nil {
		t.Fatalf("GenerateSecureToken: %v", err)
	}
	if token == other {
		t.Error("two tokens identical")
	}

	if _, err := GenerateSecureToken(0); err == nil {
		t.Error("zero length did not error")
	}
}
