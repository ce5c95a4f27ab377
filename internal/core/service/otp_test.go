package service

import (
	"strings"
	"testing"
)

func TestGenerateOTPFormat(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := generateOTP()
		if len(code) != 6 {
			t.Fatalf("expected 6 characters, got %q", code)
		}
		if strings.Trim(code, "0123456789") != "" {
			t.Fatalf("expected only digits, got %q", code)
		}
	}
}
