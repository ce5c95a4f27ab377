package domain

import (
	"testing"
	"time"
)

func TestOTPValid(t *testing.T) {
	now := time.Now()
	issued := now.Add(-time.Minute)

	cases := []struct {
		name string
		user User
		code string
		want bool
	}{
		{"matches within window", User{OTPCode: "042137", OTPCreatedAt: &issued}, "042137", true},
		{"wrong code", User{OTPCode: "042137", OTPCreatedAt: &issued}, "000000", false},
		{"no pending code", User{}, "042137", false},
		{"empty code never matches", User{OTPCode: "", OTPCreatedAt: &issued}, "", false},
	}
	for _, tc := range cases {
		if got := tc.user.OTPValid(tc.code, now); got != tc.want {
			t.Errorf("%s: OTPValid = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestOTPValidExpiry(t *testing.T) {
	now := time.Now()

	fresh := now.Add(-OTPValidity + time.Second)
	u := User{OTPCode: "042137", OTPCreatedAt: &fresh}
	if !u.OTPValid("042137", now) {
		t.Error("expected a code just inside the window to validate")
	}

	stale := now.Add(-OTPValidity - time.Second)
	u.OTPCreatedAt = &stale
	if u.OTPValid("042137", now) {
		t.Error("expected a code past the window to be rejected")
	}
}
