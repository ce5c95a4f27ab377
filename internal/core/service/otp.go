package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

var otpMax = big.NewInt(1000000)

// generateOTP returns a 6-digit one-time code drawn uniformly from
// [0, 999999], zero-padded so leading zeros survive as a string.
func generateOTP() string {
	n, err := rand.Int(rand.Reader, otpMax)
	if err != nil {
		// fallback: current nanoseconds, still zero-padded
		return fmt.Sprintf("%06d", time.Now().UnixNano()%1000000)
	}
	return fmt.Sprintf("%06d", n.Int64())
}
