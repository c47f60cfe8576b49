// Package randompkg provides functionality gor generating random applications common items.
package randompkg

import (
	"crypto/rand"
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// Intn is a shortcut for generating a random integer between 0 and max using crypto/rand.
func Intn(max int) int64 {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		panic(err)
	}

	return nBig.Int64()
}

// Float64 is a shortcut for generating a random float between 0 and 1 using crypto/rand.
func Float64() float64 {
	return float64(Intn(1<<32)) / (1 << 32)
}

// String generates a random string of length n.
func String(n int) string {
	var sb strings.Builder

	k := len(alphabet)

	for i := 0; i < n; i++ {
		c := alphabet[Intn(k)]
		sb.WriteByte(c)
	}

	return sb.String()
}

// Holder generates a random account holder name.
func Holder() string {
	return String(10)
}

// AccountID generates a random ledger account id.
func AccountID() string {
	return "ACC" + strings.ToUpper(String(6))
}

// Amount generates a random positive decimal between min and max
// rounded to 2 fraction digits.
func Amount(min, max float64) decimal.Decimal {
	numInRange := min + Float64()*(max-min)
	rounded := math.Floor(numInRange*100) / 100

	return decimal.NewFromFloat(rounded)
}
