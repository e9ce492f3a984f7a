package utils

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"

	"github.com/oklog/ulid/v2"
)

const referenceChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func GenerateUULDString() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), ulid.DefaultEntropy()).String()
}

// Now is swapped in tests that need a fixed clock.
var Now = time.Now

func GetStringPointer(text string) *string {
	return &text
}

func HasItemString(arr *[]string, target string) bool {
	for _, v := range *arr {
		if v == target {
			return true
		}
	}
	return false
}

// HMACEqual compares two hex digests in constant time.
func HMACEqual(expected string, actual string) bool {
	return hmac.Equal([]byte(expected), []byte(actual))
}

func CreateHMACSHA512Hash(payload []byte, secret string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// GenerateReference builds a merchant reference of the form
// PREFIX-<unix millis>-<suffixLen random chars>.
func GenerateReference(prefix string, suffixLen int, now time.Time) string {
	suffix := make([]byte, suffixLen)
	max := big.NewInt(int64(len(referenceChars)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand does not fail on supported platforms
			panic(err)
		}
		suffix[i] = referenceChars[n.Int64()]
	}
	return fmt.Sprintf("%s-%d-%s", prefix, now.UnixMilli(), string(suffix))
}
