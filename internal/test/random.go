package test

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

const (
	asciiLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	lowerLetters = "abcdefghijklmnopqrstuvwxyz"
)

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RandomASCIIString returns a pseudo-random alphanumeric string within the provided bounds.
func RandomASCIIString(minLen, maxLen int) string {
	return randomString(asciiLetters, minLen, maxLen)
}

// RandomEmail returns a lowercase address that survives email normalisation unchanged.
func RandomEmail() string {
	return randomString(lowerLetters, 4, 10) + "@" + randomString(lowerLetters, 3, 8) + ".test"
}

// RandomPrice returns a unit price in minor units between 1 and max.
func RandomPrice(max int64) int64 {
	if max <= 1 {
		return 1
	}
	return int64(randomIntn(int(max))) + 1
}

func randomString(alphabet string, minLen, maxLen int) string {
	if minLen <= 0 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}
	length := minLen
	if maxLen > minLen {
		length += randomIntn(maxLen - minLen + 1)
	}
	var b strings.Builder
	b.Grow(length)
	for range length {
		b.WriteByte(alphabet[randomIntn(len(alphabet))])
	}
	return b.String()
}

func randomIntn(n int) int {
	rngMu.Lock()
	defer rngMu.Unlock()
	return rng.Intn(n)
}
