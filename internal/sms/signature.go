package sms

import (
	"crypto/md5"
	"encoding/hex"
	"strconv"
	"time"
)

// Timestamp returns t in whole seconds since the epoch, rounded up.
func Timestamp(t time.Time) int64 {
	ms := t.UnixMilli()
	sec := ms / 1000
	if ms%1000 > 0 {
		sec++
	}
	return sec
}

// Sign returns the lowercase hex MD5 of apiKey, appSecret and the decimal
// timestamp concatenated in that order. The provider recomputes the same value.
func Sign(apiKey, appSecret string, timestamp int64) string {
	sum := md5.Sum([]byte(apiKey + appSecret + strconv.FormatInt(timestamp, 10)))
	return hex.EncodeToString(sum[:])
}
