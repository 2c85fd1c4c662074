package order

import "crypto/rand"

// Public ids are short, URL-safe and shareable, unlike the serial row ids.
const (
	oidAlphabet = "abcdefg12345"
	oidLength   = 10
)

// NewOID generates a public identifier for orders and order items.
func NewOID() string {
	buf := make([]byte, oidLength)
	if _, err := rand.Read(buf); err != nil {
		panic(err) // crypto/rand never fails on supported platforms
	}
	for i, b := range buf {
		buf[i] = oidAlphabet[int(b)%len(oidAlphabet)]
	}
	return string(buf)
}
