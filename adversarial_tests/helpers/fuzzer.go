package helpers

import (
	"math/rand/v2"
	"strings"
	"unicode"
)

// Fuzzer provides utilities for generating adversarial input strings
type Fuzzer struct {
	rnd *rand.Rand
}

// NewFuzzer creates a new Fuzzer with the given seed
func NewFuzzer(seed uint64) *Fuzzer {
	return &Fuzzer{
		rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// FuzzUsername generates usernames that must all be rejected
func (f *Fuzzer) FuzzUsername() []string {
	cases := []string{
		"",
		strings.Repeat("a", 31), // one over the limit
		"Alice",                 // upper case
		"alice bob",
		"alice-bob",
		"alice@lapse",
		" alice",
		"alice ",
		"alice\n",
		"\u00e9lectrique",
		f.GenerateRandomString(12, true) + "!",
	}
	for _, s := range f.GenerateUnicodeAttacks() {
		cases = append(cases, "a"+s)
	}
	cases = append(cases, f.GeneratePathTraversals()...)
	return append(cases, f.GenerateInjections()...)
}

// FuzzFileUUID generates blob names that must all be rejected
func (f *Fuzzer) FuzzFileUUID() []string {
	valid := "01HDBZ" + strings.Repeat("A", 20)
	return []string{
		"",
		"01HDBZ",
		valid[:len(valid)-1], // one short
		valid + "0",          // one long
		"01HDBZ" + strings.Repeat("a", 20),
		"01hdbz" + strings.Repeat("A", 20),
		"01HDBY" + strings.Repeat("A", 20),
		"01HDBZ" + strings.Repeat("G", 20),
		"01HDBZ" + strings.Repeat("A", 19) + "/",
		"../01HDBZ" + strings.Repeat("A", 20),
		"01HDBZ" + strings.Repeat("A", 20) + "\x00",
		"instant/01HDBZ" + strings.Repeat("A", 20),
		"01HDBZ" + strings.Repeat("A", 10) + "\u200B" + strings.Repeat("A", 10),
	}
}

// FuzzStatusUpdateID generates status update ids that must all be rejected
func (f *Fuzzer) FuzzStatusUpdateID() []string {
	id := "3f1c2a64-8f31-4b7e-9d5a-0c6f2e8b1a90"
	return []string{
		"",
		id,
		"STATUS_UPDATE:",
		"STATUS_UPDATE:" + id[:35],
		"STATUS_UPDATE:" + id + "0",
		"status_update:" + id,
		"STATUS_UPDATE " + id,
		"STATUS_UPDATE:" + strings.Replace(id, "-", "z", 1),
		"STATUS_UPDATE:" + id + "\n",
		"MEDIA:" + id,
	}
}

// FuzzPageSize generates page sizes outside every allowed range
func (f *Fuzzer) FuzzPageSize() []int {
	return []int{
		-1,
		-100,
		-2147483648, // int32 min
		101,         // one over max
		1000,
		2147483647, // int32 max
	}
}

// GenerateRandomString generates a random string of the given length with specified character types
func (f *Fuzzer) GenerateRandomString(length int, includeSpecial bool) string {
	const (
		letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
		special = "!@#$%^&*()_+-=[]{}|;':\",./<>?`~"
	)

	charset := letters
	if includeSpecial {
		charset += special
	}

	result := make([]byte, length)
	for i := range result {
		result[i] = charset[f.rnd.IntN(len(charset))]
	}
	return string(result)
}

// GenerateControlCharString generates a string with various control characters
func (f *Fuzzer) GenerateControlCharString() []string {
	var results []string
	for i := 0; i < 32; i++ {
		char := rune(i)
		if unicode.IsControl(char) {
			results = append(results, "test"+string(char)+"string")
		}
	}
	return append(results, "test\x7fstring")
}

// GenerateUnicodeAttacks generates strings with various Unicode attack patterns
func (f *Fuzzer) GenerateUnicodeAttacks() []string {
	return []string{
		"test\u200Bstring", // zero-width space
		"test\u200Dstring", // zero-width joiner
		"test\uFEFFstring", // zero-width no-break space
		"test\u202Estring", // right-to-left override
		"a\u0301\u0302",    // combining marks
		"\u0430lice",       // Cyrillic a
		"test\u0000string",
	}
}

// GenerateInjections generates GraphQL and shell injection patterns
func (f *Fuzzer) GenerateInjections() []string {
	return []string{
		`alice"){ id }`,
		`alice\") { __schema { types { name } } }`,
		"alice#",
		"$(whoami)",
		"`id`",
		"'; DROP TABLE users--",
		"' OR '1'='1",
	}
}

// GeneratePathTraversals generates path traversal attack patterns
func (f *Fuzzer) GeneratePathTraversals() []string {
	return []string{
		"../../etc/passwd",
		"..\\..\\windows\\system32",
		"..%2F..%2Fetc%2Fpasswd",
		"/etc/passwd",
	}
}
