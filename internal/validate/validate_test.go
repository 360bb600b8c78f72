package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmail(t *testing.T) {
	assert.True(t, Email("jane@example.com"))
	assert.True(t, Email("a.b+tag@sub.domain.org"))
	assert.False(t, Email(""))
	assert.False(t, Email("jane@example"))
	assert.False(t, Email("jane example@mail.com"))
	assert.False(t, Email("@example.com"))
}

func TestPhone(t *testing.T) {
	assert.True(t, Phone("5551234567"))
	assert.True(t, Phone("(555) 123-4567"))
	assert.True(t, Phone("555.123.4567"))
	assert.False(t, Phone(""))
	assert.False(t, Phone("123456789"))
	assert.False(t, Phone("15551234567"))
}

func TestZipCode(t *testing.T) {
	assert.True(t, ZipCode("12345"))
	assert.True(t, ZipCode("12345-6789"))
	assert.False(t, ZipCode("1234"))
	assert.False(t, ZipCode("123456"))
	assert.False(t, ZipCode("12345-678"))
	assert.False(t, ZipCode("abcde"))
}

func TestPassword(t *testing.T) {
	testCases := []struct {
		name     string
		password string
		problems int
	}{
		{"strong", "Secret123", 0},
		{"too short", "Se1", 1},
		{"no uppercase", "secret123", 1},
		{"no lowercase", "SECRET123", 1},
		{"no digit", "Secretpass", 1},
		{"empty fails everything", "", 4},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Len(t, Password(tc.password), tc.problems)
		})
	}
}

func TestISBN(t *testing.T) {
	testCases := []struct {
		name string
		isbn string
		want bool
	}{
		{"valid ISBN-10", "0306406152", true},
		{"valid ISBN-10 with X check digit", "097522980X", true},
		{"valid ISBN-10 hyphenated", "0-306-40615-2", true},
		{"invalid ISBN-10 checksum", "0306406153", false},
		{"valid ISBN-13", "9780306406157", true},
		{"valid ISBN-13 hyphenated", "978-0-306-40615-7", true},
		{"invalid ISBN-13 checksum", "9780306406158", false},
		{"wrong length", "12345", false},
		{"empty", "", false},
		{"X in the middle", "03064X6152", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ISBN(tc.isbn))
		})
	}
}

func TestLength(t *testing.T) {
	assert.True(t, Length("hello", 1, 10))
	assert.True(t, Length("  hello  ", 5, 5))
	assert.False(t, Length("hello", 6, 10))
	assert.False(t, Length("hello", 1, 4))
	assert.False(t, Length("   ", 1, 10))
}
