// Package validate holds the client-side input checks. These exist to give
// immediate feedback before a round trip; the server re-validates everything
// and its verdict wins.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

const (
	PasswordMinLength    = 8
	NameMinLength        = 2
	NameMaxLength        = 50
	TitleMinLength       = 3
	TitleMaxLength       = 200
	DescriptionMinLength = 10
	DescriptionMaxLength = 2000
	CommentMinLength     = 10
	CommentMaxLength     = 500
	PhoneLength          = 10
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	zipRe   = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	digitRe = regexp.MustCompile(`\D`)
)

func Email(email string) bool {
	return emailRe.MatchString(email)
}

// Phone accepts a US number in any punctuation; exactly ten digits must
// remain after stripping.
func Phone(phone string) bool {
	return len(digitRe.ReplaceAllString(phone, "")) == PhoneLength
}

func ZipCode(zip string) bool {
	return zipRe.MatchString(zip)
}

// Password reports every unmet strength rule so a prompt can show them all
// at once.
func Password(password string) []string {
	var problems []string

	if len(password) < PasswordMinLength {
		problems = append(problems, fmt.Sprintf("must be at least %d characters", PasswordMinLength))
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper {
		problems = append(problems, "must contain an uppercase letter")
	}
	if !hasLower {
		problems = append(problems, "must contain a lowercase letter")
	}
	if !hasDigit {
		problems = append(problems, "must contain a digit")
	}

	return problems
}

// ISBN validates an ISBN-10 or ISBN-13 checksum. Hyphens and spaces are
// ignored.
func ISBN(isbn string) bool {
	cleaned := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' || r == 'X' || r == 'x' {
			return r
		}
		return -1
	}, isbn)

	switch len(cleaned) {
	case 10:
		sum := 0
		for i := 0; i < 9; i++ {
			sum += int(cleaned[i]-'0') * (10 - i)
		}
		last := cleaned[9]
		if last == 'X' || last == 'x' {
			sum += 10
		} else if last >= '0' && last <= '9' {
			sum += int(last - '0')
		} else {
			return false
		}
		return sum%11 == 0
	case 13:
		sum := 0
		for i := 0; i < 12; i++ {
			d := cleaned[i]
			if d < '0' || d > '9' {
				return false
			}
			weight := 1
			if i%2 == 1 {
				weight = 3
			}
			sum += int(d-'0') * weight
		}
		if cleaned[12] < '0' || cleaned[12] > '9' {
			return false
		}
		return (10-sum%10)%10 == int(cleaned[12]-'0')
	}
	return false
}

// Length checks a trimmed string against inclusive bounds.
func Length(s string, min, max int) bool {
	n := len(strings.TrimSpace(s))
	return n >= min && n <= max
}
