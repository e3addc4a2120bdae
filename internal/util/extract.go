package util

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+`)

// Resume pairs a résumé's text with the email found in it. Email is empty
// when the text contains no address.
type Resume struct {
	Text  string
	Email string
}

// ExtractEmail returns the first address-shaped substring in text,
// lower-cased. The match is syntactic only; a résumé that lists a referee's
// address first will yield the referee.
func ExtractEmail(text string) (string, bool) {
	match := emailPattern.FindString(text)
	if match == "" {
		return "", false
	}
	return strings.ToLower(match), true
}

// PrepareResumes extracts the email of every résumé, keeping input order.
func PrepareResumes(texts []string) []Resume {
	resumes := make([]Resume, 0, len(texts))
	for _, text := range texts {
		email, _ := ExtractEmail(text)
		resumes = append(resumes, Resume{Text: text, Email: email})
	}
	return resumes
}

// NormalizeEmail is applied to every email before it is stored or compared.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
