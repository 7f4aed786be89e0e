package schema

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// tokenSeparator joins the hashed fields; it never appears in CSV text.
const tokenSeparator = "\x1f"

// Slug uppercases s and drops every character that is not a letter or digit.
func Slug(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToUpper(s) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Token returns the first TokenLength hex characters of the SHA-256 of the
// given parts joined by an unprintable separator.
func Token(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, tokenSeparator)))
	return hex.EncodeToString(sum[:])[:TokenLength]
}

// TestCaseID formats TC-{REQSLUG}-{CATSLUG}-{token}.
func TestCaseID(requirementID, category, token string) string {
	return fmt.Sprintf("TC-%s-%s-%s", Slug(requirementID), Slug(category), token)
}

// NewRunID generates a run id in format RUN-{nanoid(10)}. Run ids only
// correlate log lines; they never appear in exported artifacts.
func NewRunID() (string, error) {
	id, err := gonanoid.New(10)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("RUN-%s", id), nil
}

// NewReportID generates a healthcheck report id in format ENV-{nanoid(10)}.
func NewReportID() (string, error) {
	id, err := gonanoid.New(10)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ENV-%s", id), nil
}
