package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"
)

// Calculator computes document checksums.
type Calculator interface {
	// CalculateRaw hashes the exact content.
	CalculateRaw(content []byte) string

	// Calculate hashes the normalized content.
	Calculate(content []byte) string
}

// SHA256 is a zero-size Calculator using SHA-256.
type SHA256 struct{}

func New() SHA256 {
	return SHA256{}
}

func (c SHA256) CalculateRaw(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

func (c SHA256) Calculate(content []byte) string {
	hash := sha256.Sum256([]byte(Normalize(string(content))))
	return hex.EncodeToString(hash[:])
}

type scanState int

const (
	ssText scanState = iota
	ssComment
	ssCData
)

// Normalize removes comments, drops whitespace between tags and collapses
// other whitespace runs to one space.
func Normalize(content string) string {
	var b strings.Builder
	b.Grow(len(content))

	state := ssText
	pendingSpace := false
	i := 0
	for i < len(content) {
		rest := content[i:]
		switch state {
		case ssText:
			switch {
			case strings.HasPrefix(rest, "<!--"):
				state = ssComment
				i += 4
			case strings.HasPrefix(rest, "<![CDATA["):
				if pendingSpace && b.Len() > 0 && !endsWithTag(&b) {
					b.WriteByte(' ')
				}
				pendingSpace = false
				state = ssCData
				b.WriteString("<![CDATA[")
				i += 9
			default:
				r := rune(content[i])
				if unicode.IsSpace(r) {
					pendingSpace = true
					i++
					continue
				}
				if pendingSpace && b.Len() > 0 && r != '<' && !endsWithTag(&b) {
					b.WriteByte(' ')
				}
				pendingSpace = false
				b.WriteByte(content[i])
				i++
			}

		case ssComment:
			if strings.HasPrefix(rest, "-->") {
				state = ssText
				i += 3
			} else {
				i++
			}

		case ssCData:
			if strings.HasPrefix(rest, "]]>") {
				b.WriteString("]]>")
				state = ssText
				i += 3
			} else {
				b.WriteByte(content[i])
				i++
			}
		}
	}
	return b.String()
}

func endsWithTag(b *strings.Builder) bool {
	s := b.String()
	return len(s) > 0 && s[len(s)-1] == '>'
}
