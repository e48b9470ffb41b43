package index

import "strings"

// SnippetLength is the maximum snippet length in characters.
const SnippetLength = 200

var newlineReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// Snippet returns the first SnippetLength characters of text with line
// breaks replaced by spaces.
func Snippet(text string) string {
	n := 0
	for i := range text {
		if n == SnippetLength {
			text = text[:i]
			break
		}
		n++
	}
	return newlineReplacer.Replace(text)
}
