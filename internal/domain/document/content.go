package document

import "unicode/utf8"

// UnparsedPlaceholder is the text indexed for content that could not be decoded.
const UnparsedPlaceholder = "(binary file — not parsed)"

// Kind tells decoded text apart from content that failed to decode.
type Kind string

// Content kinds.
const (
	KindText     Kind = "text"
	KindUnparsed Kind = "unparsed"
)

// Content is the body of a document: either decoded text or an unparsed marker.
type Content struct {
	kind Kind
	text string
}

// Text wraps decoded document text.
func Text(s string) Content { return Content{kind: KindText, text: s} }

// Unparsed marks content whose bytes were not valid text.
func Unparsed() Content { return Content{kind: KindUnparsed} }

// Decode turns raw bytes into Text when they are valid UTF-8 and Unparsed otherwise.
func Decode(data []byte) Content {
	if !utf8.Valid(data) {
		return Unparsed()
	}
	return Text(string(data))
}

// Kind returns the content variant.
func (c Content) Kind() Kind {
	if c.kind == "" {
		return KindText
	}
	return c.kind
}

// IsUnparsed reports whether the content failed to decode.
func (c Content) IsUnparsed() bool { return c.kind == KindUnparsed }

// IndexText returns the text fed to the tokenizer and the snippet extractor.
// Unparsed content is indexed as a low-signal placeholder.
func (c Content) IndexText() string {
	if c.IsUnparsed() {
		return UnparsedPlaceholder
	}
	return c.text
}
