package extract

import (
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// ConvertToUTF8 normalizes content to UTF-8 based on the detected source
// encoding. Content that is already UTF-8 passes through unchanged.
func ConvertToUTF8(content []byte) ([]byte, error) {
	name := DetectEncoding(content)
	if name == "" || strings.EqualFold(name, "utf-8") {
		return content, nil
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return content, nil
	}

	reader := transform.NewReader(bytes.NewReader(content), enc.NewDecoder())
	converted, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	return converted, nil
}

// DetectEncoding detects the character encoding of the content, preferring a
// charset declared in an HTML meta tag over byte-level detection. Valid
// UTF-8 without a declaration is reported as utf-8; byte-level detection
// otherwise falls back to windows-1252 per the HTML spec, which would mangle
// undeclared UTF-8 payloads.
func DetectEncoding(content []byte) string {
	head := string(content[:min(1024, len(content))])
	if enc := charsetFromMeta(head); enc != "" {
		return enc
	}
	if utf8.Valid(content) {
		return "utf-8"
	}

	_, name, _ := charset.DetermineEncoding(content, "")
	return name
}

// charsetFromMeta extracts a charset declaration from the leading HTML.
func charsetFromMeta(head string) string {
	head = strings.ToLower(head)
	idx := strings.Index(head, "charset=")
	if idx == -1 {
		return ""
	}

	start := idx + len("charset=")
	if start < len(head) && (head[start] == '"' || head[start] == '\'') {
		start++
	}
	end := start
	for ; end < len(head); end++ {
		c := head[end]
		if c == '"' || c == '\'' || c == ';' || c == '>' || c == ' ' {
			break
		}
	}
	if end <= start {
		return ""
	}
	return strings.TrimSpace(head[start:end])
}
