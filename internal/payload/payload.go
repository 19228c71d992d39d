// file: internal/payload/payload.go

// Package payload builds the canonical byte representation of a request that
// both the admin's signer and this daemon sign/verify. The byte string is the
// contract: field order, method casing, and JSON escaping must all match the
// signer exactly or every signature will be rejected.
package payload

import (
	"errors"
	"strings"
	"unicode/utf8"

	json "github.com/goccy/go-json"
)

// ErrBodyNotUTF8 is returned when the request body is not valid UTF-8 text.
// The canonical payload embeds the body as a JSON string, so a non-UTF-8
// body has no canonical form.
var ErrBodyNotUTF8 = errors.New("request body is not valid UTF-8")

// canonicalRequest fixes the field order of the signed message. The signer
// serializes the same three fields in the same order; do not reorder.
type canonicalRequest struct {
	Method string `json:"method"`
	URI    string `json:"uri"`
	Body   string `json:"body"`
}

// Canonicalize produces the deterministic signed message for a request:
//
//	{"method":"<lower-cased verb>","uri":"<verbatim>","body":"<body text>"}
//
// HTML escaping is disabled so the output is byte-identical to the signer's
// serializer, which escapes only what JSON requires.
func Canonicalize(method, uri string, body []byte) ([]byte, error) {
	if !utf8.Valid(body) {
		return nil, ErrBodyNotUTF8
	}

	return json.MarshalWithOption(canonicalRequest{
		Method: strings.ToLower(method),
		URI:    uri,
		Body:   string(body),
	}, json.DisableHTMLEscape())
}
