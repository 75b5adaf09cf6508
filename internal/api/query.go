package api

import (
	"net/url"
	"strings"
)

// Param is one query parameter. Order is preserved on encoding, unlike
// url.Values which sorts by key.
type Param struct {
	Key   string
	Value string
}

// EscapeComponent percent-encodes s so that it is safe anywhere in a query
// string. Spaces become %20 and every reserved character is escaped.
func EscapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// EncodeQuery renders params as "k1=v1&k2=v2" in the given order.
func EncodeQuery(params ...Param) string {
	var b strings.Builder
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(EscapeComponent(p.Key))
		b.WriteByte('=')
		b.WriteString(EscapeComponent(p.Value))
	}
	return b.String()
}

// WithQuery appends the encoded params to path.
func WithQuery(path string, params ...Param) string {
	if len(params) == 0 {
		return path
	}
	return path + "?" + EncodeQuery(params...)
}
