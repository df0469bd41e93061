package zhttp

import (
	"encoding/base64"
	"iter"

	"github.com/zgate/zhttp/matchstr"
)

type headerKV struct {
	name  string
	value string
}

// HeaderList is an ordered list of HTTP header fields.
//
// Insertion order is preserved and determines the order fields are
// encoded in. Duplicate names are allowed; lookups see only the first one.
//
// HeaderList instance MUST NOT be used from concurrently running
// goroutines.
type HeaderList struct {
	h []headerKV
}

// Add appends the given header field to the end of the list.
func (h *HeaderList) Add(name, value string) {
	h.h = append(h.h, headerKV{name: name, value: value})
}

// Lookup returns the value of the first field whose name matches name.
//
// Names are compared with matchstr.Match, so the comparison is
// case-insensitive and ignores a single '-' per position.
func (h *HeaderList) Lookup(name string) (string, bool) {
	for i := range h.h {
		kv := &h.h[i]
		if matchstr.Match(kv.name, name) {
			return kv.value, true
		}
	}
	return "", false
}

// Has reports whether a field named name is present.
func (h *HeaderList) Has(name string) bool {
	_, ok := h.Lookup(name)
	return ok
}

// Len returns the number of fields in the list.
func (h *HeaderList) Len() int {
	return len(h.h)
}

// At returns the name and value of the i-th field.
func (h *HeaderList) At(i int) (name, value string) {
	kv := &h.h[i]
	return kv.name, kv.value
}

// All returns an iterator over all fields in insertion order.
//
// The list must not be modified while iterating.
func (h *HeaderList) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for i := range h.h {
			kv := &h.h[i]
			if !yield(kv.name, kv.value) {
				return
			}
		}
	}
}

// VisitAll calls f for each field in insertion order.
func (h *HeaderList) VisitAll(f func(name, value string)) {
	for name, value := range h.All() {
		f(name, value)
	}
}

// Reset clears the list, keeping the allocated storage.
func (h *HeaderList) Reset() {
	clear(h.h)
	h.h = h.h[:0]
}

// CopyTo copies all the fields to dst.
func (h *HeaderList) CopyTo(dst *HeaderList) {
	dst.h = append(dst.h[:0], h.h...)
}

// AddContentType appends a Content-Type field.
//
// An empty charset is left out of the value.
func (h *HeaderList) AddContentType(contentType, charset string) {
	if charset == "" {
		h.Add(strContentType, contentType)
		return
	}
	h.Add(strContentType, contentType+strCharset+charset)
}

// AddBasicAuth appends an Authorization field carrying HTTP Basic
// credentials as described in RFC 1945, section 11.1.
//
// Nothing is added when username is empty.
func (h *HeaderList) AddBasicAuth(username, password string) {
	if username == "" {
		return
	}
	h.Add(strAuthorization, strBasicSpace+base64.StdEncoding.EncodeToString([]byte(username+":"+password)))
}

// AppendBytes appends "Name: Value\r\n" lines for all fields to dst
// and returns the extended dst.
func (h *HeaderList) AppendBytes(dst []byte) []byte {
	for i := range h.h {
		kv := &h.h[i]
		dst = appendHeaderLine(dst, kv.name, kv.value)
	}
	return dst
}

// String returns the wire representation of the fields.
func (h *HeaderList) String() string {
	return string(h.AppendBytes(nil))
}

func appendHeaderLine(dst []byte, name, value string) []byte {
	dst = append(dst, name...)
	dst = append(dst, strColonSpace...)
	dst = append(dst, value...)
	return append(dst, strCRLF...)
}
