package zhttp

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestCodecResponseRoundTrip(t *testing.T) {
	t.Parallel()

	testCodecResponseRoundTrip(t, nil, nil)
	testCodecResponseRoundTrip(t, []string{"Content-Type", "text/xml"}, []byte("<searchRetrieveResponse/>"))
	testCodecResponseRoundTrip(t, []string{"X-A", "1", "X-B", "2", "X-A", "3"}, []byte("body\r\n\r\nwith blank lines"))
	testCodecResponseRoundTrip(t, []string{"X-Empty", ""}, []byte{0, 1, 2, 255})
}

func testCodecResponseRoundTrip(t *testing.T, fields []string, body []byte) {
	t.Helper()

	var c Codec
	resp := &Response{Version: "1.1", StatusCode: 200, Body: body}
	for i := 0; i < len(fields); i += 2 {
		resp.Header.Add(fields[i], fields[i+1])
	}
	b := c.Encode(resp)

	var c1 Codec
	resp1, err := c1.DecodeResponse(b)
	if err != nil {
		t.Fatalf("Unexpected error when decoding %q: %v", b, err)
	}
	if resp1.Version != "1.1" || resp1.StatusCode != 200 {
		t.Fatalf("Unexpected status line %q %d", resp1.Version, resp1.StatusCode)
	}
	// The synthesized Content-Length comes first.
	if resp1.Header.Len() != len(fields)/2+1 {
		t.Fatalf("Unexpected number of fields %d. Expected %d", resp1.Header.Len(), len(fields)/2+1)
	}
	name, value := resp1.Header.At(0)
	if name != "Content-Length" || value != fmt.Sprint(len(body)) {
		t.Fatalf("Unexpected first field %q: %q", name, value)
	}
	for i := 0; i < len(fields); i += 2 {
		name, value := resp1.Header.At(i/2 + 1)
		if name != fields[i] || value != fields[i+1] {
			t.Fatalf("Unexpected field %q: %q. Expected %q: %q", name, value, fields[i], fields[i+1])
		}
	}
	if string(resp1.Body) != string(body) {
		t.Fatalf("Unexpected body %q. Expected %q", resp1.Body, body)
	}
}

func TestCodecRequestRoundTrip(t *testing.T) {
	t.Parallel()

	c := AcquireCodec()
	defer ReleaseCodec(c)

	req := c.NewRequestURI("http://example.com/sru", false)
	req.Header.AddContentType("text/xml", "UTF-8")
	req.Body = []byte("<searchRetrieveRequest/>")
	b := c.Encode(req)

	req1, err := c.DecodeRequest(append([]byte(nil), b...))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if req1.Method != "POST" || req1.Path != "/sru" || req1.Version != "1.1" {
		t.Fatalf("Unexpected request line %q %q %q", req1.Method, req1.Path, req1.Version)
	}
	if v, _ := req1.Header.Lookup("Host"); v != "example.com" {
		t.Fatalf("Unexpected Host %q", v)
	}
	if v, _ := req1.Header.Lookup("Content-Length"); v != "24" {
		t.Fatalf("Unexpected Content-Length %q", v)
	}
	if string(req1.Body) != "<searchRetrieveRequest/>" {
		t.Fatalf("Unexpected body %q", req1.Body)
	}
}

func TestCodecDecodeDispatch(t *testing.T) {
	t.Parallel()

	var c Codec
	m, err := c.Decode([]byte("HTTP/1.1 404 Not Found\r\n\r\n"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	resp, ok := m.(*Response)
	if !ok {
		t.Fatalf("Expecting *Response, got %T", m)
	}
	if resp.StatusCode != 404 {
		t.Fatalf("Unexpected status code %d", resp.StatusCode)
	}

	m, err = c.Decode([]byte("GET /x HTTP/1.1\r\nHost: a\r\n\r\n"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	req, ok := m.(*Request)
	if !ok {
		t.Fatalf("Expecting *Request, got %T", m)
	}
	if req.Method != "GET" || req.Path != "/x" {
		t.Fatalf("Unexpected request line %q %q", req.Method, req.Path)
	}
	if req.Body != nil {
		t.Fatalf("Expecting nil body, got %q", req.Body)
	}

	m, err = c.Decode([]byte("HTTP/1.1"))
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("Unexpected error: %v. Expecting ErrMalformed", err)
	}
	if m != nil {
		t.Fatalf("Expecting nil message, got %T", m)
	}
}

func TestCodecDecodeHugeChunkSize(t *testing.T) {
	t.Parallel()

	var c Codec
	for _, size := range []string{"7fffffffffffffff", "7ffffffffffffffe", "7ffffffffffffffd;ext"} {
		buf := "HTTP/1.1 200 OK\r\nTransfer-Encoding: chunked\r\n\r\n" + size + "\r\nabc\r\n0\r\n\r\n"
		resp, err := c.DecodeResponse([]byte(buf))
		if !errors.Is(err, ErrMalformed) {
			t.Fatalf("Unexpected error %v for chunk size %q. Expected ErrMalformed", err, size)
		}
		if resp != nil {
			t.Fatalf("Expecting nil response for chunk size %q", size)
		}
	}
}

func TestCodecErrorSlot(t *testing.T) {
	t.Parallel()

	var c Codec
	if c.Err() != nil {
		t.Fatalf("Unexpected error in fresh codec: %v", c.Err())
	}

	req, err := c.DecodeRequest([]byte(strings.Repeat("X", 45)))
	if req != nil {
		t.Fatalf("Expecting nil request on failure")
	}
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("Unexpected error %v. Expected ErrMalformed", err)
	}
	if c.Err() != err {
		t.Fatalf("Error slot must hold the last decode error, got %v", c.Err())
	}

	// A later success keeps the slot until Reset.
	if _, err := c.DecodeResponse([]byte("HTTP/1.1 200 OK\r\n\r\n")); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if c.Err() == nil {
		t.Fatalf("Error slot must be kept until Reset")
	}
	c.Reset()
	if c.Err() != nil {
		t.Fatalf("Error slot must be cleared by Reset")
	}
}

func TestCodecDecodeCopiesInput(t *testing.T) {
	t.Parallel()

	var c Codec
	buf := []byte("PUT /a HTTP/1.1\r\nHost: h\r\n\r\nbody")
	req, err := c.DecodeRequest(buf)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for i := range buf {
		buf[i] = 'x'
	}
	if req.Method != "PUT" || req.Path != "/a" || req.Version != "1.1" {
		t.Fatalf("Request line must not alias the input: %q %q %q", req.Method, req.Path, req.Version)
	}
	if v, _ := req.Header.Lookup("Host"); v != "h" {
		t.Fatalf("Header must not alias the input: %q", v)
	}
	if string(req.Body) != "body" {
		t.Fatalf("Body must not alias the input: %q", req.Body)
	}
}

func TestCodecResetRecyclesMessages(t *testing.T) {
	t.Parallel()

	var c Codec
	req := c.NewRequest()
	resp := c.NewResponse(404)
	c.Encode(req)
	c.Encode(resp)
	if len(c.Bytes()) == 0 {
		t.Fatalf("Expecting encoded output")
	}

	c.Reset()
	if len(c.Bytes()) != 0 {
		t.Fatalf("Output must be empty after Reset")
	}
	if req.Header.Len() != 0 || resp.Body != nil {
		t.Fatalf("Messages must be cleared by Reset")
	}
	if req1 := c.NewRequest(); req1 != req {
		t.Fatalf("Expecting request to be reused after Reset")
	}
	if resp1 := c.NewResponse(200); resp1 != resp {
		t.Fatalf("Expecting response to be reused after Reset")
	}
}

func TestCodecEncodeAppends(t *testing.T) {
	t.Parallel()

	var c Codec
	b1 := c.Encode(&Response{Version: "1.1", StatusCode: 200})
	b2 := c.Encode(&Request{Method: "GET", Path: "/", Version: "1.0"})
	if string(b1) != "HTTP/1.1 200 OK\r\nContent-Length: 0\r\n\r\n" {
		t.Fatalf("Unexpected response %q", b1)
	}
	if string(b2) != "GET / HTTP/1.0\r\nContent-Length: 0\r\n\r\n" {
		t.Fatalf("Unexpected request %q", b2)
	}
	if string(c.Bytes()) != string(b1)+string(b2) {
		t.Fatalf("Unexpected output %q", c.Bytes())
	}
}

type testLogger struct {
	lines []string
}

func (l *testLogger) Printf(format string, args ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func TestCodecEncodeLogger(t *testing.T) {
	t.Parallel()

	l := &testLogger{}
	c := &Codec{Logger: l}
	c.Encode(&Response{Version: "1.1", StatusCode: 200})
	c.Encode(&Request{Method: "GET", Path: "/", Version: "1.1"})
	if _, err := c.DecodeRequest([]byte("bad")); err == nil {
		t.Fatalf("Expecting error")
	}

	if len(l.lines) != 2 {
		t.Fatalf("Unexpected number of log lines %d. Expected 2", len(l.lines))
	}
	if !strings.HasPrefix(l.lines[0], "-- HTTP response:\nHTTP/1.1 200 OK\r\n") {
		t.Fatalf("Unexpected log line %q", l.lines[0])
	}
	if !strings.HasPrefix(l.lines[1], "-- HTTP request:\nGET / HTTP/1.1\r\n") {
		t.Fatalf("Unexpected log line %q", l.lines[1])
	}
}

func TestAcquireReleaseCodec(t *testing.T) {
	t.Parallel()

	c := AcquireCodec()
	c.Name = "test/1"
	c.MaxBodySize = 10
	resp := c.NewResponse(200)
	if v, _ := resp.Header.Lookup("Server"); v != "test/1" {
		t.Fatalf("Unexpected Server %q", v)
	}
	ReleaseCodec(c)

	c = AcquireCodec()
	defer ReleaseCodec(c)
	if c.Name != "" || c.MaxBodySize != 0 || c.Logger != nil {
		t.Fatalf("Acquired codec must have default settings")
	}
}
