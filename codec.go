package zhttp

import (
	"sync"

	"github.com/valyala/bytebufferpool"
)

// Version is the version of this package, used in the default product
// token.
const Version = "1.0.0"

const defaultName = "zhttp/" + Version

// Logger is used for logging formatted messages.
type Logger interface {
	// Printf must have the same semantics as log.Printf.
	Printf(format string, args ...any)
}

// Codec decodes and encodes HTTP messages.
//
// A Codec owns everything it returns: decoded and built messages, their
// bodies and the encoded output stay valid until Reset or ReleaseCodec
// is called, and are then recycled as a unit. Nothing is freed piecemeal.
//
// It is forbidden copying Codec instances. Create new instances
// or use AcquireCodec instead.
//
// Codec instance MUST NOT be used from concurrently running goroutines.
// Give each connection or request its own Codec.
type Codec struct {
	noCopy noCopy

	// Name is the product token sent in User-Agent and Server fields
	// of built messages.
	//
	// Default name is used if not set.
	Name string

	// Logger, if set, receives the wire text of every encoded message.
	//
	// Decoding never logs.
	Logger Logger

	// MaxBodySize limits the size of bodies produced by BodyUncompressed.
	//
	// Zero means no limit.
	MaxBodySize int

	in    cursor
	out   bytebufferpool.ByteBuffer
	arena arena
	err   error

	reqs  []*Request
	nreq  int
	resps []*Response
	nresp int
}

type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

var codecPool sync.Pool

// AcquireCodec returns an empty Codec instance from the pool.
//
// The returned Codec may be returned to the pool with ReleaseCodec when no
// longer needed. This allows reducing GC load.
func AcquireCodec() *Codec {
	v := codecPool.Get()
	if v == nil {
		return &Codec{}
	}
	return v.(*Codec)
}

// ReleaseCodec returns the Codec acquired via AcquireCodec to the pool.
//
// Do not access the released Codec instance or any message, body or output
// obtained from it, otherwise data races may occur.
func ReleaseCodec(c *Codec) {
	c.Reset()
	c.Name = ""
	c.Logger = nil
	c.MaxBodySize = 0
	codecPool.Put(c)
}

// Reset clears the input, the output, the error slot and recycles every
// message previously returned by c.
func (c *Codec) Reset() {
	c.in = cursor{}
	c.out.Reset()
	c.arena.reset()
	c.err = nil
	for _, req := range c.reqs[:c.nreq] {
		req.Reset()
	}
	c.nreq = 0
	for _, resp := range c.resps[:c.nresp] {
		resp.Reset()
	}
	c.nresp = 0
}

// Err returns the error of the last failed decode, or nil.
func (c *Codec) Err() error {
	return c.err
}

// Bytes returns everything encoded since the last Reset.
//
// The returned slice is valid until the next Reset.
func (c *Codec) Bytes() []byte {
	return c.out.B
}

func (c *Codec) name() string {
	if c.Name == "" {
		return defaultName
	}
	return c.Name
}

func (c *Codec) newRequest() *Request {
	if c.nreq < len(c.reqs) {
		req := c.reqs[c.nreq]
		c.nreq++
		return req
	}
	req := &Request{}
	c.reqs = append(c.reqs, req)
	c.nreq++
	return req
}

func (c *Codec) newResponse() *Response {
	if c.nresp < len(c.resps) {
		resp := c.resps[c.nresp]
		c.nresp++
		return resp
	}
	resp := &Response{}
	c.resps = append(c.resps, resp)
	c.nresp++
	return resp
}

// DecodeRequest parses buf as a single complete HTTP request.
//
// buf must hold exactly one message: the body is everything after the
// header block unless the request is chunked. All strings and the body of
// the returned request are copies, so buf may be reused right away.
//
// On failure the returned error wraps ErrMalformed and is also stored
// in the error slot returned by Err.
func (c *Codec) DecodeRequest(buf []byte) (*Request, error) {
	c.in = cursor{b: buf}
	req, err := c.decodeRequest()
	c.in = cursor{}
	if err != nil {
		c.err = err
		return nil, err
	}
	return req, nil
}

// DecodeResponse parses buf as a single complete HTTP response.
//
// See DecodeRequest for buffer and error semantics.
func (c *Codec) DecodeResponse(buf []byte) (*Response, error) {
	c.in = cursor{b: buf}
	resp, err := c.decodeResponse()
	c.in = cursor{}
	if err != nil {
		c.err = err
		return nil, err
	}
	return resp, nil
}

// Decode parses buf as a response if it starts with "HTTP/", and as a
// request otherwise.
func (c *Codec) Decode(buf []byte) (Message, error) {
	in := cursor{b: buf}
	if in.hasPrefix(0, strHTTP) {
		resp, err := c.DecodeResponse(buf)
		if err != nil {
			return nil, err
		}
		return resp, nil
	}
	req, err := c.DecodeRequest(buf)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (c *Codec) decodeRequest() (*Request, error) {
	method, path, version, off, err := decodeRequestLine(&c.in)
	if err != nil {
		return nil, err
	}
	req := c.newRequest()
	req.Method = method
	req.Path = path
	req.Version = version
	req.Body, err = decodeHeadersAndBody(&c.in, off, &req.Header, &c.arena)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (c *Codec) decodeResponse() (*Response, error) {
	version, statusCode, off, err := decodeStatusLine(&c.in)
	if err != nil {
		return nil, err
	}
	resp := c.newResponse()
	resp.Version = version
	resp.StatusCode = statusCode
	resp.Body, err = decodeHeadersAndBody(&c.in, off, &resp.Header, &c.arena)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Encode appends the wire representation of m to the output buffer and
// returns the bytes written for m.
//
// Encode never fails: m is assumed to be structurally valid, e.g. built
// with the New* methods of c.
func (c *Codec) Encode(m Message) []byte {
	start := len(c.out.B)
	c.out.B = m.AppendBytes(c.out.B)
	b := c.out.B[start:]
	if c.Logger != nil {
		c.Logger.Printf("-- HTTP %s:\n%s\n-- ", m.kind(), b)
	}
	return b
}
