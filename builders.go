package zhttp

import (
	"strconv"
	"strings"

	"github.com/valyala/bytebufferpool"
)

// maxErrorDescriptionLen bounds the reason phrase embedded in error bodies.
const maxErrorDescriptionLen = 50

// NewRequest returns a POST request for "/" over HTTP/1.1 carrying
// a User-Agent field with the codec product token.
//
// The request is owned by c.
func (c *Codec) NewRequest() *Request {
	req := c.newRequest()
	req.Method = strPost
	req.Path = strSlash
	req.Version = strHTTP11
	req.Header.Add(strUserAgent, c.name())
	return req
}

// NewRequestHostPath returns NewRequest with the given path and, when host
// is not empty, a Host field.
//
// host may be a full URL: a leading "<scheme>://" is stripped and
// everything from the first '/' after it is dropped.
func (c *Codec) NewRequestHostPath(host, path string) *Request {
	req := c.NewRequest()
	req.Path = path
	if host != "" {
		h, _, _ := splitHost(host)
		req.Header.Add(strHost, h)
	}
	return req
}

// NewRequestURI returns NewRequest addressed to uri.
//
// The host part of uri goes to the Host field and the text after the first
// '/' following the host becomes the path arguments. See NewRequestURIArgs
// for useFullURI.
func (c *Codec) NewRequestURI(uri string, useFullURI bool) *Request {
	_, _, args := splitHost(uri)
	return c.NewRequestURIArgs(uri, args, useFullURI)
}

// NewRequestURIArgs returns NewRequest addressed to the host of uri with
// path "/" + args.
//
// When useFullURI is set the path keeps everything in uri before the first
// '/' after the host, e.g. "http://host/" + args. The scheme is not
// stripped: the path is the absolute form expected by proxies relaying the
// request, not "host/" + args.
func (c *Codec) NewRequestURIArgs(uri, args string, useFullURI bool) *Request {
	req := c.NewRequest()
	host, prefix, _ := splitHost(uri)
	req.Header.Add(strHost, host)
	if useFullURI {
		req.Path = prefix + strSlash + args
	} else {
		req.Path = strSlash + args
	}
	return req
}

// splitHost splits uri into the host part, everything before the path
// (scheme and host) and the text after the '/' starting the path.
func splitHost(uri string) (host, prefix, rest string) {
	start := 0
	if n := strings.Index(uri, strColonSlash2); n >= 0 {
		start = n + len(strColonSlash2)
	}
	end := len(uri)
	if n := strings.IndexByte(uri[start:], '/'); n >= 0 {
		end = start + n
		rest = uri[end+1:]
	}
	return uri[start:end], uri[:end], rest
}

// NewResponse returns an HTTP/1.1 response with the given status code and
// a Server field with the codec product token.
//
// Responses with a code other than 200 get a short HTML body describing
// the error and a Content-Type field.
//
// The response is owned by c.
func (c *Codec) NewResponse(statusCode int) *Response {
	resp := c.newResponse()
	resp.Version = strHTTP11
	resp.StatusCode = statusCode
	resp.Header.Add(strServer, c.name())
	if statusCode != StatusOK {
		resp.Body = c.errorBody(statusCode)
		resp.Header.Add(strContentType, strTextHTML)
	}
	return resp
}

func (c *Codec) errorBody(statusCode int) []byte {
	bb := AcquireByteBuffer()
	defer ReleaseByteBuffer(bb)

	desc := StatusMessage(statusCode)
	if len(desc) > maxErrorDescriptionLen {
		desc = desc[:maxErrorDescriptionLen]
	}
	appendErrorBody(bb, c.name(), statusCode, desc)
	return c.arena.copy(bb.B)
}

func appendErrorBody(bb *bytebufferpool.ByteBuffer, name string, statusCode int, desc string) {
	bb.WriteString("<!DOCTYPE HTML PUBLIC \"-//W3C//DTD HTML 4.01//EN\"" +
		" \"http://www.w3.org/TR/html4/strict.dtd\">\n" +
		"<HTML>\n" +
		" <HEAD>\n" +
		"  <TITLE>")
	bb.WriteString(name)
	bb.WriteString("</TITLE>\n" +
		" </HEAD>\n" +
		" <BODY>\n" +
		"  <P>")
	bb.WriteString(name)
	bb.WriteString("</P>\n" +
		"  <P>Error: ")
	bb.B = strconv.AppendInt(bb.B, int64(statusCode), 10)
	bb.WriteString("</P>\n" +
		"  <P>Description: ")
	bb.WriteString(desc)
	bb.WriteString("</P>\n" +
		" </BODY>\n" +
		"</HTML>\n")
}
