package zhttp

// Message is either a *Request or a *Response.
type Message interface {
	// AppendBytes appends the wire representation of the message to dst
	// and returns the extended dst.
	AppendBytes(dst []byte) []byte

	// String returns the wire representation of the message.
	String() string

	header() *HeaderList
	body() []byte
	setBody(b []byte)
	kind() string
}

// Request represents an HTTP request.
//
// A Request returned by Codec is owned by that Codec and stays valid
// until the Codec is reset or released.
type Request struct {
	// Method is the request method, e.g. "POST".
	Method string

	// Path is the request target exactly as written on the request line.
	Path string

	// Version is the protocol version without the "HTTP/" prefix, e.g. "1.1".
	Version string

	Header HeaderList

	// Body is nil when the request has no body.
	Body []byte
}

// Response represents an HTTP response.
//
// A Response returned by Codec is owned by that Codec and stays valid
// until the Codec is reset or released.
type Response struct {
	// Version is the protocol version without the "HTTP/" prefix, e.g. "1.1".
	Version string

	StatusCode int

	Header HeaderList

	// Body is nil when the response has no body.
	Body []byte
}

// AppendBytes appends the request line, header block and body to dst.
func (req *Request) AppendBytes(dst []byte) []byte {
	dst = appendRequestLine(dst, req.Method, req.Path, req.Version)
	return appendHeadersAndBody(dst, &req.Header, req.Body)
}

// String returns request representation.
func (req *Request) String() string {
	return string(req.AppendBytes(nil))
}

// Reset clears request contents.
func (req *Request) Reset() {
	req.Method = ""
	req.Path = ""
	req.Version = ""
	req.Header.Reset()
	req.Body = nil
}

func (req *Request) header() *HeaderList { return &req.Header }
func (req *Request) body() []byte        { return req.Body }
func (req *Request) setBody(b []byte)    { req.Body = b }
func (req *Request) kind() string        { return "request" }

// AppendBytes appends the status line, header block and body to dst.
func (resp *Response) AppendBytes(dst []byte) []byte {
	dst = appendStatusLine(dst, resp.Version, resp.StatusCode)
	return appendHeadersAndBody(dst, &resp.Header, resp.Body)
}

// String returns response representation.
func (resp *Response) String() string {
	return string(resp.AppendBytes(nil))
}

// Reset clears response contents.
func (resp *Response) Reset() {
	resp.Version = ""
	resp.StatusCode = 0
	resp.Header.Reset()
	resp.Body = nil
}

func (resp *Response) header() *HeaderList { return &resp.Header }
func (resp *Response) body() []byte        { return resp.Body }
func (resp *Response) setBody(b []byte)    { resp.Body = b }
func (resp *Response) kind() string        { return "response" }
