package zhttp

var (
	strCRLF        = []byte("\r\n")
	strHTTP        = []byte("HTTP/")
	strColonSpace  = []byte(": ")
	strSpace       = []byte(" ")
	strColonSlash2 = "://"

	strPost   = "POST"
	strSlash  = "/"
	strHTTP11 = "1.1"

	strAuthorization    = "Authorization"
	strContentEncoding  = "Content-Encoding"
	strContentLength    = "Content-Length"
	strContentType      = "Content-Type"
	strHost             = "Host"
	strServer           = "Server"
	strTransferEncoding = "Transfer-Encoding"
	strUserAgent        = "User-Agent"

	strChunked    = "chunked"
	strTextHTML   = "text/html"
	strBasicSpace = "Basic "
	strCharset    = "; charset="
)
