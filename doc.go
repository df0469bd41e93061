/*
Package zhttp provides the HTTP message layer of a retrieval-protocol gateway.

It lets a binary search/retrieval protocol stack also carry HTTP
request/response pairs over the same transport:

  - Codec parses a complete raw buffer into a Request or Response
    (first line, ordered header fields, body) and encodes messages back
    into wire bytes. Chunked transfer-coding is decoded; Content-Length
    is synthesized on encode.
  - The parser is single-pass and bounds-checked: it never reads past
    the declared buffer length and fails with ErrMalformed instead.
  - Builders create outbound requests and responses with default
    fields, Host and path taken from URLs, Content-Type and Basic
    authorization helpers.
  - MessageLength and ReadMessage find message boundaries for
    transports that must hand Codec exactly one complete message.
  - Bodies may be compressed and decompressed with gzip, deflate,
    brotli and zstd content codings.

Every message, string and body returned by a Codec is owned by it and is
recycled as a unit by Codec.Reset or ReleaseCodec. Keep-alive handling,
chunk trailers and TLS are left to the transport.
*/
package zhttp
