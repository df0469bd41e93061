package zhttp

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/valyala/bytebufferpool"
	"github.com/zgate/zhttp/matchstr"
)

// Content codings understood by SetBodyCompressed and BodyUncompressed.
const (
	EncodingIdentity = "identity"
	EncodingGzip     = "gzip"
	EncodingDeflate  = "deflate"
	EncodingBrotli   = "br"
	EncodingZstd     = "zstd"
)

var (
	gzipReaderPool   sync.Pool
	gzipWriterPool   sync.Pool
	zlibWriterPool   sync.Pool
	brotliReaderPool sync.Pool
	brotliWriterPool sync.Pool
	zstdDecoderPool  sync.Pool
	zstdEncoderPool  sync.Pool
)

// SetBodyCompressed replaces the body of m with its encoding-compressed
// form and appends a matching Content-Encoding field.
//
// The compressed body is owned by c. Identity leaves m untouched.
func (c *Codec) SetBodyCompressed(m Message, encoding string) error {
	if matchstr.Match(encoding, EncodingIdentity) {
		return nil
	}

	bb := AcquireByteBuffer()
	defer ReleaseByteBuffer(bb)

	if err := writeCompressed(bb, m.body(), encoding); err != nil {
		return err
	}
	m.setBody(c.arena.copy(bb.B))
	m.header().Add(strContentEncoding, encoding)
	return nil
}

// BodyUncompressed returns the body of m decoded according to its
// Content-Encoding field.
//
// The body is returned as is when there is no such field. The result is
// limited by MaxBodySize and owned by c.
func (c *Codec) BodyUncompressed(m Message) ([]byte, error) {
	encoding, ok := m.header().Lookup(strContentEncoding)
	body := m.body()
	if !ok || matchstr.Match(encoding, EncodingIdentity) || len(body) == 0 {
		return body, nil
	}

	bb := AcquireByteBuffer()
	defer ReleaseByteBuffer(bb)

	if err := writeUncompressed(bb, body, encoding, c.MaxBodySize); err != nil {
		return nil, err
	}
	return c.arena.copy(bb.B), nil
}

func writeCompressed(bb *bytebufferpool.ByteBuffer, p []byte, encoding string) error {
	switch {
	case matchstr.Match(encoding, EncodingGzip):
		zw := acquireGzipWriter(bb)
		_, err := zw.Write(p)
		if cerr := zw.Close(); err == nil {
			err = cerr
		}
		gzipWriterPool.Put(zw)
		return err
	case matchstr.Match(encoding, EncodingDeflate):
		zw := acquireZlibWriter(bb)
		_, err := zw.Write(p)
		if cerr := zw.Close(); err == nil {
			err = cerr
		}
		zlibWriterPool.Put(zw)
		return err
	case matchstr.Match(encoding, EncodingBrotli):
		bw := acquireBrotliWriter(bb)
		_, err := bw.Write(p)
		if cerr := bw.Close(); err == nil {
			err = cerr
		}
		brotliWriterPool.Put(bw)
		return err
	case matchstr.Match(encoding, EncodingZstd):
		enc, err := acquireZstdEncoder()
		if err != nil {
			return err
		}
		bb.B = enc.EncodeAll(p, bb.B)
		zstdEncoderPool.Put(enc)
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedEncoding, encoding)
}

func writeUncompressed(bb *bytebufferpool.ByteBuffer, p []byte, encoding string, maxBodySize int) error {
	src := bytes.NewReader(p)
	switch {
	case matchstr.Match(encoding, EncodingGzip):
		zr, err := acquireGzipReader(src)
		if err != nil {
			return err
		}
		err = copyLimited(bb, zr, maxBodySize)
		gzipReaderPool.Put(zr)
		return err
	case matchstr.Match(encoding, EncodingDeflate):
		zr, err := zlib.NewReader(src)
		if err != nil {
			return err
		}
		err = copyLimited(bb, zr, maxBodySize)
		zr.Close()
		return err
	case matchstr.Match(encoding, EncodingBrotli):
		br, err := acquireBrotliReader(src)
		if err != nil {
			return err
		}
		err = copyLimited(bb, br, maxBodySize)
		brotliReaderPool.Put(br)
		return err
	case matchstr.Match(encoding, EncodingZstd):
		zr, err := acquireZstdDecoder(src)
		if err != nil {
			return err
		}
		err = copyLimited(bb, zr, maxBodySize)
		zstdDecoderPool.Put(zr)
		return err
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedEncoding, encoding)
}

// copyLimited copies r to w, failing with ErrBodyTooLarge once more than
// maxBodySize bytes were produced. Zero maxBodySize means no limit.
func copyLimited(w io.Writer, r io.Reader, maxBodySize int) error {
	if maxBodySize <= 0 {
		_, err := io.Copy(w, r)
		return err
	}
	n, err := io.Copy(w, io.LimitReader(r, int64(maxBodySize)+1))
	if err != nil {
		return err
	}
	if n > int64(maxBodySize) {
		return ErrBodyTooLarge
	}
	return nil
}

func acquireGzipReader(r io.Reader) (*gzip.Reader, error) {
	v := gzipReaderPool.Get()
	if v == nil {
		return gzip.NewReader(r)
	}
	zr := v.(*gzip.Reader)
	if err := zr.Reset(r); err != nil {
		return nil, err
	}
	return zr, nil
}

func acquireGzipWriter(w io.Writer) *gzip.Writer {
	v := gzipWriterPool.Get()
	if v == nil {
		return gzip.NewWriter(w)
	}
	zw := v.(*gzip.Writer)
	zw.Reset(w)
	return zw
}

func acquireZlibWriter(w io.Writer) *zlib.Writer {
	v := zlibWriterPool.Get()
	if v == nil {
		return zlib.NewWriter(w)
	}
	zw := v.(*zlib.Writer)
	zw.Reset(w)
	return zw
}

func acquireBrotliReader(r io.Reader) (*brotli.Reader, error) {
	v := brotliReaderPool.Get()
	if v == nil {
		return brotli.NewReader(r), nil
	}
	br := v.(*brotli.Reader)
	if err := br.Reset(r); err != nil {
		return nil, err
	}
	return br, nil
}

func acquireBrotliWriter(w io.Writer) *brotli.Writer {
	v := brotliWriterPool.Get()
	if v == nil {
		return brotli.NewWriter(w)
	}
	bw := v.(*brotli.Writer)
	bw.Reset(w)
	return bw
}

func acquireZstdDecoder(r io.Reader) (*zstd.Decoder, error) {
	v := zstdDecoderPool.Get()
	if v == nil {
		return zstd.NewReader(r)
	}
	zr := v.(*zstd.Decoder)
	if err := zr.Reset(r); err != nil {
		return nil, err
	}
	return zr, nil
}

func acquireZstdEncoder() (*zstd.Encoder, error) {
	v := zstdEncoderPool.Get()
	if v == nil {
		return zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	}
	return v.(*zstd.Encoder), nil
}
