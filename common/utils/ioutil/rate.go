package ioutil

import (
	"context"
	"io"

	"golang.org/x/time/rate"
)

type rateLimitedReader struct {
	ctx     context.Context
	reader  io.Reader
	limiter *rate.Limiter
}

// NewRateLimitedReader throttles r with limiter. A nil limiter returns r.
func NewRateLimitedReader(ctx context.Context, r io.Reader, limiter *rate.Limiter) io.Reader {
	if limiter == nil {
		return r
	}
	return &rateLimitedReader{ctx: ctx, reader: r, limiter: limiter}
}

func (r *rateLimitedReader) Read(p []byte) (int, error) {
	if b := r.limiter.Burst(); len(p) > b {
		p = p[:b]
	}
	n, err := r.reader.Read(p)
	if n > 0 {
		if werr := r.limiter.WaitN(r.ctx, n); werr != nil {
			return n, werr
		}
	}
	return n, err
}
