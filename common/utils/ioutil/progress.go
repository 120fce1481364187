package ioutil

import (
	"io"
)

var (
	_ io.Reader = (*ProgressReader)(nil)
	_ io.Writer = (*ProgressWriter)(nil)
)

// ProgressReader wraps an io.Reader and reports the running byte count
type ProgressReader struct {
	reader     io.Reader
	total      int64
	read       int64
	onProgress func(read int64, total int64)
}

func NewProgressReader(r io.Reader, total int64, onProgress func(read int64, total int64)) *ProgressReader {
	return &ProgressReader{
		reader:     r,
		total:      total,
		onProgress: onProgress,
	}
}

func (pr *ProgressReader) Read(p []byte) (int, error) {
	n, err := pr.reader.Read(p)
	if n > 0 {
		pr.read += int64(n)
		if pr.onProgress != nil {
			pr.onProgress(pr.read, pr.total)
		}
	}
	return n, err
}

// BytesRead returns the number of bytes read so far
func (pr *ProgressReader) BytesRead() int64 {
	return pr.read
}

type ProgressWriter struct {
	wr      io.Writer
	written int64
	onWrite func(written int64)
}

func (p *ProgressWriter) Write(buf []byte) (n int, err error) {
	n, err = p.wr.Write(buf)
	if n > 0 {
		p.written += int64(n)
		if p.onWrite != nil {
			p.onWrite(p.written)
		}
	}
	return
}

// NewProgressWriter calls onWrite with the total written after each write.
func NewProgressWriter(
	wr io.Writer,
	onWrite func(written int64),
) *ProgressWriter {
	return &ProgressWriter{
		wr:      wr,
		onWrite: onWrite,
	}
}
