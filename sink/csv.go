package sink

import (
	"encoding/csv"
	"io"
	"os"
)

// CSV writes one line of comma-separated words per record.
type CSV struct {
	w      *csv.Writer
	closer io.Closer
}

func NewCSV(w io.Writer) *CSV {
	return &CSV{w: csv.NewWriter(w)}
}

// CreateCSV truncates and writes to path, or to stdout if path is "-".
func CreateCSV(path string) (*CSV, error) {
	if path == "-" {
		return NewCSV(os.Stdout), nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	c := NewCSV(f)
	c.closer = f
	return c, nil
}

func (c *CSV) Write(r Record) error {
	return c.w.Write(r.Words)
}

func (c *CSV) Close() error {
	c.w.Flush()
	if err := c.w.Error(); err != nil {
		return err
	}
	if c.closer != nil {
		return c.closer.Close()
	}
	return nil
}

// Abort is Close: lines already written are kept, as in any log.
func (c *CSV) Abort() error {
	return c.Close()
}
