// Package sink writes expanded solutions somewhere: a CSV log, a SQLite
// table or a NATS subject.
package sink

import (
	"errors"
	"strings"
	"sync"
)

// Record is one literal tuple of words and the symbols its search skipped.
type Record struct {
	Words   []string
	Skipped string
}

// Line is the record as a comma-joined line of words.
func (r Record) Line() string {
	return strings.Join(r.Words, ",")
}

// Sink accepts records in order. Close flushes anything buffered and
// finishes the output; Abort releases the sink after a failed run, discarding
// what the sink is able to discard.
type Sink interface {
	Write(r Record) error
	Close() error
	Abort() error
}

// Finish closes s after a successful run and aborts it after a failed one.
// It returns runErr joined with any error from closing.
func Finish(s Sink, runErr error) error {
	if runErr != nil {
		return errors.Join(runErr, s.Abort())
	}
	return s.Close()
}

// Collector keeps records in memory.
type Collector struct {
	sync.Mutex
	Records []Record
}

func (c *Collector) Write(r Record) error {
	c.Lock()
	defer c.Unlock()
	c.Records = append(c.Records, r)
	return nil
}

func (c *Collector) Close() error {
	return nil
}

func (c *Collector) Abort() error {
	return nil
}

// Lines returns every collected record as a line.
func (c *Collector) Lines() []string {
	c.Lock()
	defer c.Unlock()
	lines := make([]string, len(c.Records))
	for i, r := range c.Records {
		lines[i] = r.Line()
	}
	return lines
}

type tee []Sink

// Tee writes every record to each sink in turn. Close closes them all and
// returns the first error.
func Tee(sinks ...Sink) Sink {
	return tee(sinks)
}

func (t tee) Write(r Record) error {
	for _, s := range t {
		if err := s.Write(r); err != nil {
			return err
		}
	}
	return nil
}

func (t tee) Close() error {
	var first error
	for _, s := range t {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (t tee) Abort() error {
	var first error
	for _, s := range t {
		if err := s.Abort(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
