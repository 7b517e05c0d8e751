// Package testlog provides an in-memory logx.Logger for asserting on
// log output in tests.
package testlog

import (
	"sync"

	"dispatch-platform-go/internal/logx"
)

// Entry is a single captured log call.
type Entry struct {
	Level  string
	Msg    string
	Fields []logx.Field
}

// Recorder captures every entry written through loggers obtained from it.
// Safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

func New() *Recorder { return &Recorder{} }

// Logger returns a logx.Logger that writes into the recorder.
func (r *Recorder) Logger() logx.Logger { return scoped{rec: r} }

// Entries returns a snapshot of everything recorded so far.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}

func (r *Recorder) record(level, msg string, fields []logx.Field) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{
		Level:  level,
		Msg:    msg,
		Fields: append([]logx.Field(nil), fields...),
	})
}

// scoped is a view of the recorder carrying fields added via With.
type scoped struct {
	rec  *Recorder
	with []logx.Field
}

var _ logx.Logger = scoped{}

func (s scoped) Debug(msg string, f ...logx.Field) { s.emit("debug", msg, f) }
func (s scoped) Info(msg string, f ...logx.Field)  { s.emit("info", msg, f) }
func (s scoped) Warn(msg string, f ...logx.Field)  { s.emit("warn", msg, f) }
func (s scoped) Error(msg string, f ...logx.Field) { s.emit("error", msg, f) }

func (s scoped) emit(level, msg string, f []logx.Field) {
	all := make([]logx.Field, 0, len(s.with)+len(f))
	all = append(all, s.with...)
	all = append(all, f...)
	s.rec.record(level, msg, all)
}

func (s scoped) With(f ...logx.Field) logx.Logger {
	next := make([]logx.Field, 0, len(s.with)+len(f))
	next = append(next, s.with...)
	next = append(next, f...)
	return scoped{rec: s.rec, with: next}
}

func (s scoped) Sync() error { return nil }
