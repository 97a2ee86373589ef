package elog

import "sync/atomic"

// Facade: global access (Singleton + Facade). The global is a convenience
// for application code; libraries should hold a *Pipeline explicitly.
var global atomic.Pointer[Pipeline]

// SetGlobal sets the global Pipeline (Singleton setter).
func SetGlobal(p *Pipeline) { global.Store(p) }

// L returns the global Pipeline; panic if unset to surface misconfig early.
func L() *Pipeline {
	p := global.Load()
	if p == nil {
		panic("elog: global pipeline not set. Build one and call elog.SetGlobal(...)")
	}
	return p
}

// Per-level helpers. Each only shapes an Event and calls Emit; they return
// the pipeline for chaining.

func (p *Pipeline) Verbose(msg string) *Pipeline { return p.emitMsg(LevelVerbose, msg) }
func (p *Pipeline) Debug(msg string) *Pipeline   { return p.emitMsg(LevelDebug, msg) }
func (p *Pipeline) Info(msg string) *Pipeline    { return p.emitMsg(LevelInfo, msg) }
func (p *Pipeline) Warn(msg string) *Pipeline    { return p.emitMsg(LevelWarn, msg) }
func (p *Pipeline) Error(msg string) *Pipeline   { return p.emitMsg(LevelError, msg) }
func (p *Pipeline) Assert(msg string) *Pipeline  { return p.emitMsg(LevelAssert, msg) }

func (p *Pipeline) VerboseErr(err error) *Pipeline { return p.emitErr(LevelVerbose, err) }
func (p *Pipeline) DebugErr(err error) *Pipeline   { return p.emitErr(LevelDebug, err) }
func (p *Pipeline) InfoErr(err error) *Pipeline    { return p.emitErr(LevelInfo, err) }
func (p *Pipeline) WarnErr(err error) *Pipeline    { return p.emitErr(LevelWarn, err) }
func (p *Pipeline) ErrorErr(err error) *Pipeline   { return p.emitErr(LevelError, err) }
func (p *Pipeline) AssertErr(err error) *Pipeline  { return p.emitErr(LevelAssert, err) }

// From emits msg tagged with the simple type name of src.
func (p *Pipeline) From(level Level, src any, msg string) *Pipeline {
	p.Emit(Event{Level: level, Tag: TagOf(src), Message: msg})
	return p
}

func (p *Pipeline) emitMsg(level Level, msg string) *Pipeline {
	p.Emit(Event{Level: level, Message: msg})
	return p
}

func (p *Pipeline) emitErr(level Level, err error) *Pipeline {
	p.Emit(Event{Level: level, Err: err})
	return p
}

// Package-level helpers over the global pipeline.
// Usage: elog.Info("listening")

func Verbose(msg string) *Pipeline { return L().Verbose(msg) }
func Debug(msg string) *Pipeline   { return L().Debug(msg) }
func Info(msg string) *Pipeline    { return L().Info(msg) }
func Warn(msg string) *Pipeline    { return L().Warn(msg) }
func Error(msg string) *Pipeline   { return L().Error(msg) }
func Assert(msg string) *Pipeline  { return L().Assert(msg) }

func VerboseErr(err error) *Pipeline { return L().VerboseErr(err) }
func DebugErr(err error) *Pipeline   { return L().DebugErr(err) }
func InfoErr(err error) *Pipeline    { return L().InfoErr(err) }
func WarnErr(err error) *Pipeline    { return L().WarnErr(err) }
func ErrorErr(err error) *Pipeline   { return L().ErrorErr(err) }
func AssertErr(err error) *Pipeline  { return L().AssertErr(err) }

// Emit dispatches ev through the global pipeline.
func Emit(ev Event) { L().Emit(ev) }
