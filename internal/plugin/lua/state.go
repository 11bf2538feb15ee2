package lua

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultExecutionTimeout bounds one top-level script run or call.
const DefaultExecutionTimeout = 5 * time.Second

// State wraps a gopher-lua state with only the safe standard libraries
// opened.
//
// A State is not safe for concurrent use, like the editor it scripts.
// Calls may nest: a Go function invoked from Lua may call back into Lua
// through the same State, and the outermost call's timeout covers both.
type State struct {
	L *lua.LState

	executionTimeout time.Duration
	output           io.Writer
	logger           *slog.Logger

	closed bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithExecutionTimeout sets how long a top-level call may run. Zero
// disables the limit.
func WithExecutionTimeout(d time.Duration) StateOption {
	return func(s *State) {
		s.executionTimeout = d
	}
}

// WithOutput sets where the script's print writes.
func WithOutput(w io.Writer) StateOption {
	return func(s *State) {
		s.output = w
	}
}

// WithLogger sets the logger for script diagnostics.
func WithLogger(l *slog.Logger) StateOption {
	return func(s *State) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewState creates a sandboxed Lua state.
func NewState(opts ...StateOption) *State {
	s := &State{
		executionTimeout: DefaultExecutionTimeout,
		output:           os.Stdout,
		logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(s.L)
	s.sandbox()
	return s
}

// openSafeLibraries opens base, table, string and math. io, os, debug
// and package stay closed. Each opener leaves its module table on the
// stack; they are popped so a fresh state starts empty.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	L.Pop(L.GetTop())
}

// sandbox removes the base functions that reach the file system or load
// code, and routes print to the configured output.
func (s *State) sandbox() {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		s.L.SetGlobal(name, lua.LNil)
	}
	s.L.SetGlobal("print", s.L.NewFunction(s.print))
}

func (s *State) print(L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, n)
	for i := 1; i <= n; i++ {
		parts[i-1] = L.ToStringMeta(L.Get(i)).String()
	}
	fmt.Fprintln(s.output, strings.Join(parts, "\t"))
	return 0
}

// DoString runs a chunk of Lua code.
func (s *State) DoString(code string) error {
	return s.run(func() error {
		return s.L.DoString(code)
	})
}

// DoFile runs the Lua file at path. The file is read by the host, so
// scripts themselves still cannot open files.
func (s *State) DoFile(path string) error {
	return s.run(func() error {
		return s.L.DoFile(path)
	})
}

// Call calls fn with args and returns nret results.
func (s *State) Call(fn lua.LValue, nret int, args ...lua.LValue) ([]lua.LValue, error) {
	if fn.Type() != lua.LTFunction {
		return nil, fmt.Errorf("%w: got %s", ErrNotFunction, fn.Type())
	}
	var results []lua.LValue
	err := s.run(func() error {
		if err := s.L.CallByParam(lua.P{Fn: fn, NRet: nret, Protect: true}, args...); err != nil {
			return err
		}
		results = make([]lua.LValue, nret)
		for i := 0; i < nret; i++ {
			results[i] = s.L.Get(-nret + i)
		}
		s.L.Pop(nret)
		return nil
	})
	return results, err
}

// CallGlobal calls the global function name.
func (s *State) CallGlobal(name string, nret int, args ...lua.LValue) ([]lua.LValue, error) {
	if s.closed {
		return nil, ErrStateClosed
	}
	fn := s.L.GetGlobal(name)
	if fn.Type() != lua.LTFunction {
		return nil, fmt.Errorf("%w: %s", ErrNotFunction, name)
	}
	return s.Call(fn, nret, args...)
}

// run executes fn with panic recovery and, for a top-level call, the
// execution timeout.
func (s *State) run(fn func() error) error {
	if s.closed {
		return ErrStateClosed
	}
	if s.L.Context() != nil || s.executionTimeout <= 0 {
		return protect(fn)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.executionTimeout)
	defer cancel()
	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	err := protect(fn)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w after %s", ErrExecutionTimeout, s.executionTimeout)
	}
	return err
}

func protect(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// GetGlobal returns a global variable value.
func (s *State) GetGlobal(name string) lua.LValue {
	if s.closed {
		return lua.LNil
	}
	return s.L.GetGlobal(name)
}

// SetGlobal sets a global variable.
func (s *State) SetGlobal(name string, value lua.LValue) {
	if s.closed {
		return
	}
	s.L.SetGlobal(name, value)
}

// RegisterModule installs a global table of Go functions.
func (s *State) RegisterModule(name string, funcs map[string]lua.LGFunction) {
	if s.closed {
		return
	}
	s.L.SetGlobal(name, s.L.SetFuncs(s.L.NewTable(), funcs))
}

// Logger returns the state's logger.
func (s *State) Logger() *slog.Logger {
	return s.logger
}

// IsClosed returns true if the state has been closed.
func (s *State) IsClosed() bool {
	return s.closed
}

// Close releases the Lua state. Further calls return ErrStateClosed.
func (s *State) Close() {
	if s.closed {
		return
	}
	s.L.Close()
	s.closed = true
}
