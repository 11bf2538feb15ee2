package lua

import (
	"bytes"
	"errors"
	"testing"
	"time"

	glua "github.com/yuin/gopher-lua"
)

func TestStateDoString(t *testing.T) {
	state := NewState()
	defer state.Close()

	if err := state.DoString(`x = 1 + 1`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if got := state.GetGlobal("x"); got != glua.LNumber(2) {
		t.Errorf("x = %v, want 2", got)
	}
}

func TestStateSandbox(t *testing.T) {
	state := NewState()
	defer state.Close()

	if err := state.DoString(`assert(os == nil and io == nil and debug == nil)`); err != nil {
		t.Errorf("unsafe libraries are open: %v", err)
	}
	for _, code := range []string{
		`dofile("/etc/passwd")`,
		`loadstring("return 1")()`,
		`require("os")`,
	} {
		if err := state.DoString(code); err == nil {
			t.Errorf("DoString(%q) succeeded, want error", code)
		}
	}
	if err := state.DoString(`assert(string.upper("a") == "A" and math.max(1, 2) == 2)`); err != nil {
		t.Errorf("safe libraries missing: %v", err)
	}
}

func TestStatePrint(t *testing.T) {
	var out bytes.Buffer
	state := NewState(WithOutput(&out))
	defer state.Close()

	if err := state.DoString(`print("a", 1, true)`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if got := out.String(); got != "a\t1\ttrue\n" {
		t.Errorf("print wrote %q", got)
	}
}

func TestStateExecutionTimeout(t *testing.T) {
	state := NewState(WithExecutionTimeout(50 * time.Millisecond))
	defer state.Close()

	err := state.DoString(`while true do end`)
	if !errors.Is(err, ErrExecutionTimeout) {
		t.Fatalf("DoString() error = %v, want ErrExecutionTimeout", err)
	}

	// The state stays usable after a timeout.
	if err := state.DoString(`y = 3`); err != nil {
		t.Errorf("DoString() after timeout error = %v", err)
	}
}

func TestStateCallGlobal(t *testing.T) {
	state := NewState()
	defer state.Close()

	if top := state.L.GetTop(); top != 0 {
		t.Errorf("fresh state top = %d, want 0", top)
	}
	if err := state.DoString(`function add(a, b) return a + b, "ok" end`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	before := state.L.GetTop()
	results, err := state.CallGlobal("add", 2, glua.LNumber(2), glua.LNumber(3))
	if err != nil {
		t.Fatalf("CallGlobal() error = %v", err)
	}
	if results[0] != glua.LNumber(5) || results[1] != glua.LString("ok") {
		t.Errorf("CallGlobal() = %v", results)
	}
	if top := state.L.GetTop(); top != before {
		t.Errorf("stack not balanced: top = %d, want %d", top, before)
	}

	if _, err := state.CallGlobal("missing", 0); !errors.Is(err, ErrNotFunction) {
		t.Errorf("CallGlobal(missing) error = %v, want ErrNotFunction", err)
	}
}

func TestStateClosed(t *testing.T) {
	state := NewState()
	state.Close()
	state.Close()

	if !state.IsClosed() {
		t.Fatal("IsClosed() = false after Close")
	}
	if err := state.DoString(`x = 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("DoString() error = %v, want ErrStateClosed", err)
	}
}

func TestToGoValue(t *testing.T) {
	state := NewState()
	defer state.Close()

	if err := state.DoString(`seq = {"a", 2, true}; rec = {name = "x", n = 1.5}`); err != nil {
		t.Fatal(err)
	}

	seq, ok := ToGoValue(state.GetGlobal("seq")).([]any)
	if !ok || len(seq) != 3 || seq[0] != "a" || seq[1] != 2 || seq[2] != true {
		t.Errorf("seq = %#v", seq)
	}
	rec, ok := ToGoValue(state.GetGlobal("rec")).(map[string]any)
	if !ok || rec["name"] != "x" || rec["n"] != 1.5 {
		t.Errorf("rec = %#v", rec)
	}
}
