package errors

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"
	"time"
)

func TestKitErrorString(t *testing.T) {
	err := &KitError{
		Op:   "wheel.ToLogical",
		Kind: KindPrecondition,
		Err:  stderrors.New("no items"),
	}
	want := "wheel.ToLogical [precondition]: no items"
	if got := err.Error(); got != want {
		t.Errorf("KitError.Error() = %q, want %q", got, want)
	}
}

func TestKitErrorUnwrap(t *testing.T) {
	sentinel := stderrors.New("sentinel")
	err := &KitError{Op: "op", Kind: KindRestore, Err: sentinel}
	if !stderrors.Is(err, sentinel) {
		t.Error("errors.Is should see the wrapped sentinel")
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindPrecondition, "precondition"},
		{KindRange, "range"},
		{KindConfig, "config"},
		{KindRestore, "restore"},
		{KindPanic, "panic"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestRangeErrorString(t *testing.T) {
	err := &RangeError{Name: "selected index", Value: 9, Min: 0, Max: 4}
	want := "selected index 9 out of range [0, 4]"
	if got := err.Error(); got != want {
		t.Errorf("RangeError.Error() = %q, want %q", got, want)
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{Value: "boom", Timestamp: time.Now()}
	if got, want := err.Error(), "panic: boom"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
	err.Op = "wheel.Picker.OnChange"
	if got, want := err.Error(), "panic in wheel.Picker.OnChange: boom"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func TestReport(t *testing.T) {
	var captured *KitError
	prev := SetHandler(&testHandler{onError: func(err *KitError) { captured = err }})
	defer SetHandler(prev)

	Report(&KitError{Op: "test.op", Kind: KindConfig, Err: stderrors.New("bad")})

	if captured == nil {
		t.Fatal("expected error to be captured")
	}
	if captured.Op != "test.op" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.op")
	}
	if captured.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestRecover(t *testing.T) {
	var captured *PanicError
	prev := SetHandler(&testHandler{onPanic: func(err *PanicError) { captured = err }})
	defer SetHandler(prev)

	func() {
		defer Recover("test.recover")
		panic("intentional test panic")
	}()

	if captured == nil {
		t.Fatal("expected panic to be recovered and captured")
	}
	if captured.Op != "test.recover" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.recover")
	}
}

func TestGuard(t *testing.T) {
	var panics int
	prev := SetHandler(&testHandler{onPanic: func(*PanicError) { panics++ }})
	defer SetHandler(prev)

	if ok := Guard("test.guard", func() {}); !ok {
		t.Error("Guard should return true when fn returns normally")
	}
	if ok := Guard("test.guard", func() { panic("x") }); ok {
		t.Error("Guard should return false when fn panics")
	}
	if panics != 1 {
		t.Errorf("panics = %d, want 1", panics)
	}
}

func TestSetHandlerNil(t *testing.T) {
	prev := SetHandler(nil)
	defer SetHandler(prev)
	if _, ok := DefaultHandler.(*LogHandler); !ok {
		t.Errorf("SetHandler(nil) should set LogHandler, got %T", DefaultHandler)
	}
}

func TestLogHandler(t *testing.T) {
	var buf bytes.Buffer
	h := &LogHandler{Out: &buf}
	h.HandleError(&KitError{Op: "config.Resolve", Kind: KindConfig, Err: stderrors.New("item_extent must be positive")})
	h.HandlePanic(&PanicError{Op: "wheel.Picker.OnChange", Value: "boom"})

	got := buf.String()
	for _, want := range []string{
		"[kit error] config.Resolve: item_extent must be positive",
		"[kit panic] wheel.Picker.OnChange: boom",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("log output %q should contain %q", got, want)
		}
	}
}

func TestCaptureStack(t *testing.T) {
	stack := CaptureStack()
	if !strings.Contains(stack, "testing") && !strings.Contains(stack, "runtime") {
		t.Errorf("stack trace should contain testing or runtime frames, got: %s", stack)
	}
}

type testHandler struct {
	onError func(*KitError)
	onPanic func(*PanicError)
}

func (h *testHandler) HandleError(err *KitError) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *testHandler) HandlePanic(err *PanicError) {
	if h.onPanic != nil {
		h.onPanic(err)
	}
}
