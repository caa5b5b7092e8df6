package errors

import (
	"fmt"
	"testing"
)

func TestInfo(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"plain coded error": {
			err:      ErrNotFound,
			wantLog:  "not found",
			wantCode: ErrNotFound.code,
		},
		"wrapped coded error": {
			err:      Wrap(Wrap(ErrNotFound, "foo"), "bar"),
			wantLog:  "bar: foo: not found",
			wantCode: ErrNotFound.code,
		},
		"nil is empty message": {
			err:      nil,
			wantLog:  "",
			wantCode: 0,
		},
		"nil coded error is not an error": {
			err:      (*Error)(nil),
			wantLog:  "",
			wantCode: 0,
		},
		"stdlib is generic message": {
			err:      fmt.Errorf("stdlib error"),
			wantLog:  "internal error",
			wantCode: 1,
		},
		"stdlib returns error message in debug mode": {
			err:      fmt.Errorf("stdlib error"),
			debug:    true,
			wantLog:  "stdlib error",
			wantCode: 1,
		},
		"wrapped stdlib is only a generic message": {
			err:      Wrap(fmt.Errorf("stdlib error"), "wrapped"),
			wantLog:  "internal error",
			wantCode: 1,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			code, log := Info(tc.err, tc.debug)
			if code != tc.wantCode {
				t.Errorf("want %d code, got %d", tc.wantCode, code)
			}
			if tc.debug {
				// Debug messages can carry a stacktrace, compare
				// only the beginning.
				if len(log) < len(tc.wantLog) || log[:len(tc.wantLog)] != tc.wantLog {
					t.Errorf("want %q log prefix, got %q", tc.wantLog, log)
				}
				return
			}
			if log != tc.wantLog {
				t.Errorf("want %q log, got %q", tc.wantLog, log)
			}
		})
	}
}

func TestRedact(t *testing.T) {
	if err := Redact(ErrPanic, false); ErrPanic.Is(err) {
		t.Error("reduct must not pass through panic error")
	}
	if err := Redact(ErrPanic, true); !ErrPanic.Is(err) {
		t.Error("reduct should pass through panic error in debug mode")
	}
	if err := Redact(ErrUnauthorized, false); !ErrUnauthorized.Is(err) {
		t.Error("coded errors must not be redacted")
	}
	if err := Redact(fmt.Errorf("secret"), false); err.Error() != internalLog {
		t.Errorf("stdlib error must be redacted, got %q", err)
	}
}
