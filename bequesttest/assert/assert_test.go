package assert

import (
	"fmt"
	"testing"

	"github.com/iov-one/bequest/errors"
)

type testerMock struct {
	failed bool
}

func (t *testerMock) Helper() {}

func (t *testerMock) Fatal(args ...interface{}) {
	t.failed = true
}

func (t *testerMock) Fatalf(s string, args ...interface{}) {
	t.failed = true
}

func TestNil(t *testing.T) {
	cases := map[string]struct {
		value    interface{}
		wantFail bool
	}{
		"nil":             {value: nil},
		"nil error":       {value: error(nil)},
		"nil pointer":     {value: (*int)(nil)},
		"nil slice":       {value: []string(nil)},
		"non nil error":   {value: fmt.Errorf("boom"), wantFail: true},
		"non pointer int": {value: 4, wantFail: true},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var m testerMock
			Nil(&m, tc.value)
			if m.failed != tc.wantFail {
				t.Fatalf("want fail=%v", tc.wantFail)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	var m testerMock
	Equal(&m, []int{1, 2}, []int{1, 2})
	if m.failed {
		t.Fatal("equal slices must pass")
	}
	Equal(&m, int64(1), 1)
	if !m.failed {
		t.Fatal("different types must fail")
	}
}

func TestPanics(t *testing.T) {
	var m testerMock
	Panics(&m, func() { panic("boom") })
	if m.failed {
		t.Fatal("panic was not recovered")
	}
	Panics(&m, func() {})
	if !m.failed {
		t.Fatal("missing panic must fail")
	}
}

func TestIsErr(t *testing.T) {
	IsErr(t, errors.ErrNotFound, errors.Wrap(errors.ErrNotFound, "will"))
	IsErr(t, nil, nil)
}
