package errors

import (
	"reflect"
	"testing"
)

func TestFieldErrors(t *testing.T) {
	// Declare errors upfront so that DeepEqual can be used for comparison.
	var (
		unauthorizedOwnerErr = Field("Owner", ErrUnauthorized, "a")
		emptyOwnerErr        = Field("Owner", ErrEmpty, "b")
		inputDurationErr     = Field("Duration", ErrInput, "duration is required")
		willMultiErr         = Field("Will", Append(
			emptyOwnerErr,
			Append(inputDurationErr, ErrState),
		), "will data invalid")
	)

	cases := map[string]struct {
		Err   error
		Field string
		Want  []error
	}{
		"a single error found by the name": {
			Err:   unauthorizedOwnerErr,
			Field: "Owner",
			Want:  []error{unauthorizedOwnerErr},
		},
		"two error found by the name": {
			Err:   Append(unauthorizedOwnerErr, emptyOwnerErr),
			Field: "Owner",
			Want:  []error{unauthorizedOwnerErr, emptyOwnerErr},
		},
		"field can contain a multierror": {
			Err:   willMultiErr,
			Field: "Will",
			Want:  []error{willMultiErr},
		},
		"field can inspect errors tree to find match": {
			Err:   willMultiErr,
			Field: "Duration",
			Want:  []error{inputDurationErr},
		},
		"nil error returns nothing": {
			Err:   nil,
			Field: "Owner",
			Want:  nil,
		},
		"not matching field returns nothing": {
			Err:   unauthorizedOwnerErr,
			Field: "Memo",
			Want:  nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got := FieldErrors(tc.Err, tc.Field)
			if !reflect.DeepEqual(tc.Want, got) {
				t.Logf("want %q", tc.Want)
				t.Logf(" got %q", got)
				t.Fatal("unexpected result")
			}
		})
	}
}

func TestAppend(t *testing.T) {
	if err := Append(nil, nil); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	if err := Append(nil, ErrState); err != ErrState {
		t.Fatalf("want a single error returned as it is, got %v", err)
	}
	err := Append(ErrInput, Append(ErrState, ErrNotFound))
	if n := len(err.(multiErr)); n != 3 {
		t.Fatalf("want a flat group of 3 errors, got %d", n)
	}
	if code, _ := Info(err, false); code != ErrInput.Code() {
		t.Fatalf("want code of the first error, got %d", code)
	}
}
