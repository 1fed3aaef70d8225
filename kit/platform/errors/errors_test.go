package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestErrorMsg(t *testing.T) {
	cases := []struct {
		name string
		err  error
		msg  string
	}{
		{
			name: "simple error",
			err:  &Error{Code: EDecode},
			msg:  "<decode error>",
		},
		{
			name: "with message",
			err: &Error{
				Code: EDecode,
				Op:   "wire/DecodeFile",
				Msg:  `missing "tree"`,
			},
			msg: `missing "tree"`,
		},
		{
			name: "with a third party error",
			err: &Error{
				Code: EPrint,
				Op:   "boundary/Format",
				Err:  errors.New("unexpected node"),
			},
			msg: "unexpected node",
		},
		{
			name: "with message and wrapped error",
			err: &Error{
				Code: EEncode,
				Msg:  "unable to encode syntax tree",
				Err:  errors.New("NaN"),
			},
			msg: "unable to encode syntax tree: NaN",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.err.Error(); got != c.msg {
				t.Errorf("unexpected message -want/+got:\n\t- %q\n\t+ %q", c.msg, got)
			}
		})
	}
}

func TestErrorCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code string
		op   string
	}{
		{
			name: "nil",
		},
		{
			name: "foreign error",
			err:  errors.New("boom"),
			code: EInternal,
		},
		{
			name: "direct",
			err:  &Error{Code: EDecode, Op: "wire/DecodeFile"},
			code: EDecode,
			op:   "wire/DecodeFile",
		},
		{
			name: "code from inner error",
			err: &Error{
				Op:  "boundary/Format",
				Err: &Error{Code: EDecode, Op: "wire/DecodeFile"},
			},
			code: EDecode,
			op:   "boundary/Format",
		},
		{
			name: "wrapped by fmt",
			err:  fmt.Errorf("host: %w", &Error{Code: EPrint, Op: "boundary/Format"}),
			code: EPrint,
			op:   "boundary/Format",
		},
		{
			name: "no code anywhere",
			err:  &Error{Msg: "something"},
			code: EInternal,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ErrorCode(c.err); got != c.code {
				t.Errorf("unexpected code: want %q got %q", c.code, got)
			}
			if got := ErrorOp(c.err); got != c.op {
				t.Errorf("unexpected op: want %q got %q", c.op, got)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	if got, want := ErrorMessage(errors.New("x")), "An internal error has occurred."; got != want {
		t.Errorf("got %q want %q", got, want)
	}
	err := &Error{Code: EDecode, Err: &Error{Code: EDecode, Msg: "inner"}}
	if got, want := ErrorMessage(err), "inner"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, EEncode, "op") != nil {
		t.Fatal("wrapping nil must return nil")
	}
	inner := errors.New("unsupported value")
	err := Wrap(inner, EEncode, "wire/EncodeFile")
	if !errors.Is(err, inner) {
		t.Error("wrapped error must unwrap to the original")
	}
	if got := ErrorCode(err); got != EEncode {
		t.Errorf("unexpected code %q", got)
	}
}

func TestJSON(t *testing.T) {
	cases := []struct {
		name string
		err  *Error
		want *Error
	}{
		{
			name: "simple error",
			err:  &Error{Code: EDecode, Op: "wire/DecodeFile", Msg: "bad"},
			want: &Error{Code: EDecode, Op: "wire/DecodeFile", Msg: "bad"},
		},
		{
			name: "with a third party error",
			err: &Error{
				Code: EPrint,
				Op:   "boundary/Format",
				Err:  errors.New("unexpected node"),
			},
			want: &Error{
				Code: EPrint,
				Op:   "boundary/Format",
				Err:  errors.New("unexpected node"),
			},
		},
		{
			name: "nested",
			err: &Error{
				Code: EDecode,
				Op:   "boundary/Format",
				Err:  &Error{Code: EDecode, Op: "wire/DecodeFile", Msg: "missing body"},
			},
			want: &Error{
				Code: EDecode,
				Op:   "boundary/Format",
				Err:  &Error{Code: EDecode, Op: "wire/DecodeFile", Msg: "missing body"},
			},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b, err := json.Marshal(c.err)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			got := new(Error)
			if err := json.Unmarshal(b, got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if diff := cmp.Diff(c.want.Error(), got.Error()); diff != "" {
				t.Errorf("unexpected message -want/+got:\n%s", diff)
			}
			if ErrorCode(got) != ErrorCode(c.want) || ErrorOp(got) != ErrorOp(c.want) {
				t.Errorf("code/op not preserved: got %q/%q", ErrorCode(got), ErrorOp(got))
			}
		})
	}
}
