package ioutil_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"testing"

	"braces.dev/errtrace"

	"github.com/ghettovoice/uriref/internal/ioutil"
)

var errWrite = errors.New("write failed")

type limitWriter struct {
	limit   int
	written int
}

func (lw *limitWriter) Write(p []byte) (int, error) {
	n := min(len(p), lw.limit-lw.written)
	lw.written += n
	if n < len(p) {
		return n, errtrace.Wrap(errWrite)
	}
	return n, nil
}

func TestCountingWriter_WriteStrings(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	cw := ioutil.NewCountingWriter(buf)

	num, err := cw.WriteStrings("http", ":", "", "//", "example.com").Result()
	if err != nil {
		t.Fatalf("cw.Result() error = %v, want nil", err)
	}
	if num != 18 {
		t.Errorf("cw.Result() num = %d, want 18", num)
	}
	if got, want := buf.String(), "http://example.com"; got != want {
		t.Errorf("buf.String() = %q, want %q", got, want)
	}
}

func TestCountingWriter_Call(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	cw := ioutil.GetCountingWriter(buf)
	defer ioutil.FreeCountingWriter(cw)

	render := func(w io.Writer) (int, error) {
		return errtrace.Wrap2(fmt.Fprint(w, "path"))
	}

	cw.WriteStrings("/").Call(render).Call(render)
	if got, want := cw.Count(), 9; got != want {
		t.Errorf("cw.Count() = %d, want %d", got, want)
	}
	if got, want := buf.String(), "/pathpath"; got != want {
		t.Errorf("buf.String() = %q, want %q", got, want)
	}
}

func TestCountingWriter_StopsOnError(t *testing.T) {
	t.Parallel()

	lw := &limitWriter{limit: 5}
	cw := ioutil.NewCountingWriter(lw)

	if n, err := cw.Write([]byte("hello")); err != nil || n != 5 {
		t.Fatalf("cw.Write(hello) = (%d, %v), want (5, nil)", n, err)
	}
	if n, err := cw.WriteString(" world"); !errors.Is(err, errWrite) || n != 0 {
		t.Fatalf("cw.WriteString(world) = (%d, %v), want (0, %v)", n, err, errWrite)
	}

	called := false
	cw.Call(func(io.Writer) (int, error) {
		called = true
		return 0, nil
	})
	if called {
		t.Error("cw.Call() invoked the callback after a write error")
	}

	num, err := cw.WriteStrings("more").Result()
	if !errors.Is(err, errWrite) {
		t.Errorf("cw.Result() error = %v, want %v", err, errWrite)
	}
	if num != 5 {
		t.Errorf("cw.Result() num = %d, want 5", num)
	}
}
