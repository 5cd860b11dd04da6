// Package test contains assertion helpers shared by package tests.
package test

import (
	"errors"
	"fmt"
	"runtime"
	"slices"
	"testing"

	"github.com/cerfical/parsec"
)

func fatalf(t *testing.T, message string, params ...any) {
	t.Helper()
	if len(params) > 0 {
		message = fmt.Sprintf(message, params...)
	}
	_, thisFile, _, _ := runtime.Caller(0)
	file := thisFile
	line := 0
	for i := 2; file == thisFile; i++ {
		_, file, line, _ = runtime.Caller(i)
	}
	t.Fatalf("%s at %s:%d", message, file, line)
}

func Assert(t *testing.T, cond bool, message string, params ...any) {
	t.Helper()
	if !cond {
		fatalf(t, message, params...)
	}
}

func Expect(t *testing.T, cond bool, expected, got any) {
	t.Helper()
	if !cond {
		fatalf(t, "expecting %v, got %v", expected, got)
	}
}

func ExpectBool(t *testing.T, expected, got bool) {
	t.Helper()
	Expect(t, expected == got, expected, got)
}

func ExpectInt(t *testing.T, expected, got int) {
	t.Helper()
	Expect(t, expected == got, expected, got)
}

func ExpectString(t *testing.T, expected, got string) {
	t.Helper()
	Expect(t, expected == got, fmt.Sprintf("%q", expected), fmt.Sprintf("%q", got))
}

func ExpectInts(t *testing.T, expected, got []int) {
	t.Helper()
	if len(expected) == 0 && len(got) == 0 {
		return
	}
	Expect(t, slices.Equal(expected, got), expected, got)
}

func ExpectNoError(t *testing.T, e error) {
	t.Helper()
	if e != nil {
		fatalf(t, "unexpected error: %s", e)
	}
}

// ExpectErrorCode accepts any error that is or wraps *parsec.Error with expected code.
func ExpectErrorCode(t *testing.T, expected int, e error) {
	t.Helper()
	var pe *parsec.Error
	if errors.As(e, &pe) && pe.Code == expected {
		return
	}

	fatalf(t, "expecting error code %d, got %v", expected, e)
}
