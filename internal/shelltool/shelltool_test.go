// SPDX-License-Identifier: MPL-2.0

package shelltool

import (
	"context"
	"errors"
	"testing"

	"bundleforge/pkg/bundletool"
)

func TestProcessInvoker_CapturesStdout(t *testing.T) {
	inv := NewProcessInvoker()
	out, err := inv.Run(context.Background(), t.TempDir(), "echo", []string{"-n", "hello"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if string(out) != "hello" {
		t.Errorf("Run() = %q, want %q", out, "hello")
	}
}

func TestProcessInvoker_NonZeroExitIsToolFailure(t *testing.T) {
	inv := NewProcessInvoker()
	_, err := inv.Run(context.Background(), t.TempDir(), "sh", []string{"-c", "echo boom >&2; exit 3"})
	if err == nil {
		t.Fatal("Run() expected an error on non-zero exit")
	}
	var toolErr *bundletool.ToolFailureError
	if !errors.As(err, &toolErr) {
		t.Fatalf("Run() error = %v, want *bundletool.ToolFailureError", err)
	}
	if toolErr.Stderr == "" {
		t.Error("ToolFailureError should capture stderr")
	}
}

func TestRunSmokeTest_CapturesExitCodeWithoutGoError(t *testing.T) {
	result, err := RunSmokeTest(context.Background(), t.TempDir(), "echo ok; exit 7")
	if err != nil {
		t.Fatalf("RunSmokeTest() error = %v", err)
	}
	if result.ExitCode != 7 {
		t.Errorf("ExitCode = %d, want 7", result.ExitCode)
	}
	if result.Stdout != "ok\n" {
		t.Errorf("Stdout = %q", result.Stdout)
	}
}

func TestRunSmokeTest_SyntaxErrorReturnsError(t *testing.T) {
	if _, err := RunSmokeTest(context.Background(), t.TempDir(), "if true; then"); err == nil {
		t.Fatal("RunSmokeTest() expected a syntax error")
	}
}
