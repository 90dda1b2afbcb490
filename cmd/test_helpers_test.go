package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testFixture = `{
  "groups": [
    {"groupName": "ИС-11"},
    {"groupName": "ИС-12"},
    {"groupName": "ПК-21"}
  ],
  "schedules": {
    "ИС-12": [
      {
        "lessonDate": "2026-09-01",
        "weekday": "Вторник",
        "lessons": [
          {
            "lessonNumber": 1,
            "time": "08:30-10:00",
            "groupParts": {
              "FULL": {"subject": "Математика", "teacher": "Иванова А.П.", "classroom": "204", "building": "Главный корпус"}
            }
          }
        ]
      }
    ],
    "ПК-21": [
      {
        "lessonDate": "2026-09-01",
        "weekday": "Вторник",
        "lessons": [
          {
            "lessonNumber": 2,
            "time": "10:10-11:40",
            "groupParts": {
              "SUB1": {"subject": "Физика", "teacher": "Петров И.С.", "classroom": "12", "building": "Корпус Б"}
            }
          }
        ]
      }
    ]
  }
}`

// writeFixture stores content in a temporary fixture file and returns
// its path.
func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

// captureOutput captures stdout and stderr during function execution.
// It redirects os.Stdout and os.Stderr to pipes, runs the provided function,
// and returns the captured output as strings.
func captureOutput(f func()) (stdout, stderr string) {
	oldStdout := os.Stdout
	oldStderr := os.Stderr

	rOut, wOut, _ := os.Pipe()
	rErr, wErr, _ := os.Pipe()
	os.Stdout = wOut
	os.Stderr = wErr

	var bufOut, bufErr bytes.Buffer
	outDone := make(chan struct{})
	errDone := make(chan struct{})
	go func() {
		io.Copy(&bufOut, rOut)
		close(outDone)
	}()
	go func() {
		io.Copy(&bufErr, rErr)
		close(errDone)
	}()

	f()

	wOut.Close()
	wErr.Close()
	os.Stdout = oldStdout
	os.Stderr = oldStderr
	<-outDone
	<-errDone
	rOut.Close()
	rErr.Close()

	return bufOut.String(), bufErr.String()
}

// run executes the colsched command line args and returns stdout.
func run(t *testing.T, args ...string) string {
	t.Helper()
	var err error
	out, _ := captureOutput(func() {
		err = Execute(append([]string{"colsched"}, args...), BuildArgs{
			Version:   "1.0.0",
			BuildType: "test",
			Date:      "2026-09-01",
			Commit:    "abc123",
		})
	})
	if err != nil {
		t.Fatalf("Execute(%v): %v", args, err)
	}
	return out
}

// assertContains checks if output contains the expected substring.
func assertContains(t *testing.T, output, expected string) {
	t.Helper()
	if !strings.Contains(output, expected) {
		t.Errorf("expected output to contain %q, got:\n%s", expected, output)
	}
}

// assertNotContains checks if output does NOT contain the specified substring.
func assertNotContains(t *testing.T, output, notExpected string) {
	t.Helper()
	if strings.Contains(output, notExpected) {
		t.Errorf("expected output to NOT contain %q, got:\n%s", notExpected, output)
	}
}

// assertErrorFormat checks that error output follows the standard format:
// colsched: cmd[action]: msg
func assertErrorFormat(t *testing.T, output, cmd, action string) {
	t.Helper()
	pattern := "colsched: " + cmd + "[" + action + "]:"
	if !strings.Contains(output, pattern) {
		t.Errorf("expected error format %q, got:\n%s", pattern, output)
	}
}
