package main

import (
	"bytes"
	"strings"
	"testing"
)

// captureOutput swaps the package stdout for a buffer until the test ends.
// It is NOT safe for parallel use.
func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	orig := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = orig })
	return &buf
}

// resetFlags restores global flag state after each test.
func resetFlags(t *testing.T) {
	t.Helper()
	origURL, origFmt := flagURL, flagFmt
	t.Cleanup(func() {
		flagURL = origURL
		flagFmt = origFmt
	})
}

// executeArgs runs a fresh root command with args and returns any error.
// Cobra's own usage and error output is discarded.
func executeArgs(t *testing.T, args ...string) error {
	t.Helper()
	resetFlags(t)
	root := newRootCmd()
	root.SetOut(&strings.Builder{})
	root.SetErr(&strings.Builder{})
	root.SetArgs(args)
	_, err := root.ExecuteC()
	return err
}
