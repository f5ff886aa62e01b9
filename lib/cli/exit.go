// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ExitError signals a non-zero exit code without printing an extra
// error message. When Run returns an ExitError, [App.Run] reports its
// code; the command is expected to have written its own output.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code. Main functions check for this
// interface on returned errors to tell a handled non-zero exit from an
// error that still needs displaying.
func (e *ExitError) ExitCode() int {
	return e.Code
}
