// SPDX-License-Identifier: EPL-2.0

package bundletool

import (
	"context"
	"encoding/json"
	"fmt"
)

// CircularityAnalyzer wraps the opaque import-cycle analysis tool. Any
// failure to run it is fatal (ToolFailureError), never folded into a
// ValidationReport as a violation.
type CircularityAnalyzer struct {
	Invoker Invoker
	Command string
}

// NewCircularityAnalyzer returns a CircularityAnalyzer that runs command
// through invoker.
func NewCircularityAnalyzer(invoker Invoker, command string) *CircularityAnalyzer {
	return &CircularityAnalyzer{Invoker: invoker, Command: command}
}

// Analyze returns a possibly-empty list of cycles among entryPoints within
// packageRoot, each rendered by the tool as an arrow chain such as
// "a.js -> b.js".
func (a *CircularityAnalyzer) Analyze(ctx context.Context, packageRoot string, entryPoints []string) ([]string, error) {
	args := append([]string{"--json"}, entryPoints...)
	out, err := a.Invoker.Run(ctx, packageRoot, a.Command, args)
	if err != nil {
		return nil, &ToolFailureError{Tool: a.Command, Args: args, Cause: err}
	}

	var cycles []string
	if err := json.Unmarshal(out, &cycles); err != nil {
		return nil, &ToolFailureError{Tool: a.Command, Args: args, Cause: fmt.Errorf("decode circularity output: %w", err)}
	}
	return cycles, nil
}
