package analysis

import (
	"fmt"

	"github.com/devlens/devlens/internal/llm"
)

// ErrCredentialMissing indicates the LLM API key is absent from configuration.
// There is no degraded mode: the analysis attempt fails outright. It is the
// same sentinel the llm package returns from its constructors, so errors.Is
// matches whichever package surfaced it.
var ErrCredentialMissing = llm.ErrCredentialMissing

// MalformedResponseError indicates the LLM returned an empty body or a payload
// that does not parse against the expected shape. Terminal for the attempt.
type MalformedResponseError struct {
	Cause error
}

func (e *MalformedResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed analysis response: %v", e.Cause)
	}
	return "malformed analysis response"
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Cause
}
