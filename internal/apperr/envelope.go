package apperr

import (
	"encoding/json"
	"fmt"
	"io"
)

// Envelope is the machine-readable error body.
type Envelope struct {
	Code    int    `json:"code"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

// envelopeDocument wraps an Envelope under the "error" key.
type envelopeDocument struct {
	Error Envelope `json:"error"`
}

// Translate converts err into an Envelope.
func Translate(err error) Envelope {
	kind := KindOf(err)
	return Envelope{
		Code:    kind.ExitCode(),
		Name:    kind.String(),
		Message: message(err),
	}
}

// Render writes err to w and returns the exit code to use.
// In JSON mode only the envelope is written. Otherwise a short message
// is printed, followed by a help hint for usage-class failures.
func Render(w io.Writer, err error, jsonMode bool) int {
	if err == nil {
		return ExitOK
	}
	env := Translate(err)
	if jsonMode {
		data, marshalErr := json.Marshal(envelopeDocument{Error: env})
		if marshalErr != nil {
			data = []byte(`{"error":{"code":1,"name":"GENERIC_ERROR","message":"internal error"}}`)
		}
		_, _ = fmt.Fprintln(w, string(data))
		return env.Code
	}

	_, _ = fmt.Fprintf(w, "rookeen: %s\n", env.Message)
	if env.Code == ExitUsage {
		_, _ = fmt.Fprintln(w, "Run 'rookeen --help' for usage.")
	}
	return env.Code
}
