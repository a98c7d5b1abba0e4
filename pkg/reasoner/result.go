package reasoner

import "encoding/json"

// Answer captures a successfully parsed reasoning result. Result may be any
// JSON-like shape: a string, a list, or an object, depending on the action.
type Answer struct {
	Result    any    `json:"result"`
	Rationale string `json:"rationale"`
}

// Failure captures a reasoning failure: the model call failed outright, its
// output could not be parsed, or the parsed object was missing required
// fields.
type Failure struct {
	Error       string `json:"error"`
	RawResponse string `json:"raw_response,omitempty"`
	ParseError  string `json:"parse_error,omitempty"`
}

// Result is the outcome of one reasoning call. Exactly one of Answer or
// Failure is set.
type Result struct {
	Answer  *Answer
	Failure *Failure
}

// Failed reports whether the result is a failure.
func (r Result) Failed() bool {
	return r.Failure != nil
}

// MarshalJSON emits the wire shape of whichever variant is set.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Failure != nil {
		return json.Marshal(r.Failure)
	}
	if r.Answer != nil {
		return json.Marshal(r.Answer)
	}
	return []byte("null"), nil
}
