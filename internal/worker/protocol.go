package worker

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/farfania/oblivion-launcher/internal/jsonx"
	"github.com/farfania/oblivion-launcher/internal/model"
)

// Message contexts sent by the worker
const (
	ContextValidateJava       = "validateJava"
	ContextEnqueueOpenJDK     = "_enqueueOpenJDK"
	ContextProgress           = "progress"
	ContextComplete           = "complete"
	ContextError              = "error"
	ContextValidate           = "validate"
	ContextValidateEverything = "validateEverything"
)

// Data kinds carried by progress, complete, error and validate messages
const (
	DataDownload     = "download"
	DataExtract      = "extract"
	DataAssets       = "assets"
	DataJava         = "java"
	DataDistribution = "distribution"
	DataVersion      = "version"
	DataLibraries    = "libraries"
	DataFiles        = "files"
)

// ErrorCodeNotFound is reported by the worker when a download host is unreachable
const ErrorCodeNotFound = "ENOENT"

// ErrMalformed is returned for lines that are not valid worker messages
var ErrMalformed = errors.New("malformed worker message")

// Message is a decoded worker message. The set of implementations is closed.
type Message interface {
	Context() string
	isMessage()
}

// ValidateJava reports the result of a system Java scan. A nil Result means
// no compatible installation was found.
type ValidateJava struct {
	Result *string
}

// EnqueueOpenJDK reports whether a managed Java download was queued
type EnqueueOpenJDK struct {
	Result bool
}

// Progress reports download, extraction or asset validation progress
type Progress struct {
	Data    string
	Value   int64
	Total   int64
	Percent int
}

// Complete reports that a download, extraction or Java install finished
type Complete struct {
	Data string
	Args []string
}

// Error reports a worker side failure
type Error struct {
	Data string
	Err  *RemoteError
}

// Validate reports that one validation stage finished
type Validate struct {
	Data string
}

// ValidateEverything carries the result of a full server validation
type ValidateEverything struct {
	Result model.ValidationResult
}

// Unknown carries a message with an unrecognized context
type Unknown struct {
	Name string
	Raw  jsonx.RawMessage
}

func (ValidateJava) Context() string       { return ContextValidateJava }
func (EnqueueOpenJDK) Context() string     { return ContextEnqueueOpenJDK }
func (Progress) Context() string           { return ContextProgress }
func (Complete) Context() string           { return ContextComplete }
func (Error) Context() string              { return ContextError }
func (Validate) Context() string           { return ContextValidate }
func (ValidateEverything) Context() string { return ContextValidateEverything }
func (u Unknown) Context() string          { return u.Name }

func (ValidateJava) isMessage()       {}
func (EnqueueOpenJDK) isMessage()     {}
func (Progress) isMessage()           {}
func (Complete) isMessage()           {}
func (Error) isMessage()              {}
func (Validate) isMessage()           {}
func (ValidateEverything) isMessage() {}
func (Unknown) isMessage()            {}

// RemoteError is the error object attached to worker error messages
type RemoteError struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

func (e *RemoteError) Error() string {
	if e == nil {
		return "unknown worker error"
	}
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Number accepts both JSON numbers and quoted numbers
type Number float64

// UnmarshalJSON implements json.Unmarshaler
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(bytes.TrimSpace(data), `"`)
	if len(data) == 0 || string(data) == "null" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid number %q: %w", data, err)
	}
	*n = Number(f)
	return nil
}

// envelope is the wire shape shared by all worker messages
type envelope struct {
	Context string           `json:"context"`
	Result  jsonx.RawMessage `json:"result,omitempty"`
	Data    string           `json:"data,omitempty"`
	Value   Number           `json:"value,omitempty"`
	Total   Number           `json:"total,omitempty"`
	Percent Number           `json:"percent,omitempty"`
	Args    []string         `json:"args,omitempty"`
	Error   *RemoteError     `json:"error,omitempty"`
}

// Decode parses one worker message. Unrecognized contexts decode to Unknown.
func Decode(line []byte) (Message, error) {
	var env envelope
	if err := jsonx.Unmarshal(line, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if env.Context == "" {
		return nil, fmt.Errorf("%w: missing context", ErrMalformed)
	}

	switch env.Context {
	case ContextValidateJava:
		msg := ValidateJava{}
		if isNull(env.Result) {
			return msg, nil
		}
		var path string
		if err := jsonx.Unmarshal(env.Result, &path); err != nil {
			return nil, fmt.Errorf("%w: validateJava result: %v", ErrMalformed, err)
		}
		msg.Result = &path
		return msg, nil
	case ContextEnqueueOpenJDK:
		var ok bool
		if !isNull(env.Result) {
			if err := jsonx.Unmarshal(env.Result, &ok); err != nil {
				return nil, fmt.Errorf("%w: _enqueueOpenJDK result: %v", ErrMalformed, err)
			}
		}
		return EnqueueOpenJDK{Result: ok}, nil
	case ContextProgress:
		msg := Progress{
			Data:    env.Data,
			Value:   int64(env.Value),
			Total:   int64(env.Total),
			Percent: int(env.Percent),
		}
		if msg.Percent == 0 && msg.Total > 0 {
			msg.Percent = int(float64(msg.Value) / float64(msg.Total) * 100)
		}
		return msg, nil
	case ContextComplete:
		return Complete{Data: env.Data, Args: env.Args}, nil
	case ContextError:
		return Error{Data: env.Data, Err: env.Error}, nil
	case ContextValidate:
		return Validate{Data: env.Data}, nil
	case ContextValidateEverything:
		msg := ValidateEverything{}
		if !isNull(env.Result) {
			if err := jsonx.Unmarshal(env.Result, &msg.Result); err != nil {
				return nil, fmt.Errorf("%w: validateEverything result: %v", ErrMalformed, err)
			}
		}
		return msg, nil
	default:
		raw := make([]byte, len(line))
		copy(raw, line)
		return Unknown{Name: env.Context, Raw: raw}, nil
	}
}

// Encode renders a message in the worker wire format
func Encode(msg Message) ([]byte, error) {
	env := envelope{Context: msg.Context()}

	switch m := msg.(type) {
	case ValidateJava:
		if m.Result == nil {
			env.Result = jsonx.RawMessage("null")
		} else {
			raw, err := jsonx.Marshal(*m.Result)
			if err != nil {
				return nil, err
			}
			env.Result = raw
		}
	case EnqueueOpenJDK:
		env.Result = jsonx.RawMessage(strconv.FormatBool(m.Result))
	case Progress:
		env.Data = m.Data
		env.Value = Number(m.Value)
		env.Total = Number(m.Total)
		env.Percent = Number(m.Percent)
	case Complete:
		env.Data = m.Data
		env.Args = m.Args
	case Error:
		env.Data = m.Data
		env.Error = m.Err
	case Validate:
		env.Data = m.Data
	case ValidateEverything:
		raw, err := jsonx.Marshal(m.Result)
		if err != nil {
			return nil, err
		}
		env.Result = raw
	case Unknown:
		if len(m.Raw) > 0 {
			return m.Raw, nil
		}
	}

	return jsonx.Marshal(env)
}

func isNull(raw jsonx.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
