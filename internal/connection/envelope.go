package connection

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/himanshu0072451/homelink/domain/entities"
)

// outboundFrame is the wire shape of a power command. The appliance may
// echo it back, so it must stay parseable by ParseEnvelope.
type outboundFrame struct {
	Command string `json:"command"`
}

// ParseError reports an inbound frame that looked like a JSON object but
// did not decode as one. Such frames are dropped whole.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed appliance frame %q: %v", e.Raw, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseEnvelope decodes one inbound text frame. A frame with a leading "{"
// and a trailing "}" is decoded as JSON; anything else is treated as a bare
// command value. The brace check matches what the appliance firmware
// actually emits, but it will misclassify unstructured text that happens
// to be wrapped in braces.
func ParseEnvelope(raw []byte) (entities.Envelope, error) {
	text := string(raw)
	if strings.HasPrefix(text, "{") && strings.HasSuffix(text, "}") {
		var env entities.Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return entities.Envelope{}, &ParseError{Raw: text, Err: err}
		}
		return env, nil
	}
	return entities.Envelope{Command: text}, nil
}
