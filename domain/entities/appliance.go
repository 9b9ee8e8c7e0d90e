package entities

// PowerState is the appliance's last reported power state. Unknown is the
// initial value, distinct from any real report.
type PowerState string

const (
	PowerOn      PowerState = "ON"
	PowerOff     PowerState = "OFF"
	PowerUnknown PowerState = "UNKNOWN"
)

// Command is an outbound power intent. Transient: built, serialized, sent.
type Command string

const (
	CommandOn  Command = "ON"
	CommandOff Command = "OFF"
)

// Envelope is a parsed inbound frame from the appliance. Command is empty
// when the frame carried no command field.
type Envelope struct {
	Command string `json:"command,omitempty"`
}
