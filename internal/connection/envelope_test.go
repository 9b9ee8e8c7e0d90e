package connection

import (
	"errors"
	"testing"
)

func TestParseEnvelope(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantCommand string
		wantErr     bool
	}{
		{
			name:        "json frame with command",
			raw:         `{"command":"ON"}`,
			wantCommand: "ON",
		},
		{
			name:        "json frame without command",
			raw:         `{"battery":85}`,
			wantCommand: "",
		},
		{
			name:        "bare text frame",
			raw:         "OFF",
			wantCommand: "OFF",
		},
		{
			name:        "bare sentence frame",
			raw:         "rebooting now",
			wantCommand: "rebooting now",
		},
		{
			name:    "bracketed but invalid",
			raw:     `{not valid json}`,
			wantErr: true,
		},
		{
			name:        "echoed outbound frame",
			raw:         `{"command":"OFF"}`,
			wantCommand: "OFF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := ParseEnvelope([]byte(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseEnvelope() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var parseErr *ParseError
				if !errors.As(err, &parseErr) {
					t.Errorf("expected *ParseError, got %T", err)
				}
				return
			}
			if env.Command != tt.wantCommand {
				t.Errorf("Command = %q, want %q", env.Command, tt.wantCommand)
			}
		})
	}
}
