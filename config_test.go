package serial

import (
	"testing"
	"time"
)

func TestWithReadTimeout(t *testing.T) {
	tests := []struct {
		name    string
		timeout time.Duration
		wantErr bool
	}{
		{"0ms (non-blocking)", 0, false},
		{"100ms (valid)", 100 * time.Millisecond, false},
		{"1s (default)", time.Second, false},
		{"2500ms (valid)", 2500 * time.Millisecond, false},
		{"25500ms (max)", 25500 * time.Millisecond, false},
		{"150ms (not multiple of 100ms)", 150 * time.Millisecond, true},
		{"250ns (not multiple of 100ms)", 250 * time.Nanosecond, true},
		{"25600ms (exceeds max)", 25600 * time.Millisecond, true},
		{"-100ms (negative)", -100 * time.Millisecond, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			opt := WithReadTimeout(tt.timeout)
			err := opt(&config)
			if (err != nil) != tt.wantErr {
				t.Errorf("WithReadTimeout(%v) error = %v, wantErr %v", tt.timeout, err, tt.wantErr)
			}
			if err == nil && config.ReadTimeout != tt.timeout {
				t.Errorf("ReadTimeout = %v, want %v", config.ReadTimeout, tt.timeout)
			}
		})
	}
}

func TestReadTimeoutTenths(t *testing.T) {
	config := DefaultConfig()
	if got := config.readTimeoutTenths(); got != 10 {
		t.Errorf("readTimeoutTenths() = %d, want 10", got)
	}

	if err := WithReadTimeout(25500 * time.Millisecond)(&config); err != nil {
		t.Fatalf("WithReadTimeout failed: %v", err)
	}
	if got := config.readTimeoutTenths(); got != 255 {
		t.Errorf("readTimeoutTenths() = %d, want 255", got)
	}
}

func TestParseParity(t *testing.T) {
	tests := []struct {
		input   string
		want    Parity
		wantErr bool
	}{
		{"none", ParityNone, false},
		{"", ParityNone, false},
		{"N", ParityNone, false},
		{"odd", ParityOdd, false},
		{"Even", ParityEven, false},
		{"mark", ParityNone, true},
	}

	for _, tt := range tests {
		got, err := ParseParity(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseParity(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseParity(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestConfigString(t *testing.T) {
	config := DefaultConfig()
	if got := config.String(); got != "9600 8N1" {
		t.Errorf("String() = %q, want %q", got, "9600 8N1")
	}

	config.Parity = ParityEven
	config.DataBits = 7
	config.StopBits = 2
	if got := config.String(); got != "9600 7E2" {
		t.Errorf("String() = %q, want %q", got, "9600 7E2")
	}
}

func TestNewConfig(t *testing.T) {
	config, err := NewConfig(WithBaudRate(115200), WithParity(ParityOdd))
	if err != nil {
		t.Fatalf("NewConfig failed: %v", err)
	}
	if config.BaudRate != 115200 || config.Parity != ParityOdd {
		t.Errorf("Unexpected config: %+v", config)
	}

	if _, err := NewConfig(WithDataBits(4)); err != ErrInvalidConfig {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}
