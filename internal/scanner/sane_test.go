package scanner

import (
	"testing"
)

// Compile-time assertion that the SANE driver satisfies the Driver contract.
var _ Driver = (*SaneDriver)(nil)

func TestParseDeviceList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Device
	}{
		{
			name:  "single device",
			input: "pixma:04A91234|CANON|Canon PIXMA MG3600|multi-function peripheral\n",
			expected: []Device{
				{Name: "pixma:04A91234", Vendor: "CANON", Model: "Canon PIXMA MG3600", Type: "multi-function peripheral"},
			},
		},
		{
			name: "multiple devices preserve order",
			input: "epsonscan2:ES0165|EPSON|ET-2850 Series|flatbed scanner\n" +
				"genesys:libusb:001:004|Canon|LiDE 210|flatbed scanner\n",
			expected: []Device{
				{Name: "epsonscan2:ES0165", Vendor: "EPSON", Model: "ET-2850 Series", Type: "flatbed scanner"},
				{Name: "genesys:libusb:001:004", Vendor: "Canon", Model: "LiDE 210", Type: "flatbed scanner"},
			},
		},
		{
			name:     "no devices",
			input:    "",
			expected: []Device{},
		},
		{
			name:     "blank lines ignored",
			input:    "\n\n",
			expected: []Device{},
		},
		{
			name:     "malformed line skipped",
			input:    "not a device record\n",
			expected: []Device{},
		},
		{
			name:  "device type containing separators keeps full tail",
			input: "net:localhost:test:0|Noname|frontend-tester|virtual|device\n",
			expected: []Device{
				{Name: "net:localhost:test:0", Vendor: "Noname", Model: "frontend-tester", Type: "virtual|device"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseDeviceList(tt.input)
			if got == nil {
				t.Fatal("Expected non-nil device slice")
			}
			if len(got) != len(tt.expected) {
				t.Fatalf("Expected %d devices, got %d: %+v", len(tt.expected), len(got), got)
			}
			for i, want := range tt.expected {
				if got[i] != want {
					t.Errorf("Device %d: expected %+v, got %+v", i, want, got[i])
				}
			}
		})
	}
}

func TestSaneMode(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"color", "Color"},
		{"Color", "Color"},
		{"colour", "Color"},
		{"gray", "Gray"},
		{"grey", "Gray"},
		{"grayscale", "Gray"},
		{"lineart", "Lineart"},
		{"Halftone", "Halftone"}, // unknown values pass through for the backend to judge
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := saneMode(tt.in); got != tt.expected {
				t.Errorf("saneMode(%q) = %q, expected %q", tt.in, got, tt.expected)
			}
		})
	}
}
