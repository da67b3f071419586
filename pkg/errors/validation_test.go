package errors

import "testing"

func TestValidateAttributeID(t *testing.T) {
	tests := []struct {
		name    string
		id      int
		wantErr bool
	}{
		{"valid small", 1, false},
		{"valid origin boundary", 22, false},
		{"valid super", 30, false},
		{"zero", 0, true},
		{"negative", -5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAttributeID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAttributeID(%d) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if err != nil && GetCode(err) != ErrCodeInvalidAttribute {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidAttribute)
			}
		})
	}
}

func TestValidateBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid with scheme", "http://api.example", false},
		{"valid https", "https://api.example:8080", false},
		{"valid scheme-less", "192.168.1.10:5000", false},

		{"empty", "", true},
		{"embedded space", "api example.com", true},
		{"newline", "api.example\n", true},
		{"control char", "api\x01.example", true},
		{"backslash", "api\\example", true},
		{"too long", "http://" + string(make([]byte, 300)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBaseURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBaseURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
