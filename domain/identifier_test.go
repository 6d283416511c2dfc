package domain

import "testing"

func TestParseIdentifier(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		expectedKind IdentifierKind
	}{
		{
			name:         "plain email",
			raw:          "user@example.com",
			expectedKind: IdentifierEmail,
		},
		{
			name:         "email with plus tag",
			raw:          "user+tag@example.com",
			expectedKind: IdentifierEmail,
		},
		{
			name:         "E.164 phone number",
			raw:          "+5511999990000",
			expectedKind: IdentifierPhone,
		},
		{
			name:         "phone without plus prefix",
			raw:          "5511999990000",
			expectedKind: IdentifierPhone,
		},
		{
			name:         "at sign in first position is still email",
			raw:          "@example.com",
			expectedKind: IdentifierEmail,
		},
		{
			name:         "empty string falls back to phone",
			raw:          "",
			expectedKind: IdentifierPhone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ident := ParseIdentifier(tt.raw)

			if ident.Kind != tt.expectedKind {
				t.Errorf("expected kind %s, got %s", tt.expectedKind, ident.Kind)
			}
			if ident.Value != tt.raw {
				t.Errorf("expected value %q preserved, got %q", tt.raw, ident.Value)
			}
			if ident.IsEmail() != (tt.expectedKind == IdentifierEmail) {
				t.Errorf("IsEmail() inconsistent with kind %s", ident.Kind)
			}
		})
	}
}
