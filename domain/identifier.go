package domain

// IdentifierKind discriminates the two identifier channels.
type IdentifierKind string

const (
	IdentifierEmail IdentifierKind = "email"
	IdentifierPhone IdentifierKind = "phone"
)

// Identifier is a classified login/registration handle. Carrying the kind
// explicitly avoids re-inferring it from the raw string at every layer.
type Identifier struct {
	Kind  IdentifierKind
	Value string
}

// ParseIdentifier classifies a raw identifier string. Presence of '@'
// means email, anything else is treated as a phone number. Format
// validation (E.164, RFC 5322) happens upstream before this is called.
func ParseIdentifier(raw string) Identifier {
	for i := 0; i < len(raw); i++ {
		if raw[i] == '@' {
			return Identifier{Kind: IdentifierEmail, Value: raw}
		}
	}
	return Identifier{Kind: IdentifierPhone, Value: raw}
}

// IsEmail reports whether the identifier is an email address.
func (i Identifier) IsEmail() bool {
	return i.Kind == IdentifierEmail
}
