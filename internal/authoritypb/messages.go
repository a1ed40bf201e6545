package authoritypb

import (
	"errors"
	"fmt"
	"time"

	"google.golang.org/protobuf/types/known/structpb"
)

// ErrMalformedMessage is returned when a Struct lacks a field or carries the
// wrong kind of value.
var ErrMalformedMessage = errors.New("malformed message")

const (
	fieldUsername     = "username"
	fieldPassword     = "password"
	fieldInvalid      = "invalid"
	fieldAccessToken  = "accessToken"
	fieldRefreshToken = "refreshToken"
	fieldExpiresAt    = "expiresAt"
)

// Credentials is the CreateTokens request.
type Credentials struct {
	Username string
	Password []byte
}

// Tokens is both the RefreshTokens/InvalidateTokens request (the caller's
// current auth record) and the response of every method.
type Tokens struct {
	Invalid      bool
	AccessToken  string
	RefreshToken string
	ExpiresAt    *time.Time
}

func (c Credentials) ToStruct() *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldUsername: structpb.NewStringValue(c.Username),
		fieldPassword: structpb.NewStringValue(string(c.Password)),
	}}
}

func CredentialsFromStruct(s *structpb.Struct) (Credentials, error) {
	username, err := stringField(s, fieldUsername)
	if err != nil {
		return Credentials{}, err
	}
	password, err := stringField(s, fieldPassword)
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{Username: username, Password: []byte(password)}, nil
}

func (t Tokens) ToStruct() *structpb.Struct {
	expiresAt := structpb.NewNullValue()
	if t.ExpiresAt != nil {
		expiresAt = structpb.NewStringValue(t.ExpiresAt.UTC().Format(time.RFC3339Nano))
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldInvalid:      structpb.NewBoolValue(t.Invalid),
		fieldAccessToken:  nullableString(t.AccessToken),
		fieldRefreshToken: nullableString(t.RefreshToken),
		fieldExpiresAt:    expiresAt,
	}}
}

// TokensFromStruct decodes a Tokens message. Missing or null token fields
// decode as empty values.
func TokensFromStruct(s *structpb.Struct) (Tokens, error) {
	var t Tokens
	if s == nil {
		return t, nil
	}

	if v, ok := s.GetFields()[fieldInvalid]; ok {
		if _, isNull := v.GetKind().(*structpb.Value_NullValue); !isNull {
			b, isBool := v.GetKind().(*structpb.Value_BoolValue)
			if !isBool {
				return Tokens{}, fmt.Errorf("%w: %s is not a bool", ErrMalformedMessage, fieldInvalid)
			}
			t.Invalid = b.BoolValue
		}
	}

	var err error
	if t.AccessToken, err = optionalString(s, fieldAccessToken); err != nil {
		return Tokens{}, err
	}
	if t.RefreshToken, err = optionalString(s, fieldRefreshToken); err != nil {
		return Tokens{}, err
	}

	raw, err := optionalString(s, fieldExpiresAt)
	if err != nil {
		return Tokens{}, err
	}
	if raw != "" {
		exp, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return Tokens{}, fmt.Errorf("%w: %s: %v", ErrMalformedMessage, fieldExpiresAt, err)
		}
		t.ExpiresAt = &exp
	}
	return t, nil
}

func nullableString(v string) *structpb.Value {
	if v == "" {
		return structpb.NewNullValue()
	}
	return structpb.NewStringValue(v)
}

func stringField(s *structpb.Struct, name string) (string, error) {
	v, ok := s.GetFields()[name]
	if !ok {
		return "", fmt.Errorf("%w: missing %s", ErrMalformedMessage, name)
	}
	sv, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", fmt.Errorf("%w: %s is not a string", ErrMalformedMessage, name)
	}
	return sv.StringValue, nil
}

func optionalString(s *structpb.Struct, name string) (string, error) {
	v, ok := s.GetFields()[name]
	if !ok {
		return "", nil
	}
	if _, isNull := v.GetKind().(*structpb.Value_NullValue); isNull {
		return "", nil
	}
	return stringField(s, name)
}
