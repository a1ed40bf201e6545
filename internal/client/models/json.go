package models

import (
	"encoding/json"
	"time"
)

// authStateJSON is the wire form kept in cache backends. Unset fields are
// written as JSON null.
type authStateJSON struct {
	Invalid      bool    `json:"invalid"`
	AccessToken  *string `json:"accessToken"`
	RefreshToken *string `json:"refreshToken"`
	ExpiresAt    *string `json:"expiresAt"`
}

func (s AuthState) MarshalJSON() ([]byte, error) {
	out := authStateJSON{
		Invalid:      s.Invalid,
		AccessToken:  nullable(s.AccessToken),
		RefreshToken: nullable(s.RefreshToken),
	}
	if s.ExpiresAt != nil {
		v := s.ExpiresAt.UTC().Format(time.RFC3339Nano)
		out.ExpiresAt = &v
	}
	return json.Marshal(out)
}

func (s *AuthState) UnmarshalJSON(b []byte) error {
	var in authStateJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}

	*s = AuthState{Invalid: in.Invalid}
	if in.AccessToken != nil {
		s.AccessToken = *in.AccessToken
	}
	if in.RefreshToken != nil {
		s.RefreshToken = *in.RefreshToken
	}
	if in.ExpiresAt != nil {
		t, err := time.Parse(time.RFC3339Nano, *in.ExpiresAt)
		if err != nil {
			return err
		}
		s.ExpiresAt = &t
	}
	return nil
}

func nullable(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
