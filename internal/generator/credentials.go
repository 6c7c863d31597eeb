package generator

import "github.com/ethanbaker/repogen/pkg/utils"

// Credential keys, primary first
const (
	CredentialKey         = "GITHUB_ACCESS_TOKEN"
	FallbackCredentialKey = "GITHUB_TOKEN"
)

// CredentialProvider supplies the bearer token for the hosting service
type CredentialProvider interface {
	Credential() (string, error)
}

// StaticCredential is a fixed token
type StaticCredential string

func (s StaticCredential) Credential() (string, error) {
	if s == "" {
		return "", &Error{Kind: ErrMissingCredential, Message: "no token configured"}
	}
	return string(s), nil
}

// ConfigCredential reads the token from configuration, trying the primary key
// then the fallback
type ConfigCredential struct {
	Config *utils.Config
}

func (c ConfigCredential) Credential() (string, error) {
	token := c.Config.First(CredentialKey, FallbackCredentialKey)
	if token == "" {
		return "", &Error{Kind: ErrMissingCredential, Message: CredentialKey + " is not set"}
	}
	return token, nil
}
