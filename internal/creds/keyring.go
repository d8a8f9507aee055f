package creds

import (
	"fmt"

	"github.com/zalando/go-keyring"
	"uplog/pkg/errors"
)

// keyringUser is the account name tokens are filed under. One token per
// service is enough for a single-repository recorder.
const keyringUser = "token"

// KeyringSource reads the token from the operating system keyring
// (Keychain, Secret Service, or Windows Credential Manager). The URL
// still comes from the config file since it is not a secret.
type KeyringSource struct {
	Service string
	URL     string
}

func (s *KeyringSource) Resolve() (Credentials, error) {
	token, err := keyring.Get(s.Service, keyringUser)
	if err != nil {
		return Credentials{}, errors.CredentialsError(
			fmt.Sprintf("no token stored in keyring service %q", s.Service), err)
	}

	if IsPlaceholder(s.URL) {
		return Credentials{}, errors.CredentialsError(
			"credentials.url is required with the keyring source", nil)
	}

	return Credentials{Token: token, URL: s.URL}, nil
}

// StoreToken writes the token into the OS keyring for later resolution.
func StoreToken(service, token string) error {
	if err := keyring.Set(service, keyringUser, token); err != nil {
		return errors.Wrap(err, errors.ErrCodeCredentialsUnset,
			fmt.Sprintf("failed to store token in keyring service %q", service))
	}
	return nil
}

// DeleteToken removes a stored token, used by `uplog setup` on overwrite.
func DeleteToken(service string) error {
	err := keyring.Delete(service, keyringUser)
	if err != nil && err != keyring.ErrNotFound {
		return errors.Wrap(err, errors.ErrCodeCredentialsUnset,
			fmt.Sprintf("failed to delete token from keyring service %q", service))
	}
	return nil
}
