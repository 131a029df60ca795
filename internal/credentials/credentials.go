// Package credentials reads and writes the saur-cli credentials file.
//
// The file is a JSON object holding the account login and password, and the
// bearer token and section identifier of the last successful run so that the
// next run can skip authentication:
//
//	{"login": "me@example.com", "mdp": "secret", "token": "", "unique_id": ""}
//
// Other keys in the file are kept as they are when it is rewritten.
package credentials

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrIncomplete is returned when the file lacks a login or a password.
var ErrIncomplete = errors.New(`credentials file must contain "login" and "mdp"`)

// Credentials is the content of the credentials file.
type Credentials struct {
	Login    string `json:"login"`
	Password string `json:"mdp"`
	Token    string `json:"token,omitempty"`
	UniqueID string `json:"unique_id,omitempty"`

	// extra holds the keys this package does not know about.
	extra map[string]json.RawMessage
}

// plain drops the JSON methods of Credentials.
type plain Credentials

var knownKeys = []string{"login", "mdp", "token", "unique_id"}

// UnmarshalJSON decodes the known keys and keeps the others.
func (c *Credentials) UnmarshalJSON(data []byte) error {
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}

	for _, k := range knownKeys {
		delete(all, k)
	}

	for k, v := range all {
		var buf bytes.Buffer
		if err := json.Compact(&buf, v); err != nil {
			return err
		}
		all[k] = buf.Bytes()
	}

	if len(all) == 0 {
		all = nil
	}

	*c = Credentials(p)
	c.extra = all

	return nil
}

// MarshalJSON writes the known keys merged with the kept ones.
func (c Credentials) MarshalJSON() ([]byte, error) {
	known, err := json.Marshal(plain(c))
	if err != nil {
		return nil, err
	}

	if len(c.extra) == 0 {
		return known, nil
	}

	out := make(map[string]json.RawMessage, len(c.extra)+len(knownKeys))
	for k, v := range c.extra {
		out[k] = v
	}

	if err := json.Unmarshal(known, &out); err != nil {
		return nil, err
	}

	return json.Marshal(out)
}

// Load reads and validates the credentials file at path.
func Load(path string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read credentials %s: %w", path, err)
	}

	var c Credentials
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode credentials %s: %w", path, err)
	}

	if c.Login == "" || c.Password == "" {
		return nil, ErrIncomplete
	}

	return &c, nil
}

// Save writes c to path with owner-only permissions. The file is replaced
// atomically.
func Save(path string, c *Credentials) error {
	data, err := json.MarshalIndent(c, "", "    ")
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".credentials-*.json")
	if err != nil {
		return fmt.Errorf("create temp credentials: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write credentials: %w", err)
	}

	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod credentials: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close credentials: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace credentials %s: %w", path, err)
	}

	return nil
}
