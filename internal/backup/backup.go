// Package backup reads and writes export files of the whole data set,
// either as plain JSON or sealed with a passphrase.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Testeur1337/myPomodoro/internal/model"
)

const (
	envelopeFormat  = "mypomodoro-backup"
	envelopeVersion = 1
)

// ErrPassphraseRequired is returned by Decode for an encrypted backup when
// no passphrase source was given.
var ErrPassphraseRequired = errors.New("backup is encrypted: passphrase required")

// ErrInvalid wraps content that is not a backup this version can read.
var ErrInvalid = errors.New("invalid backup")

// envelope wraps an encrypted data set. Salt and Data are base64 in JSON.
type envelope struct {
	Format  string `json:"format"`
	Version int    `json:"version"`
	Salt    []byte `json:"salt"`
	Data    []byte `json:"data"`
}

// PassphraseFunc supplies the passphrase for an encrypted backup. It is only
// called when one is needed.
type PassphraseFunc func() (string, error)

// Encode writes ds to w. An empty passphrase writes plain indented JSON.
func Encode(w io.Writer, ds *model.Dataset, passphrase string) error {
	ds.Normalize()
	plain, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode dataset: %w", err)
	}
	if passphrase == "" {
		_, err = w.Write(append(plain, '\n'))
		return err
	}

	salt, err := newSalt()
	if err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}
	s, err := newSealer(passphrase, salt)
	if err != nil {
		return err
	}
	sealed, err := s.seal(plain)
	if err != nil {
		return fmt.Errorf("failed to encrypt backup: %w", err)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(envelope{
		Format:  envelopeFormat,
		Version: envelopeVersion,
		Salt:    salt,
		Data:    sealed,
	})
}

// Decode reads a backup written by Encode. The result is decoded but not
// validated; callers validate and repair it before use.
func Decode(r io.Reader, passphrase PassphraseFunc) (*model.Dataset, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup: %w", err)
	}

	plain := raw
	if env, ok := parseEnvelope(raw); ok {
		if env.Version != envelopeVersion {
			return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalid, env.Version)
		}
		if passphrase == nil {
			return nil, ErrPassphraseRequired
		}
		pass, err := passphrase()
		if err != nil {
			return nil, fmt.Errorf("failed to read passphrase: %w", err)
		}
		s, err := newSealer(pass, env.Salt)
		if err != nil {
			return nil, err
		}
		if plain, err = s.open(env.Data); err != nil {
			return nil, err
		}
	}

	ds := model.NewDataset()
	if err := json.Unmarshal(plain, ds); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	ds.Normalize()
	return ds, nil
}

// Encrypted reports whether raw holds an encrypted backup.
func Encrypted(raw []byte) bool {
	_, ok := parseEnvelope(raw)
	return ok
}

func parseEnvelope(raw []byte) (envelope, bool) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return envelope{}, false
	}
	return env, env.Format == envelopeFormat
}

// WriteFile encodes ds into path through a temporary file and a rename, so
// an interrupted export never leaves a truncated backup behind.
func WriteFile(path string, ds *model.Dataset, passphrase string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".backup-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := Encode(tmp, ds, passphrase); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync backup: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close backup: %w", err)
	}
	if err := os.Chmod(tmpPath, 0600); err != nil {
		return fmt.Errorf("failed to set backup permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to move backup into place: %w", err)
	}
	return nil
}
