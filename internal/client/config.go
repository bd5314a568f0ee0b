package client

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/chzyer/readline"
	sargon2 "github.com/mdouchement/simple-argon2"
	"github.com/pkg/errors"
	"github.com/shishikan-sg/shishikan/pkg/libssk"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	saltKeyLength   = 16
	credentialsfile = ".shishikan"
)

// A Config holds client's configuration.
type Config struct {
	Endpoint string         `json:"endpoint"`
	User     libssk.User    `json:"user"`
	Session  libssk.Session `json:"session"`
}

// Remove removes the credential files from the current directory.
func Remove() error {
	return os.Remove(credentialsfile)
}

// Load gets the configuration from the current folder according to `credentialsfile` const.
func Load() (Config, error) {
	fmt.Println("Loading credentials from " + credentialsfile)
	var cfg Config

	ciphertext, err := os.ReadFile(credentialsfile)
	if err != nil {
		return cfg, errors.Wrap(err, "could not read credentials file")
	}

	passphrase, err := readline.Password("passphrase: ")
	if err != nil {
		return cfg, errors.Wrap(err, "could not read passphrase from stdin")
	}

	payload, err := open(ciphertext, passphrase)
	if err != nil {
		return cfg, err
	}

	err = json.Unmarshal(payload, &cfg)
	if err != nil {
		return cfg, errors.Wrap(err, "could not parse config")
	}

	return cfg, nil
}

// Save stores the configuration in the current folder according to `credentialsfile` const.
func Save(cfg Config) error {
	payload, err := json.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "could not serialize config")
	}

	fmt.Println("Storing credentials in current directory as " + credentialsfile)
	passphrase, err := readline.Password("passphrase: ")
	if err != nil {
		return errors.Wrap(err, "could not read passphrase from stdin")
	}

	ciphertext, err := seal(payload, passphrase)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(credentialsfile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return errors.Wrapf(err, "could not create %s", credentialsfile)
	}
	defer f.Close()

	_, err = f.Write(ciphertext)
	if err != nil {
		return errors.Wrap(err, "could not store credentials")
	}

	return errors.Wrap(f.Sync(), "could not store credentials")
}

// seal encrypts the payload with a key derived from the passphrase.
// The result is salt || nonce || ciphertext.
func seal(payload, passphrase []byte) ([]byte, error) {
	salt, err := sargon2.GenerateRandomBytes(saltKeyLength)
	if err != nil {
		return nil, errors.Wrap(err, "could not generate salt for credentials")
	}

	aead, err := chacha20poly1305.NewX(derive(passphrase, salt))
	if err != nil {
		return nil, errors.Wrap(err, "could not create AEAD")
	}
	nonce, err := sargon2.GenerateRandomBytes(uint32(aead.NonceSize()))
	if err != nil {
		return nil, errors.Wrap(err, "could not generate nonce for credentials")
	}

	ciphertext := aead.Seal(nil, nonce, payload, nil)
	ciphertext = append(nonce, ciphertext...)
	return append(salt, ciphertext...), nil
}

// open decrypts a payload sealed by seal.
func open(ciphertext, passphrase []byte) ([]byte, error) {
	if len(ciphertext) < saltKeyLength+chacha20poly1305.NonceSizeX {
		return nil, errors.New("credentials file is corrupted")
	}

	salt := ciphertext[:saltKeyLength]
	ciphertext = ciphertext[saltKeyLength:]

	aead, err := chacha20poly1305.NewX(derive(passphrase, salt))
	if err != nil {
		return nil, errors.Wrap(err, "could not create AEAD")
	}

	nonce := ciphertext[:aead.NonceSize()]
	ciphertext = ciphertext[aead.NonceSize():]

	payload, err := aead.Open(nil, nonce, ciphertext, nil)
	return payload, errors.Wrap(err, "could not decrypt credentials file")
}

func derive(passphrase, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 3, 64<<10, 2, chacha20poly1305.KeySize)
}

// connect returns a client authenticated with the configured session.
func connect(cfg Config) (libssk.Client, error) {
	client, err := libssk.NewDefaultClient(cfg.Endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "could not reach Shishikan endpoint")
	}

	if !cfg.Session.Defined() {
		return nil, errors.New("session is not defined, please login")
	}
	if cfg.Session.ExpiredAt(time.Now().Add(time.Minute)) {
		return nil, errors.New("session is about to expire, please login again")
	}
	client.SetSession(cfg.Session)

	return client, nil
}
