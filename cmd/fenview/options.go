package main

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/alex65536/fenview/internal/util/idgen"
	"github.com/alex65536/fenview/internal/webui"
)

type HTTPSOptions struct {
	Port                 int      `toml:"port"`
	ExposeInsecure       bool     `toml:"expose-insecure"`
	AllowedSecureDomains []string `toml:"allowed-secure-domains"`
	CachePath            string   `toml:"cache-path"`
}

type Options struct {
	Host         string        `toml:"host"`
	Port         int           `toml:"port"`
	Data         string        `toml:"data"`
	FetchTimeout time.Duration `toml:"fetch-timeout"` // zero means no timeout
	HTTPS        *HTTPSOptions `toml:"https"`
	WebUI        webui.Options `toml:"webui"`

	csrfKey []byte
}

func (o *Options) FillDefaults() {
	if o.Host == "" {
		o.Host = "127.0.0.1"
	}
	if o.Port == 0 {
		o.Port = 8080
	}
	if o.Data == "" {
		o.Data = "fen.txt"
	}
	if o.HTTPS != nil && o.HTTPS.Port == 0 {
		o.HTTPS.Port = 443
	}
	if o.HTTPS == nil {
		o.WebUI.InsecureCookies = true
	}
	o.WebUI.FillDefaults()
}

func (o *Options) AddrWithPort() string {
	return net.JoinHostPort(o.Host, strconv.Itoa(o.Port))
}

func (o *Options) SecureAddrWithPort() string {
	return net.JoinHostPort(o.Host, strconv.Itoa(o.HTTPS.Port))
}

func (o *Options) MixSecrets(s *Secrets) error {
	key, err := idgen.DecodeKey(s.CSRFKey)
	if err != nil {
		return fmt.Errorf("csrf key: %w", err)
	}
	if len(key) != csrfKeyLen {
		return fmt.Errorf("csrf key: must be %v bytes long", csrfKeyLen)
	}
	o.csrfKey = key
	return nil
}

func readOptions(path string) (Options, error) {
	var opts Options
	if path == "" {
		return opts, nil
	}
	rawOpts, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("read options: %w", err)
	}
	if err := toml.Unmarshal(rawOpts, &opts); err != nil {
		return Options{}, fmt.Errorf("unmarshal options: %w", err)
	}
	return opts, nil
}

const csrfKeyLen = 32

type Secrets struct {
	CSRFKey string `toml:"csrf-key"`
}

func (s *Secrets) GenerateMissing() (bool, error) {
	if s.CSRFKey != "" {
		return false, nil
	}
	key, err := idgen.SecureKey(csrfKeyLen)
	if err != nil {
		return false, fmt.Errorf("csrf key: %w", err)
	}
	s.CSRFKey = key
	return true, nil
}

// readSecrets loads the secrets file, generating the missing secrets and writing them back.
func readSecrets(path string) (Secrets, error) {
	rawSecrets, err := os.ReadFile(path)
	if err != nil {
		rawSecrets = nil
		if !errors.Is(err, os.ErrNotExist) {
			return Secrets{}, fmt.Errorf("read secrets: %w", err)
		}
	}
	var secrets Secrets
	if err := toml.Unmarshal(rawSecrets, &secrets); err != nil {
		return Secrets{}, fmt.Errorf("unmarshal secrets: %w", err)
	}
	secretsChanged, err := secrets.GenerateMissing()
	if err != nil {
		return Secrets{}, fmt.Errorf("generate secrets: %w", err)
	}
	if secretsChanged {
		newRawSecrets, err := toml.Marshal(&secrets)
		if err != nil {
			return Secrets{}, fmt.Errorf("marshal secrets: %w", err)
		}
		if err := os.WriteFile(path, newRawSecrets, 0600); err != nil {
			return Secrets{}, fmt.Errorf("write secrets: %w", err)
		}
	}
	return secrets, nil
}
