package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/mintex-network/mintex-daemon/pkg/crypto"
)

const (
	// BankHostKey is the host the bank's RPC interface listens on
	BankHostKey = "BANK_HOST"
	// BankPortKey is the port of the bank's RPC interface
	BankPortKey = "BANK_PORT"
	// NotaryHostKey is the host the notary's RPC interface listens on
	NotaryHostKey = "NOTARY_HOST"
	// NotaryPortKey is the port of the notary's RPC interface
	NotaryPortKey = "NOTARY_PORT"
	// BankPublicKeyKey is the bank's authority public key in compressed hex,
	// used to verify signed bank responses
	BankPublicKeyKey = "BANK_PUBLIC_KEY"
	// NotaryPublicKeyKey is the notary's authority public key in compressed hex
	NotaryPublicKeyKey = "NOTARY_PUBLIC_KEY"
	// RequestTimeoutKey is the duration to wait for RPC responses before timing out
	RequestTimeoutKey = "REQUEST_TIMEOUT"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// DatadirKey is the local data directory to store the CLI state
	DatadirKey = "DATA_DIR_PATH"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("mintex-daemon", false)

func init() {
	vip = viper.New()
	vip.SetEnvPrefix("MINTEX")
	vip.AutomaticEnv()

	vip.SetDefault(BankHostKey, "127.0.0.1")
	vip.SetDefault(BankPortKey, 9091)
	vip.SetDefault(NotaryHostKey, "127.0.0.1")
	vip.SetDefault(NotaryPortKey, 9092)
	vip.SetDefault(RequestTimeoutKey, 15*time.Second)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(DatadirKey, defaultDatadir)

	if err := validate(); err != nil {
		log.WithError(err).Panic("error while validating config")
	}

	if err := initDatadir(); err != nil {
		log.WithError(err).Panic("error while creating datadir")
	}
}

//GetString ...
func GetString(key string) string {
	return vip.GetString(key)
}

//GetInt ...
func GetInt(key string) int {
	return vip.GetInt(key)
}

//GetDuration ...
func GetDuration(key string) time.Duration {
	return vip.GetDuration(key)
}

//GetBool ...
func GetBool(key string) bool {
	return vip.GetBool(key)
}

// Set a value for the given key
func Set(key string, value interface{}) {
	vip.Set(key, value)
}

// IsSet returns whether the give key is set
func IsSet(key string) bool {
	return vip.IsSet(key)
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

// BankEndpoint returns the bank RPC endpoint url.
func BankEndpoint() string {
	return fmt.Sprintf("http://%s:%d", GetString(BankHostKey), GetInt(BankPortKey))
}

// NotaryEndpoint returns the notary RPC endpoint url.
func NotaryEndpoint() string {
	return fmt.Sprintf("http://%s:%d", GetString(NotaryHostKey), GetInt(NotaryPortKey))
}

// BankPublicKey parses the configured bank authority key. It is required
// for any bank query: signed responses cannot be verified without it.
func BankPublicKey() (*btcec.PublicKey, error) {
	return authorityKey(BankPublicKeyKey, "bank")
}

// NotaryPublicKey parses the configured notary authority key.
func NotaryPublicKey() (*btcec.PublicKey, error) {
	return authorityKey(NotaryPublicKeyKey, "notary")
}

func authorityKey(key, role string) (*btcec.PublicKey, error) {
	raw := GetString(key)
	if raw == "" {
		return nil, fmt.Errorf("%s public key is not configured, set MINTEX_%s", role, key)
	}
	pub, err := crypto.ParsePublicKey(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s public key: %w", role, err)
	}
	return pub, nil
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("datadir must not be null")
	}

	if GetInt(BankPortKey) <= 0 || GetInt(BankPortKey) > 65535 {
		return fmt.Errorf("bank port out of range")
	}
	if GetInt(NotaryPortKey) <= 0 || GetInt(NotaryPortKey) > 65535 {
		return fmt.Errorf("notary port out of range")
	}
	if GetDuration(RequestTimeoutKey) <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}

	// the authority keys are checked eagerly when present but stay optional:
	// they are only required once a signed response has to be verified
	for _, key := range []string{BankPublicKeyKey, NotaryPublicKeyKey} {
		if raw := GetString(key); raw != "" {
			if _, err := crypto.ParsePublicKey(raw); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
		}
	}
	return nil
}

func initDatadir() error {
	return makeDirectoryIfNotExists(GetDatadir())
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}

// StatePath returns the location of the CLI state file inside the datadir.
func StatePath() string {
	return filepath.Join(GetDatadir(), "state.json")
}
