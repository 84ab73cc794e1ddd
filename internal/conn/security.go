package conn

import "fmt"

// SecurityMode selects how a connection is secured.
type SecurityMode string

const (
	SecurityNone   SecurityMode = "none"   // Plaintext, local development only
	SecurityTLS    SecurityMode = "tls"    // Server TLS with optional CA pinning
	SecurityWallet SecurityMode = "wallet" // Credential wallet directory
)

// Security is a tagged variant of connection-security strategies. Exactly
// the fields for the selected Mode are meaningful; factories switch on Mode
// exhaustively rather than probing an open-ended option map.
type Security struct {
	Mode SecurityMode `yaml:"mode"`

	// TLS fields (Mode == SecurityTLS)
	RootCAPath         string `yaml:"root_ca_path"`
	InsecureSkipVerify bool   `yaml:"insecure_skip_verify"`

	// Wallet fields (Mode == SecurityWallet)
	WalletDir      string `yaml:"wallet_dir"`
	WalletPassword string `yaml:"wallet_password"`
}

// Validate checks that the variant is internally consistent.
func (s Security) Validate() error {
	switch s.Mode {
	case SecurityNone, "":
		return nil
	case SecurityTLS:
		if s.InsecureSkipVerify && s.RootCAPath != "" {
			return fmt.Errorf("security: root_ca_path is ignored when insecure_skip_verify is set")
		}
		return nil
	case SecurityWallet:
		if s.WalletDir == "" {
			return fmt.Errorf("security: wallet mode requires wallet_dir")
		}
		return nil
	default:
		return fmt.Errorf("security: unknown mode %q", s.Mode)
	}
}
