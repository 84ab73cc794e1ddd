package conn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecurity_Validate(t *testing.T) {
	cases := []struct {
		name    string
		sec     Security
		wantErr bool
	}{
		{"none", Security{Mode: SecurityNone}, false},
		{"empty defaults to none", Security{}, false},
		{"tls plain", Security{Mode: SecurityTLS}, false},
		{"tls with ca", Security{Mode: SecurityTLS, RootCAPath: "/etc/certs/ca.pem"}, false},
		{"tls skip-verify", Security{Mode: SecurityTLS, InsecureSkipVerify: true}, false},
		{"tls skip-verify with ca is contradictory", Security{Mode: SecurityTLS, InsecureSkipVerify: true, RootCAPath: "/x"}, true},
		{"wallet", Security{Mode: SecurityWallet, WalletDir: "/etc/wallet"}, false},
		{"wallet without dir", Security{Mode: SecurityWallet}, true},
		{"unknown mode", Security{Mode: "kerberos"}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.sec.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
