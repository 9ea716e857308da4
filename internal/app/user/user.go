/*
Package user holds the account directory used by the login form.

Accounts come from configuration as username/password pairs. Passwords are hashed with
bcrypt when the directory is built, so plaintext never stays in memory past startup.
*/
package user

import (
	"fmt"
	"sort"

	"golang.org/x/crypto/bcrypt"
)

// Account is one login identity.
type Account struct {
	// Username is the login name and the key of the user's homepage.
	Username string

	// PasswordHash is the bcrypt hash of the account password.
	PasswordHash []byte
}

// Directory verifies login credentials against a fixed set of accounts.
type Directory struct {
	accounts map[string]Account

	// dummyHash is compared against for unknown usernames so a miss costs the same
	// time as a wrong password.
	dummyHash []byte
}

// NewDirectory hashes every password with the given bcrypt cost.
func NewDirectory(passwords map[string]string, cost int) (*Directory, error) {
	d := &Directory{accounts: make(map[string]Account, len(passwords))}

	for username, password := range passwords {
		if username == "" {
			return nil, fmt.Errorf("account with empty username")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password for %q: %w", username, err)
		}

		d.accounts[username] = Account{Username: username, PasswordHash: hash}
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte("livefeed-unknown-account"), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash placeholder password: %w", err)
	}
	d.dummyHash = dummy

	return d, nil
}

// Verify reports whether password matches the account named username.
func (d *Directory) Verify(username, password string) bool {
	account, ok := d.accounts[username]
	if !ok {
		_ = bcrypt.CompareHashAndPassword(d.dummyHash, []byte(password))
		return false
	}

	return bcrypt.CompareHashAndPassword(account.PasswordHash, []byte(password)) == nil
}

// Usernames returns the known usernames in sorted order.
func (d *Directory) Usernames() []string {
	names := make([]string, 0, len(d.accounts))
	for name := range d.accounts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
