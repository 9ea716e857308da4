package configs

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed users.toml
var defaultUsers []byte

// usersFile is the layout of a USERS_FILE document.
type usersFile struct {
	Users map[string]string `toml:"users"`
}

// LoadUsers reads the account table from a TOML file.
// An empty path selects the embedded demo accounts.
func LoadUsers(path string) (map[string]string, error) {
	data := defaultUsers

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read users file: %w", err)
		}
		data = b
	}

	var f usersFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse users file: %w", err)
	}

	if len(f.Users) == 0 {
		return nil, fmt.Errorf("users file defines no accounts")
	}

	return f.Users, nil
}
