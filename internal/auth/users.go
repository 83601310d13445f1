// Socialscope - Social Media Insights API Gateway
// Copyright 2026 Socialscope contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import "crypto/subtle"

// CredentialTable is the fixed username/password table, loaded once from
// configuration at startup. It is read-only after construction, so it is safe
// for concurrent use without locking.
type CredentialTable struct {
	users map[string]string
}

// NewCredentialTable builds a table from a username->password map.
func NewCredentialTable(users map[string]string) *CredentialTable {
	copied := make(map[string]string, len(users))
	for username, password := range users {
		copied[username] = password
	}
	return &CredentialTable{users: copied}
}

// Authenticate reports whether the supplied pair matches the table. The
// password comparison is constant-time for equal-length inputs.
func (t *CredentialTable) Authenticate(username, password string) bool {
	stored, ok := t.users[username]
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

// Len returns the number of configured users.
func (t *CredentialTable) Len() int {
	return len(t.users)
}
