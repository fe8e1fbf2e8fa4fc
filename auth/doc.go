// Package auth issues and verifies HS256 access tokens, hashes passwords
// with bcrypt, and guards fiber routes behind a bearer token or token cookie.
package auth
