package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a plaintext password with configured cost.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}

// CredentialVerifier answers pass/fail for a password against a stored hash.
type CredentialVerifier interface {
	Verify(hashed, plain string) bool
}

// BcryptVerifier checks bcrypt hashes.
type BcryptVerifier struct{}

// Verify implements CredentialVerifier.
func (BcryptVerifier) Verify(hashed, plain string) bool {
	return ComparePassword(hashed, plain) == nil
}
