package credentials

import "golang.org/x/crypto/bcrypt"

// bcrypt work factor, fixed for all locally stored passwords.
const hashCost = 10

// HashPassword hashes a plaintext password with a randomized salt. It only
// fails on a misconfigured cost, which is a fatal setup error.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", err
	}

	return string(bytes), nil
}

// VerifyPassword reports whether password matches the stored hash. Any
// mismatch, including a malformed or sentinel stored value, is false;
// it never fails outright.
func VerifyPassword(hash string, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
