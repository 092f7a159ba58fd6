package password

import "golang.org/x/crypto/bcrypt"

// Cost is the bcrypt work factor for every stored credential. The service
// hashes signup, change and reset passwords at the same factor.
const Cost = 12

func Hash(plain string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func Compare(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
