package utils

import "golang.org/x/crypto/bcrypt"

const bcryptCost = 12

// HashPassword хеширует пароль администратора для хранения в конфигурации.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
