package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

const dotenvFile = ".env"

// lookupEnv reads key from the process environment, falling back to a .env
// file in the working directory. The process environment always wins, and
// the .env file never modifies it.
func lookupEnv(key string) (string, bool, error) {
	if value, ok := os.LookupEnv(key); ok {
		return value, true, nil
	}
	values, err := godotenv.Read(dotenvFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read %s: %w", dotenvFile, err)
	}
	value, ok := values[key]
	return value, ok, nil
}
