package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
)

// LoadEnvFile merges a .env file into the process environment. Variables already
// set win. A missing file is not an error; the bool reports whether one was read.
func LoadEnvFile(path string) (bool, error) {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
