package dotenv

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Load читает .env и применяет флаг -port поверх PORT.
func Load() error {
	err := godotenv.Load()
	if err != nil {
		return err
	}

	var portFlag string
	flag.StringVar(&portFlag, "port", "", "Server port (overrides PORT environment variable)")
	flag.Parse()

	if portFlag != "" {
		err := os.Setenv("PORT", portFlag)
		if err != nil {
			return fmt.Errorf("failed to set PORT environment variable: %w", err)
		}
	}
	return nil
}

// LoadIfExists читает файл, если он есть, и не трогает флаги:
// у CLI с подкомандами свой разбор аргументов.
func LoadIfExists(filename string) (bool, error) {
	if _, err := os.Stat(filename); err != nil {
		return false, nil
	}
	if err := godotenv.Load(filename); err != nil {
		return false, fmt.Errorf("load %s: %w", filename, err)
	}
	return true, nil
}
