package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/getsops/sops/v3/decrypt"
	"github.com/spf13/viper"
)

const (
	baseName   = "properties"
	fileExt    = ".json"
	encryptExt = ".enc"
	envPrefix  = "RBAC"
)

// ErrNoProperties is returned when neither the plain nor the encrypted
// properties file exists.
var ErrNoProperties = errors.New("properties file not found")

// Properties reads properties[.<profile>].json from dir into a new T, falling
// back to properties[.<profile>].enc.json decrypted with sops. Environment
// variables prefixed with RBAC_ override keys present in the file, dots
// replaced by underscores.
func Properties[T any](dir string, profile ...string) (*T, error) {
	v := newViper()
	if err := read(v, dir, profile...); err != nil {
		return nil, err
	}
	config := new(T)
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to parse properties: %w", err)
	}
	return config, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("json")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func read(v *viper.Viper, dir string, profile ...string) error {
	fileName, err := fileNameFor(profile...)
	if err != nil {
		return err
	}
	filePath, isFileEncrypted, err := verifyFilePath(filepath.Join(dir, fileName))
	if err != nil {
		return err
	}
	data, err := readData(filePath, isFileEncrypted)
	if err != nil {
		return err
	}
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to parse properties file %s: %w", filePath, err)
	}
	return nil
}

func readData(filePath string, isFileEncrypted bool) ([]byte, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read properties file %s: %w", filePath, err)
	}
	if !isFileEncrypted {
		return data, nil
	}
	decryptedData, err := decrypt.Data(data, "json")
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt properties file %s: %w", filePath, err)
	}
	return decryptedData, nil
}

func verifyFilePath(fileName string) (string, bool, error) {
	filePath := fileName + fileExt
	if _, err := os.Stat(filePath); err == nil {
		return filePath, false, nil
	}

	encryptedPath := fileName + encryptExt + fileExt
	if _, err := os.Stat(encryptedPath); err == nil {
		return encryptedPath, true, nil
	}
	return "", false, fmt.Errorf("%w: %s", ErrNoProperties, filePath)
}

func fileNameFor(profile ...string) (string, error) {
	if len(profile) == 0 {
		return baseName, nil
	}
	if len(profile) > 1 {
		return "", errors.New("only one profile suffix is allowed")
	}
	if profile[0] == "" {
		return baseName, nil
	}
	return baseName + "." + profile[0], nil
}
