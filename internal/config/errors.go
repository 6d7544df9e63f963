package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrLoadingConfigFile = errors.New("failed to load config file")
	ErrMissingSetting    = errors.New("missing required setting")
)

func ErrorLoadingConfigFile(path string, cause error) error {
	return fmt.Errorf("%w: path=%s cause=%v", ErrLoadingConfigFile, path, cause)
}

func ErrorMissingSetting(keys ...string) error {
	return fmt.Errorf("%w: keys=%s", ErrMissingSetting, strings.Join(keys, ","))
}
