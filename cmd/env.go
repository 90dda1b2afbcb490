package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/colsched/colsched/common"
	"github.com/joho/godotenv"
)

// loadEnvFile reads KEY=VALUE pairs from the .env file into the process
// environment without overriding variables that are already set. A
// missing default file is ignored; a missing file named by
// COLSCHED_ENV_FILE is an error.
func loadEnvFile() error {
	path := os.Getenv(common.EnvFileEnv)
	explicit := path != ""
	if !explicit {
		path = common.DefaultEnvFile
	}
	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load env file %s: %w", path, err)
}
