package util

import (
	"os"
	"strings"
)

const EnvironmentPrefix = "BUSFARES_"

func GetEnvironmentVariables() map[string]string {
	environmentVariables := map[string]string{}

	for _, variable := range os.Environ() {
		pair := strings.SplitN(variable, "=", 2)
		if len(pair) != 2 {
			continue
		}

		environmentVariables[pair[0]] = pair[1]
	}

	return environmentVariables
}

// GetEnvironmentVariable looks up BUSFARES_<name>, returning defaultValue when unset or empty
func GetEnvironmentVariable(name string, defaultValue string) string {
	if value := os.Getenv(EnvironmentPrefix + name); value != "" {
		return value
	}

	return defaultValue
}
