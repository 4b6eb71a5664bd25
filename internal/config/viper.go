// Package config provides Viper-backed configuration helpers for the
// odml command line tooling.
package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/g-node/odml-go/pkg/odml"
)

// GetString is a helper to get string values from Viper.
// It checks both OS environment variables and Viper configuration.
func GetString(key string) string {
	// Check OS env directly first
	osValue := os.Getenv(key)
	viperValue := viper.GetString(key)

	// If Viper doesn't have it but OS does, return OS value
	if viperValue == "" && osValue != "" {
		return osValue
	}
	return viperValue
}

// MergePolicy resolves the merge policy from configuration, falling
// back to def when the key is unset or unrecognized.
func MergePolicy(key string, def odml.MergePolicy) odml.MergePolicy {
	raw := GetString(key)
	if raw == "" {
		return def
	}
	policy, err := odml.ParseMergePolicy(raw)
	if err != nil {
		return def
	}
	return policy
}

// TerminologyPath resolves the terminology file path from
// configuration, expanding a leading "~" to the user home directory.
func TerminologyPath(key string) string {
	path := GetString(key)
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = home + path[1:]
		}
	}
	return path
}
