package utils

import "github.com/spf13/viper"

func ViperGetIntWithDefault(key string, defaultValue int) int {
	v := viper.GetInt(key)
	if v == 0 {
		return defaultValue
	}
	return v
}

func ViperGetStringWithDefault(key string, defaultValue string) string {
	v := viper.GetString(key)
	if v == "" {
		return defaultValue
	}
	return v
}
