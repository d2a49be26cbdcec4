package config

import "os"

func IsDebug() bool {
	return os.Getenv("ASTRAX_DEBUG") == "1"
}
