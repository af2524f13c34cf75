package logutil

import "log"

// LogError logs err with context when err is non-nil.
func LogError(context string, err error) {
	if err != nil {
		log.Printf("%s: %v", context, err)
	}
}

// MustSucceed logs and exits on error. Only for startup wiring.
func MustSucceed(context string, err error) {
	if err != nil {
		log.Fatalf("%s: %v", context, err)
	}
}
