package core

import (
	"fmt"
	"os"

	"github.com/google/uuid"
)

// defaultClientUID builds an identity string for diagnostics: it is what
// PutNowait/GetNowait/PeekReverseNowait report in InUseError.User and what the producer/consumer
// keys are set to. It need not be globally unique, only distinguishing
// enough for a human reading logs to tell two holders apart.
func defaultClientUID() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "unknown-host"
	}
	return fmt.Sprintf("%s_pid%d_%s", host, os.Getpid(), uuid.NewString()[:8])
}
