package track

import (
	"fmt"
	"os"
	"strings"

	"github.com/zangef1/SACPWorkflow/internal/constants"
	"github.com/zangef1/SACPWorkflow/internal/models"
)

// FileExists reports whether path names an existing regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// DirExists reports whether path names an existing directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// FilesWithExt lists the names of regular files in dir carrying the given
// extension, in directory order. A missing or unreadable dir yields nil.
func FilesWithExt(dir, ext string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		if entry.Type().IsRegular() && strings.HasSuffix(entry.Name(), ext) {
			names = append(names, entry.Name())
		}
	}
	return names
}

// LogVerdict is the result of probing a Gaussian run log.
type LogVerdict int

const (
	// LogMissing - no log file, the run has not started
	LogMissing LogVerdict = iota
	// LogIncomplete - log exists but lacks the termination marker
	LogIncomplete
	// LogComplete - log carries the termination marker
	LogComplete
	// LogUnreadable - log exists but could not be read
	LogUnreadable
)

// ProbeLog examines the log at path for the normal-termination marker.
// The detail string explains the verdict and doubles as the status
// column in list output.
func ProbeLog(path string) (LogVerdict, string) {
	if !FileExists(path) {
		return LogMissing, models.DetailNoLog
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return LogUnreadable, fmt.Sprintf("error reading log: %v", err)
	}
	if strings.Contains(string(content), constants.NormalTermination) {
		return LogComplete, models.DetailCompleted
	}
	return LogIncomplete, models.DetailIncomplete
}
