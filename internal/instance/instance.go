// Package instance prevents two copies of the program from hooking the same
// input devices at once.
package instance

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/pkg/errors"
)

// SingleInstance provides functionality to prevent multiple instances of the application
type SingleInstance struct {
	lockFile *os.File
	lockPath string
}

// NewSingleInstance creates a lock named after appName in dir. An empty dir
// selects the system temp directory.
func NewSingleInstance(appName, dir string) *SingleInstance {
	if dir == "" {
		dir = os.TempDir()
	}
	return &SingleInstance{
		lockPath: filepath.Join(dir, fmt.Sprintf("%s.lock", appName)),
	}
}

// LockPath returns the path of the lock file.
func (si *SingleInstance) LockPath() string {
	return si.lockPath
}

// TryLock attempts to acquire the lock. It returns false if another live
// process holds it.
func (si *SingleInstance) TryLock() (bool, error) {
	file, err := os.OpenFile(si.lockPath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0600)
	if err != nil {
		if os.IsExist(err) {
			return si.checkExistingInstance()
		}
		return false, errors.Wrap(err, "create lock file")
	}

	if _, err := file.WriteString(strconv.Itoa(os.Getpid())); err != nil {
		file.Close()
		os.Remove(si.lockPath)
		return false, errors.Wrap(err, "write PID to lock file")
	}

	si.lockFile = file
	return true, nil
}

// checkExistingInstance takes over the lock if the owning process is gone.
func (si *SingleInstance) checkExistingInstance() (bool, error) {
	running, _, err := si.RunningInstance()
	if err == nil && running {
		return false, nil
	}

	if err := os.Remove(si.lockPath); err != nil && !os.IsNotExist(err) {
		return false, errors.Wrap(err, "remove stale lock file")
	}
	return si.TryLock()
}

// RunningInstance reports whether the PID recorded in the lock file belongs
// to a live process.
func (si *SingleInstance) RunningInstance() (bool, int, error) {
	data, err := os.ReadFile(si.lockPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, 0, nil
		}
		return false, 0, err
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return false, 0, errors.Errorf("invalid PID in lock file: %q", string(data))
	}

	return isProcessRunning(pid), pid, nil
}

// Release releases the lock when the application is shutting down
func (si *SingleInstance) Release() {
	if si.lockFile == nil {
		return
	}
	si.lockFile.Close()
	si.lockFile = nil
	os.Remove(si.lockPath)
}

func isProcessRunning(pid int) bool {
	if pid <= 0 {
		return false
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	// Signal 0 probes for existence without delivering anything.
	return process.Signal(syscall.Signal(0)) == nil
}
