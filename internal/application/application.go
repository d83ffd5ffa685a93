package application

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

const (
	// AppName is the application name used for directories and identification
	AppName = "nofan"

	// AppExeName is the executable name (without extension)
	AppExeName = "nofan"

	// AppExeNameWindows is the executable name on Windows
	AppExeNameWindows = "nofan.exe"

	// ServiceName is the name the notifier is registered under
	ServiceName = "nofan-notifier"

	// ConfigFileName is the config file inside the application directory
	ConfigFileName = "config.json"

	// NotifierStateFileName is the notifier's bbolt state file
	NotifierStateFileName = "notifier.db"

	// NotifierLogFileName is the notifier's log file
	NotifierLogFileName = "notifier.log"

	// NotifierRegistrationFileName records the detached notifier process
	NotifierRegistrationFileName = "notifier.json"
)

// Version is overridden at build time with -ldflags "-X ...application.Version=".
var Version = "0.1.0"

var (
	once   sync.Once
	appDir string
	errDir error
)

// GetApplicationDirectory returns the nofan configuration directory path.
// Linux: ~/.config/nofan (via os.UserConfigDir)
// Windows: C:\Users\{username}\AppData\Local\nofan (via os.UserCacheDir)
func GetApplicationDirectory() (string, error) {
	once.Do(lazyLoad)

	if errDir != nil {
		return "", errDir
	}

	return appDir, errDir
}

// ExecutableName returns the platform specific executable name.
func ExecutableName() string {
	if runtime.GOOS == "windows" {
		return AppExeNameWindows
	}

	return AppExeName
}

func lazyLoad() {
	var (
		baseDir string
		err     error
	)

	switch runtime.GOOS {
	case "windows":
		// Windows: use AppData\Local (via UserCacheDir)
		baseDir, err = os.UserCacheDir()
	default:
		// Linux/others: use ~/.config (via UserConfigDir)
		baseDir, err = os.UserConfigDir()
	}

	if err != nil {
		errDir = fmt.Errorf("failed to get config directory: %w", err)
	}

	appDir = filepath.Join(baseDir, AppName)
}
