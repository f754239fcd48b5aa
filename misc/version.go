// Package misc keeps build time information.
package misc

var (
	// set by the linker
	version = "dev"
	gitHash = "unknown"
	appName = "docrender"
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
