//go:build !(windows && debug)

package platform

func SetupConsole() {}
