//go:build !linux && !darwin

package platform

// Notify does nothing where no notification service is wired up.
func Notify(string, string, string, Options) error {
	return nil
}
