package app

import (
	"github.com/coreos/go-systemd/v22/daemon"

	"appi/pkg/logging"
)

// States sent to the service manager.
const (
	SdNotifyReady     = daemon.SdNotifyReady
	SdNotifyStopping  = daemon.SdNotifyStopping
	SdNotifyReloading = daemon.SdNotifyReloading
)

// Notifier reports a state change to the service manager. It returns false
// when no service manager is listening.
type Notifier func(state string) (bool, error)

// SystemdNotifier notifies systemd through NOTIFY_SOCKET. Outside systemd it
// does nothing.
func SystemdNotifier(state string) (bool, error) {
	return daemon.SdNotify(false, state)
}

func (a *Application) notifyState(state string) {
	if a.notify == nil {
		return
	}
	sent, err := a.notify(state)
	if err != nil {
		logging.Warn("Systemd", "Failed to notify %s: %v", state, err)
		return
	}
	if sent {
		logging.Debug("Systemd", "Notified %s", state)
	}
}
