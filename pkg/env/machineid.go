package env

import (
	"os"

	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"
)

// AppID scopes the protected machine ID so it is not the raw host ID.
const AppID = "fpctl"

// MachineID retrieves an ID identifying this host, falling back to
// the hostname when the platform ID is unavailable.
func MachineID() string {
	id, err := machineid.ProtectedID(AppID)
	if err == nil {
		return id[:12]
	}
	glog.Warningf("machine id: %v", err)
	if host, err := os.Hostname(); err == nil {
		return host
	}
	return "unknown"
}
