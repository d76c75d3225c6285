package ipc

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// SocketPath locates the window manager IPC socket. It checks the SWAYSOCK
// and I3SOCK environment variables first, then asks whichever of sway/i3
// is installed via --get-socketpath.
func SocketPath() (string, error) {
	if path := os.Getenv("SWAYSOCK"); path != "" {
		return path, nil
	}
	if path := os.Getenv("I3SOCK"); path != "" {
		return path, nil
	}

	for _, wm := range []string{"sway", "i3"} {
		bin, err := exec.LookPath(wm)
		if err != nil {
			continue
		}
		out, err := exec.Command(bin, "--get-socketpath").Output()
		if err != nil {
			continue
		}
		if path := strings.TrimSpace(string(out)); path != "" {
			return path, nil
		}
	}

	return "", fmt.Errorf("cannot locate window manager socket: SWAYSOCK and I3SOCK are unset and --get-socketpath failed")
}
