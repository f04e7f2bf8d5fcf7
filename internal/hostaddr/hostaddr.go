// Package hostaddr resolves a best-effort local network address used only
// to label this host's entries in the shared alert log.
package hostaddr

import (
	"net"
	"os"
)

// Loopback is the final fallback when no address can be resolved.
const Loopback = "127.0.0.1"

// Resolve returns the primary local IPv4 address. It dials a UDP socket
// toward a public address to learn the preferred outbound interface; no
// traffic is sent. Falls back to a hostname lookup, then to the loopback
// address. Resolve never fails.
func Resolve() string {
	if conn, err := net.Dial("udp4", "8.8.8.8:80"); err == nil {
		defer conn.Close()
		if addr, ok := conn.LocalAddr().(*net.UDPAddr); ok {
			return addr.IP.String()
		}
	}

	host, err := net.LookupHost(hostname())
	if err == nil {
		for _, addr := range host {
			if ip := net.ParseIP(addr); ip != nil && ip.To4() != nil && !ip.IsLoopback() {
				return addr
			}
		}
	}

	return Loopback
}

func hostname() string {
	name, err := os.Hostname()
	if err != nil {
		return "localhost"
	}
	return name
}
