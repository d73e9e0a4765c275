package app

import (
	"fmt"
	"net"
)

// networkInterface is the part of net.Interface used for address detection
type networkInterface interface {
	Flags() net.Flags
	Addrs() ([]net.Addr, error)
}

// networkProvider lists the host's interfaces
type networkProvider interface {
	Interfaces() ([]networkInterface, error)
}

type realNetworkProvider struct{}

func (realNetworkProvider) Interfaces() ([]networkInterface, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	out := make([]networkInterface, len(ifaces))
	for i := range ifaces {
		out[i] = &ifaces[i]
	}
	return out, nil
}

// detectBaseURL builds the URL phones on the venue network use to reach the server
func detectBaseURL(provider networkProvider, port int) string {
	return fmt.Sprintf("http://%s:%d", lanAddress(provider), port)
}

// lanAddress returns the first private IPv4 address of an up, non-loopback
// interface. Without one it falls back to the first public IPv4 address,
// then to "localhost".
func lanAddress(provider networkProvider) string {
	ifaces, err := provider.Interfaces()
	if err != nil {
		return "localhost"
	}

	var fallback net.IP
	for _, iface := range ifaces {
		flags := iface.Flags()
		if flags&net.FlagUp == 0 || flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			ip := addrIP(addr)
			if ip == nil || ip.IsLoopback() {
				continue
			}
			if ip.IsPrivate() {
				return ip.String()
			}
			if fallback == nil {
				fallback = ip
			}
		}
	}

	if fallback != nil {
		return fallback.String()
	}
	return "localhost"
}

// addrIP extracts the IPv4 address of addr, or nil
func addrIP(addr net.Addr) net.IP {
	var ip net.IP
	switch v := addr.(type) {
	case *net.IPNet:
		ip = v.IP
	case *net.IPAddr:
		ip = v.IP
	}
	return ip.To4()
}
