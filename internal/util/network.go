// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import "net/netip"

// probeNetworks are the ranges orchestrator probes, sidecars and the host
// itself connect from.
var probeNetworks = []netip.Prefix{
	netip.MustParsePrefix("127.0.0.0/8"),    // loopback
	netip.MustParsePrefix("10.0.0.0/8"),     // RFC 1918
	netip.MustParsePrefix("172.16.0.0/12"),  // RFC 1918
	netip.MustParsePrefix("192.168.0.0/16"), // RFC 1918
	netip.MustParsePrefix("100.64.0.0/10"),  // RFC 6598, used by some cluster overlays
	netip.MustParsePrefix("169.254.0.0/16"), // link-local
	netip.MustParsePrefix("::1/128"),
	netip.MustParsePrefix("fc00::/7"),  // unique local
	netip.MustParsePrefix("fe80::/10"), // link-local
}

// IsInternalAddr reports whether a connection's remote address (host:port
// or a bare IP) belongs to a loopback or private network peer. Unparsable
// addresses are not internal.
func IsInternalAddr(remoteAddr string) bool {
	var addr netip.Addr
	if ap, err := netip.ParseAddrPort(remoteAddr); err == nil {
		addr = ap.Addr()
	} else if a, err := netip.ParseAddr(remoteAddr); err == nil {
		addr = a
	} else {
		return false
	}
	return IsInternalIP(addr)
}

// IsInternalIP reports whether addr falls in a probe network. IPv4-mapped
// IPv6 addresses are checked as IPv4; zones are ignored.
func IsInternalIP(addr netip.Addr) bool {
	addr = addr.Unmap().WithZone("")
	for _, p := range probeNetworks {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
