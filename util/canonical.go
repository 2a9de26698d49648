// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"net"
	"strconv"
	"strings"

	"github.com/bitmark-inc/overlayd/fault"
)

// SplitIPandPort - split an IP:Port into a canonical IP string and
// a port number
//
// examples:
//   IPv4:  127.0.0.1:1234   -> "127.0.0.1", 1234
//   IPv6:  [::1]:1234       -> "::1", 1234
func SplitIPandPort(hostPort string) (string, uint16, error) {

	host, port, err := net.SplitHostPort(strings.TrimSpace(hostPort))
	if nil != err {
		return "", 0, err
	}

	IP := net.ParseIP(strings.Trim(host, " "))
	if nil == IP {
		return "", 0, fault.ErrInvalidIPAddress
	}

	numericPort, err := strconv.Atoi(strings.Trim(port, " "))
	if nil != err {
		return "", 0, err
	}
	if numericPort < 1 || numericPort > 65535 {
		return "", 0, fault.ErrInvalidPortNumber
	}

	return IP.String(), uint16(numericPort), nil
}

// CanonicalIPandPort - make the IP:Port canonical
//
// examples:
//   IPv4:  127.0.0.1:1234
//   IPv6:  [::1]:1234
func CanonicalIPandPort(host string, port uint16) string {
	return net.JoinHostPort(host, strconv.Itoa(int(port)))
}
