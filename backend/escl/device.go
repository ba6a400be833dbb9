// Package escl implements the eSCL (AirPrint/AirScan) network scanner
// backend: mDNS discovery of _uscan._tcp/_uscans._tcp/_airscan._tcp
// services, and an abstract.Backend/abstract.Session pair that drives
// the ScanJobs HTTP lifecycle against a discovered device.
package escl

import (
	"strconv"
	"strings"
)

// device describes one discovered eSCL scanner: enough to build its
// base URL and to talk to it over HTTP.
//
// Ported from the EsclDevice struct of the reference eSCL client this
// backend was modeled on: id/name/host/port/useHTTPS plus a base-URL
// builder that brackets IPv6 hosts and omits the scheme's default
// port.
type device struct {
	id       string
	name     string
	host     string
	port     int
	useHTTPS bool
}

// baseURL returns the device's eSCL root endpoint, e.g.
// "http://192.168.1.50/eSCL" or "https://[fe80::1]:8443/eSCL".
func (d device) baseURL() string {
	scheme := "http"
	if d.useHTTPS {
		scheme = "https"
	}

	host := d.host
	if strings.Contains(host, ":") && !strings.HasPrefix(host, "[") {
		host = "[" + host + "]"
	}

	if d.port == 80 || d.port == 443 {
		return scheme + "://" + host + "/eSCL"
	}
	return scheme + "://" + host + ":" + strconv.Itoa(d.port) + "/eSCL"
}
