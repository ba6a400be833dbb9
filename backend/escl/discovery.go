package escl

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/grandcat/zeroconf"

	"github.com/scanbridge/scanbridge/internal/logging"
)

// serviceTypes lists the three service types real devices advertise
// eSCL under: the plain HTTP form, the HTTPS form, and Apple's
// AirScan-branded variant, which are functionally identical on the
// wire.
var serviceTypes = []string{
	"_uscan._tcp",
	"_uscans._tcp",
	"_airscan._tcp",
}

// DefaultDiscoveryTimeout bounds how long discover waits for mDNS
// responses on each service type.
const DefaultDiscoveryTimeout = 10 * time.Second

// discover browses all known eSCL service types and returns the
// distinct devices found, deduplicated by derived ID. It never
// returns an error for a quiet network: a service type nobody
// responds to just contributes nothing.
func discover(ctx context.Context, timeout time.Duration) []device {
	log := logging.Component("backend.escl.discovery")

	if timeout <= 0 {
		timeout = DefaultDiscoveryTimeout
	}

	var (
		mu    sync.Mutex
		found = make(map[string]device)
		wg    sync.WaitGroup
	)

	for _, svc := range serviceTypes {
		svc := svc

		resolver, err := zeroconf.NewResolver(nil)
		if err != nil {
			log.Warn().Err(err).Str("service", svc).Msg("failed to create mDNS resolver")
			continue
		}

		entries := make(chan *zeroconf.ServiceEntry, 16)
		browseCtx, cancel := context.WithTimeout(ctx, timeout)

		if err := resolver.Browse(browseCtx, svc, "local.", entries); err != nil {
			log.Warn().Err(err).Str("service", svc).Msg("mDNS browse failed")
			cancel()
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer cancel()

			for entry := range entries {
				d, ok := entryToDevice(entry, svc)
				if !ok {
					continue
				}

				mu.Lock()
				found[d.id] = d
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	devices := make([]device, 0, len(found))
	for _, d := range found {
		devices = append(devices, d)
	}
	return devices
}

// entryToDevice converts a resolved mDNS service entry into a device,
// preferring an IPv4 address when both families are present. svcType
// determines whether the device is addressed over HTTPS: the secure
// eSCL type and Apple's AirScan variant both imply TLS.
func entryToDevice(entry *zeroconf.ServiceEntry, svcType string) (device, bool) {
	if entry == nil {
		return device{}, false
	}

	var host string
	switch {
	case len(entry.AddrIPv4) > 0:
		host = entry.AddrIPv4[0].String()
	case len(entry.AddrIPv6) > 0:
		host = entry.AddrIPv6[0].String()
	default:
		return device{}, false
	}

	name := strings.TrimSuffix(entry.Instance, ".")
	useHTTPS := strings.Contains(svcType, "uscans") || strings.Contains(svcType, "airscan")

	return device{
		id:       deviceID(name),
		name:     name,
		host:     host,
		port:     entry.Port,
		useHTTPS: useHTTPS,
	}, true
}

// deviceID namespace used to derive a stable, collision-resistant
// device ID from an mDNS instance name. The same device re-discovered
// across separate discover calls (or readvertised after the scanner
// reboots) must come back with the same ID, since registry.Registry
// and callers key scan jobs by it.
var deviceIDNamespace = uuid.MustParse("6f7a6e5e-6b0e-4f0e-9f0a-8e6f7f5b9a1a")

// deviceID derives a stable "escl_" prefixed ID from the device's mDNS
// instance name alone, so one device advertised under several service
// types collapses to a single ID.
func deviceID(name string) string {
	return "escl_" + uuid.NewSHA1(deviceIDNamespace, []byte(name)).String()
}
