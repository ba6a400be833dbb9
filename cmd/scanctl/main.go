// Command scanctl is a scriptable CLI front end over the ScanBridge
// registry: list visible scanners, print a device's capabilities, or
// run a scan and write the pages it produces to disk.
package main

import "os"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
