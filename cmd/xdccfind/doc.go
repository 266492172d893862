// Command xdccfind searches XDCC package indexes.
//
// Usage:
//
//	xdccfind search frieren -r 1080p -e latest
//	xdccfind search "dungeon meshi" -e 12 -o json
//	xdccfind serve
//	xdccfind config show
package main
