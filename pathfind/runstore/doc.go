// Package runstore keeps completed search runs in memory, optionally backed
// by JSON files on disk so runs survive restarts.
package runstore
