//go:build race
// +build race

package main

func init() {
	raceDetector = true
}
