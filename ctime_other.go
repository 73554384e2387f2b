//go:build !linux && !darwin && !windows

package main

import (
	"os"
	"time"
)

func createdTime(os.FileInfo) time.Time { return time.Time{} }
