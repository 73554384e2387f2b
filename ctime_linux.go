//go:build linux

package main

import (
	"os"
	"syscall"
	"time"
)

// Linux has no portable birth time in stat(2); st_ctim (last status change)
// stands in for "created".
func createdTime(info os.FileInfo) time.Time {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return time.Time{}
	}
	return time.Unix(st.Ctim.Unix())
}
