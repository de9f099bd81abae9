//go:build !windows

package ringbuffer

import "golang.org/x/sys/unix"

func pageSize() int {
	return unix.Getpagesize()
}
