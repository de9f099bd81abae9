//go:build windows

package ringbuffer

// Windows' page size is a fixed 4 KiB on every architecture Go supports;
// there is no golang.org/x/sys/windows equivalent of unix.Getpagesize.
func pageSize() int {
	return 4096
}
