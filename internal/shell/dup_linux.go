package shell

import "golang.org/x/sys/unix"

func dupTo(fd, target int) error {
	return unix.Dup3(fd, target, 0)
}
