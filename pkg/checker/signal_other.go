//go:build !unix

package checker

import "syscall"

func signalName(sig syscall.Signal) string {
	return sig.String()
}
