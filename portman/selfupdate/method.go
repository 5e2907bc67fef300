// Package selfupdate drives the synchronization of the package
// description collection and the finishing steps that follow it,
// including portman upgrading itself.
package selfupdate

import "strings"

// Method identifies one synchronization strategy.
type Method string

const (
	MethodUnset Method = ""
	MethodPoint Method = "point"
	MethodCvs   Method = "cvs"
	MethodRsync Method = "rsync"
)

// NormalizeMethod maps a raw CLI token to a Method. The numeric codes
// accepted by old portman releases still work: 0 means no method
// given, 1 means cvs, 2 means rsync. Every other token is lower-cased
// as-is; validation against the registry happens during selection.
func NormalizeMethod(token string) Method {
	switch strings.TrimSpace(token) {
	case "", "0":
		return MethodUnset
	case "1":
		return MethodCvs
	case "2":
		return MethodRsync
	}
	return Method(strings.ToLower(strings.TrimSpace(token)))
}
