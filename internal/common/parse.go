package common

import (
	"strconv"
	"strings"
)

// ParseUint64orHex converts the given uint64 string into the number.
// It can parse the string with 0x prefix as well.
func ParseUint64orHex(val *string) (uint64, error) {
	if val == nil {
		return 0, nil
	}

	str := *val
	base := 10

	if strings.HasPrefix(str, "0x") {
		str = str[2:]
		base = 16
	}

	return strconv.ParseUint(str, base, 64)
}

func ToLowerWithTrim(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ShortenAddress renders an address as 0x1234...abcd for log lines.
func ShortenAddress(address string) string {
	const keep = 6
	if len(address) <= keep+4 {
		return address
	}
	return address[:keep] + "..." + address[len(address)-4:]
}
