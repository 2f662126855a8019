package contract

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/params"
)

// FormatEther renders a wei amount as a decimal ETH string without losing precision,
// e.g. 1500000000000000 -> "0.0015". Trailing zeros are dropped.
func FormatEther(wei *big.Int) string {
	if wei == nil {
		return "0"
	}

	sign := ""
	value := new(big.Int).Set(wei)
	if value.Sign() < 0 {
		sign = "-"
		value.Neg(value)
	}

	whole, frac := new(big.Int).QuoRem(value, big.NewInt(params.Ether), new(big.Int))
	if frac.Sign() == 0 {
		return sign + whole.String()
	}

	fraction := strings.TrimRight(leftPad(frac.String(), 18), "0") //nolint:mnd
	return sign + whole.String() + "." + fraction
}

func leftPad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}
