package contract

//nolint:golint
import (
	_ "embed"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

//go:embed tipjar.json
var tipJarJSONABI string

const (
	TipSentEventName    = "TipSent"
	TipMessageEventName = "TipMessage"

	TipSent    = "event TipSent(uint256 indexed tipId, address indexed sender, address indexed recipient, uint256 amount, uint256 fee, uint256 timestamp)" //nolint:lll
	TipMessage = "event TipMessage(uint256 indexed tipId, string message)"
)

var (
	TipJarABI = MustReadABI(tipJarJSONABI)

	TipSentEventSignature    = TipJarABI.Events[TipSentEventName].ID
	TipMessageEventSignature = TipJarABI.Events[TipMessageEventName].ID
)

// MustReadABI parses a JSON ABI and panics on failure. Meant for embedded ABIs.
func MustReadABI(rawJSONABI string) abi.ABI {
	res, err := abi.JSON(strings.NewReader(rawJSONABI))
	if err != nil {
		panic(err)
	}
	return res
}
