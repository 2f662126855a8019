package common

const (
	ComponentPoller      = "poller"
	ComponentProcessor   = "processor"
	ComponentChainReader = "chain-reader"
	ComponentLedger      = "ledger"
	ComponentRPC         = "rpc"
	ComponentAPI         = "api"
	ComponentMetrics     = "metrics"
)

var AllComponents = map[string]struct{}{
	ComponentPoller:      {},
	ComponentProcessor:   {},
	ComponentChainReader: {},
	ComponentLedger:      {},
	ComponentRPC:         {},
	ComponentAPI:         {},
	ComponentMetrics:     {},
}
