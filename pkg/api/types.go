package api

import "time"

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

// HealthResponse represents a health check response.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// GlobalStatsResponse aggregates the whole ledger. Wei amounts are decimal strings.
type GlobalStatsResponse struct {
	TotalTips      uint64 `json:"total_tips"`
	TotalVolume    string `json:"total_volume"`
	TotalVolumeEth string `json:"total_volume_eth"`
	TotalFees      string `json:"total_fees"`
	UniqueCreators uint64 `json:"unique_creators"`
	UniqueTippers  uint64 `json:"unique_tippers"`
}

// CreatorStatsResponse aggregates the tips received by one address.
type CreatorStatsResponse struct {
	Address          string `json:"address"`
	TotalTips        uint64 `json:"total_tips"`
	TotalReceived    string `json:"total_received"`
	TotalReceivedEth string `json:"total_received_eth"`
	UniqueSupporters uint64 `json:"unique_supporters"`
}

// TipResponse is a stored tip.
type TipResponse struct {
	TipID       string `json:"tip_id"`
	Sender      string `json:"sender"`
	Recipient   string `json:"recipient"`
	Amount      string `json:"amount"`
	Fee         string `json:"fee"`
	Message     string `json:"message"`
	TxHash      string `json:"tx_hash"`
	BlockNumber uint64 `json:"block_number"`
	Timestamp   uint64 `json:"timestamp"`
}

// TipsResponse is a listing of tips, newest first.
type TipsResponse struct {
	Tips  []TipResponse `json:"tips"`
	Count int           `json:"count"`
	Limit uint64        `json:"limit"`
}

// StatusResponse reports the indexing progress.
type StatusResponse struct {
	State       string     `json:"state"`
	Checkpoint  uint64     `json:"checkpoint"`
	ChainHead   uint64     `json:"chain_head"`
	Passes      uint64     `json:"passes"`
	Failures    uint64     `json:"failures"`
	TipsIndexed uint64     `json:"tips_indexed"`
	LastPassAt  *time.Time `json:"last_pass_at,omitempty"`
	LastError   string     `json:"last_error,omitempty"`
}
