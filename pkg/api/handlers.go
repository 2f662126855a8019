package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/TipJarIndexer/internal/contract"
	"github.com/goran-ethernal/TipJarIndexer/internal/logger"
	"github.com/goran-ethernal/TipJarIndexer/internal/poller"
	"github.com/goran-ethernal/TipJarIndexer/pkg/ledger"
)

const maxLimit = 1000

// StatusProvider reports the indexing loop state. It is satisfied by *poller.Poller.
type StatusProvider interface {
	Status() poller.Status
}

// Handler handles HTTP requests for the API.
type Handler struct {
	store  ledger.Store
	status StatusProvider
	log    *logger.Logger
}

// NewHandler creates a new API handler. status may be nil when no poller runs in the process.
func NewHandler(store ledger.Store, status StatusProvider, log *logger.Logger) *Handler {
	return &Handler{
		store:  store,
		status: status,
		log:    log,
	}
}

// Health returns the health status of the API.
// @Summary Health check
// @Description Check that the API is serving
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse "API health status"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// GetGlobalStats returns the aggregate of every tip.
// @Summary Global statistics
// @Description Tip count, total volume and fees in wei, distinct creators and tippers
// @Tags Stats
// @Produce json
// @Success 200 {object} GlobalStatsResponse "Global statistics"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /stats [get]
func (h *Handler) GetGlobalStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.GlobalAggregate(r.Context())
	if err != nil {
		h.log.Errorf("Failed to aggregate ledger: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to get stats")
		return
	}

	respondJSON(w, http.StatusOK, GlobalStatsResponse{
		TotalTips:      stats.TotalTips,
		TotalVolume:    decimal(stats.TotalVolume),
		TotalVolumeEth: contract.FormatEther(stats.TotalVolume),
		TotalFees:      decimal(stats.TotalFees),
		UniqueCreators: stats.UniqueCreators,
		UniqueTippers:  stats.UniqueTippers,
	})
}

// GetCreatorStats returns the aggregate of the tips received by an address.
// @Summary Creator statistics
// @Description Tips received by an address: count, total in wei and distinct supporters
// @Tags Stats
// @Produce json
// @Param address path string true "Creator address"
// @Success 200 {object} CreatorStatsResponse "Creator statistics"
// @Failure 400 {object} ErrorResponse "Invalid address"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /creators/{address}/stats [get]
func (h *Handler) GetCreatorStats(w http.ResponseWriter, r *http.Request) {
	address, err := parseAddress(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	stats, err := h.store.AggregateForAddress(r.Context(), address)
	if err != nil {
		h.log.Errorf("Failed to aggregate tips of %s: %v", address, err)
		respondError(w, http.StatusInternalServerError, "failed to get stats")
		return
	}

	respondJSON(w, http.StatusOK, CreatorStatsResponse{
		Address:          address,
		TotalTips:        stats.TotalTips,
		TotalReceived:    decimal(stats.TotalReceived),
		TotalReceivedEth: contract.FormatEther(stats.TotalReceived),
		UniqueSupporters: stats.UniqueSupporters,
	})
}

// GetCreatorTips lists the tips received by an address.
// @Summary Tips received
// @Description Tips received by an address, newest first
// @Tags Tips
// @Produce json
// @Param address path string true "Creator address"
// @Param limit query int false "Maximum number of tips to return" default(50)
// @Success 200 {object} TipsResponse "Tips received"
// @Failure 400 {object} ErrorResponse "Invalid parameters"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /creators/{address}/tips [get]
func (h *Handler) GetCreatorTips(w http.ResponseWriter, r *http.Request) {
	h.listByAddress(w, r, ledger.DefaultAddressLimit, h.store.QueryByRecipient)
}

// GetTipperTips lists the tips sent by an address.
// @Summary Tips sent
// @Description Tips sent by an address, newest first
// @Tags Tips
// @Produce json
// @Param address path string true "Tipper address"
// @Param limit query int false "Maximum number of tips to return" default(50)
// @Success 200 {object} TipsResponse "Tips sent"
// @Failure 400 {object} ErrorResponse "Invalid parameters"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /tippers/{address}/tips [get]
func (h *Handler) GetTipperTips(w http.ResponseWriter, r *http.Request) {
	h.listByAddress(w, r, ledger.DefaultAddressLimit, h.store.QueryBySender)
}

// GetRecentTips lists the latest tips across all addresses.
// @Summary Recent tips
// @Description Latest tips, newest first
// @Tags Tips
// @Produce json
// @Param limit query int false "Maximum number of tips to return" default(20)
// @Success 200 {object} TipsResponse "Recent tips"
// @Failure 400 {object} ErrorResponse "Invalid parameters"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /tips/recent [get]
func (h *Handler) GetRecentTips(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r, ledger.DefaultRecentLimit)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	tips, err := h.store.RecentTips(r.Context(), limit)
	if err != nil {
		h.log.Errorf("Failed to query recent tips: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to query tips")
		return
	}

	respondJSON(w, http.StatusOK, newTipsResponse(tips, limit))
}

// GetTip returns a single tip.
// @Summary Get tip
// @Description Get a tip by its contract id
// @Tags Tips
// @Produce json
// @Param tipId path string true "Tip id (base 10)"
// @Success 200 {object} TipResponse "Tip"
// @Failure 400 {object} ErrorResponse "Invalid tip id"
// @Failure 404 {object} ErrorResponse "Tip not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /tips/{tipId} [get]
func (h *Handler) GetTip(w http.ResponseWriter, r *http.Request) {
	tipID := r.PathValue("tipId")
	if id, ok := new(big.Int).SetString(tipID, 10); !ok || id.Sign() < 0 {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid tip id %q", tipID))
		return
	}

	tip, err := h.store.GetTip(r.Context(), tipID)
	if errors.Is(err, ledger.ErrTipNotFound) {
		respondError(w, http.StatusNotFound, fmt.Sprintf("tip %s not found", tipID))
		return
	}
	if err != nil {
		h.log.Errorf("Failed to get tip %s: %v", tipID, err)
		respondError(w, http.StatusInternalServerError, "failed to get tip")
		return
	}

	respondJSON(w, http.StatusOK, newTipResponse(tip))
}

// GetStatus reports the indexing progress.
// @Summary Indexer status
// @Description Checkpoint, chain head and polling state
// @Tags Health
// @Produce json
// @Success 200 {object} StatusResponse "Indexer status"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /status [get]
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	if h.status == nil {
		// no poller in this process, report from the ledger alone
		checkpoint, err := h.store.GetCheckpoint(r.Context())
		if err != nil {
			h.log.Errorf("Failed to read checkpoint: %v", err)
			respondError(w, http.StatusInternalServerError, "failed to get status")
			return
		}
		respondJSON(w, http.StatusOK, StatusResponse{State: "STOPPED", Checkpoint: checkpoint})
		return
	}

	status := h.status.Status()
	response := StatusResponse{
		State:       status.State.String(),
		Checkpoint:  status.Checkpoint,
		ChainHead:   status.ChainHead,
		Passes:      status.Passes,
		Failures:    status.Failures,
		TipsIndexed: status.TipsIndexed,
		LastError:   status.LastError,
	}
	if !status.LastPassAt.IsZero() {
		response.LastPassAt = &status.LastPassAt
	}

	respondJSON(w, http.StatusOK, response)
}

type addressQuery func(ctx context.Context, address string, limit uint64) ([]*ledger.Tip, error)

func (h *Handler) listByAddress(w http.ResponseWriter, r *http.Request, defaultLimit uint64, query addressQuery) {
	address, err := parseAddress(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	limit, err := parseLimit(r, defaultLimit)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	tips, err := query(r.Context(), address, limit)
	if err != nil {
		h.log.Errorf("Failed to query tips of %s: %v", address, err)
		respondError(w, http.StatusInternalServerError, "failed to query tips")
		return
	}

	respondJSON(w, http.StatusOK, newTipsResponse(tips, limit))
}

// parseAddress reads the {address} path value and normalizes it to lowercase hex.
func parseAddress(r *http.Request) (string, error) {
	address := r.PathValue("address")
	if !common.IsHexAddress(address) {
		return "", fmt.Errorf("invalid address %q", address)
	}
	return strings.ToLower(common.HexToAddress(address).Hex()), nil
}

// parseLimit reads the limit query parameter.
func parseLimit(r *http.Request, defaultLimit uint64) (uint64, error) {
	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		return defaultLimit, nil
	}

	limit, err := strconv.ParseUint(limitStr, 10, 64)
	if err != nil || limit < 1 || limit > maxLimit {
		return 0, fmt.Errorf("invalid limit: must be between 1 and %d", maxLimit)
	}

	return limit, nil
}

func newTipsResponse(tips []*ledger.Tip, limit uint64) TipsResponse {
	response := TipsResponse{
		Tips:  make([]TipResponse, 0, len(tips)),
		Count: len(tips),
		Limit: limit,
	}
	for _, tip := range tips {
		response.Tips = append(response.Tips, newTipResponse(tip))
	}
	return response
}

func newTipResponse(tip *ledger.Tip) TipResponse {
	return TipResponse{
		TipID:       tip.TipID,
		Sender:      tip.Sender,
		Recipient:   tip.Recipient,
		Amount:      decimal(tip.Amount),
		Fee:         decimal(tip.Fee),
		Message:     tip.Message,
		TxHash:      tip.TxHash.Hex(),
		BlockNumber: tip.BlockNumber,
		Timestamp:   tip.Timestamp,
	}
}

func decimal(value *big.Int) string {
	if value == nil {
		return "0"
	}
	return value.String()
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")

	// Encode JSON first to catch any errors before writing status
	encoded, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)

	// Headers already sent, a failed write can't be reported to the client
	_, _ = w.Write(encoded)
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	response := ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	}
	respondJSON(w, status, response)
}
