package api

import (
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/TipJarIndexer/internal/logger"
	"github.com/goran-ethernal/TipJarIndexer/internal/poller"
	"github.com/goran-ethernal/TipJarIndexer/pkg/config"
	"github.com/goran-ethernal/TipJarIndexer/pkg/ledger"
	ledgermocks "github.com/goran-ethernal/TipJarIndexer/pkg/ledger/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	creator = "0x1111111111111111111111111111111111111111"
	tipper  = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
)

type fixedStatus poller.Status

func (s fixedStatus) Status() poller.Status { return poller.Status(s) }

func wei(t *testing.T, value string) *big.Int {
	t.Helper()

	v, ok := new(big.Int).SetString(value, 10)
	require.True(t, ok)
	return v
}

func testTip(t *testing.T, id string) *ledger.Tip {
	t.Helper()

	return &ledger.Tip{
		TipID:       id,
		Sender:      tipper,
		Recipient:   creator,
		Amount:      wei(t, "1500000000000000"),
		Fee:         wei(t, "15000000000000"),
		Message:     "gm",
		TxHash:      common.HexToHash("0xabc"),
		BlockNumber: 100,
		Timestamp:   1700000000,
	}
}

func newTestHandler(t *testing.T, store ledger.Store, status StatusProvider) http.Handler {
	t.Helper()

	cfg := &config.APIConfig{Enabled: true}
	cfg.ApplyDefaults()

	return NewServer(cfg, store, status, logger.NewNopLogger()).Handler()
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestRespondJSON(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	respondJSON(w, http.StatusCreated, map[string]string{"message": "success"})

	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))
	require.JSONEq(t, `{"message":"success"}`, w.Body.String())
}

func TestRespondJSON_EncodeFailure(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	respondJSON(w, http.StatusOK, map[string]any{"bad": make(chan int)})

	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRespondError(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	respondError(w, http.StatusNotFound, "tip 1 not found")

	require.Equal(t, http.StatusNotFound, w.Code)
	response := decode[ErrorResponse](t, w)
	require.Equal(t, "Not Found", response.Error)
	require.Equal(t, "tip 1 not found", response.Message)
	require.Equal(t, http.StatusNotFound, response.Code)
}

func TestHandler_Health(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, ledgermocks.NewStore(t), nil)

	w := get(t, h, "/health")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "ok", decode[HealthResponse](t, w).Status)
}

func TestHandler_GetGlobalStats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		setupMocks     func(store *ledgermocks.Store)
		expectedStatus int
		validate       func(t *testing.T, w *httptest.ResponseRecorder)
	}{
		{
			name: "exact decimal sums",
			setupMocks: func(store *ledgermocks.Store) {
				max256 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
				store.EXPECT().GlobalAggregate(mock.Anything).Return(&ledger.GlobalStats{
					TotalTips:      3,
					TotalVolume:    max256,
					TotalFees:      big.NewInt(60000000000000),
					UniqueCreators: 2,
					UniqueTippers:  1,
				}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			validate: func(t *testing.T, w *httptest.ResponseRecorder) {
				t.Helper()

				response := decode[GlobalStatsResponse](t, w)
				require.Equal(t, uint64(3), response.TotalTips)
				require.Equal(t,
					"115792089237316195423570985008687907853269984665640564039457584007913129639935",
					response.TotalVolume)
				require.Equal(t, "60000000000000", response.TotalFees)
				require.Equal(t, uint64(2), response.UniqueCreators)
				require.Equal(t, uint64(1), response.UniqueTippers)
			},
		},
		{
			name: "empty ledger",
			setupMocks: func(store *ledgermocks.Store) {
				store.EXPECT().GlobalAggregate(mock.Anything).Return(&ledger.GlobalStats{
					TotalVolume: new(big.Int),
					TotalFees:   new(big.Int),
				}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			validate: func(t *testing.T, w *httptest.ResponseRecorder) {
				t.Helper()

				response := decode[GlobalStatsResponse](t, w)
				require.Equal(t, "0", response.TotalVolume)
				require.Equal(t, "0", response.TotalVolumeEth)
			},
		},
		{
			name: "storage error",
			setupMocks: func(store *ledgermocks.Store) {
				store.EXPECT().GlobalAggregate(mock.Anything).Return(nil, ledger.ErrStorageFailure).Once()
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := ledgermocks.NewStore(t)
			tt.setupMocks(store)

			w := get(t, newTestHandler(t, store, nil), "/api/v1/stats")
			require.Equal(t, tt.expectedStatus, w.Code)
			if tt.validate != nil {
				tt.validate(t, w)
			}
		})
	}
}

func TestHandler_GetCreatorStats(t *testing.T) {
	t.Parallel()

	store := ledgermocks.NewStore(t)
	store.EXPECT().AggregateForAddress(mock.Anything, tipper).Return(&ledger.AddressStats{
		TotalTips:        3,
		TotalReceived:    wei(t, "6000000000000000"),
		UniqueSupporters: 2,
	}, nil).Once()

	// mixed-case input is normalized before querying
	w := get(t, newTestHandler(t, store, nil), "/api/v1/creators/0xAaAaAAaaAAaaaaAAaAAaaAAAAaaaaaaAaaAaaaaa/stats")
	require.Equal(t, http.StatusOK, w.Code)

	response := decode[CreatorStatsResponse](t, w)
	require.Equal(t, tipper, response.Address)
	require.Equal(t, uint64(3), response.TotalTips)
	require.Equal(t, "6000000000000000", response.TotalReceived)
	require.Equal(t, "0.006", response.TotalReceivedEth)
	require.Equal(t, uint64(2), response.UniqueSupporters)
}

func TestHandler_InvalidAddress(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, ledgermocks.NewStore(t), nil)

	for _, path := range []string{
		"/api/v1/creators/not-an-address/stats",
		"/api/v1/creators/0x1234/tips",
		"/api/v1/tippers/0xzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz/tips",
	} {
		w := get(t, h, path)
		require.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

func TestHandler_TipListings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		path           string
		setupMocks     func(t *testing.T, store *ledgermocks.Store)
		expectedStatus int
		expectedCount  int
		expectedLimit  uint64
	}{
		{
			name: "creator tips with default limit",
			path: "/api/v1/creators/" + creator + "/tips",
			setupMocks: func(t *testing.T, store *ledgermocks.Store) {
				store.EXPECT().QueryByRecipient(mock.Anything, creator, uint64(ledger.DefaultAddressLimit)).
					Return([]*ledger.Tip{testTip(t, "2"), testTip(t, "1")}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedCount:  2,
			expectedLimit:  ledger.DefaultAddressLimit,
		},
		{
			name: "tipper tips with limit",
			path: "/api/v1/tippers/0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA/tips?limit=5",
			setupMocks: func(t *testing.T, store *ledgermocks.Store) {
				store.EXPECT().QueryBySender(mock.Anything, tipper, uint64(5)).
					Return([]*ledger.Tip{testTip(t, "1")}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedCount:  1,
			expectedLimit:  5,
		},
		{
			name: "recent tips with default limit",
			path: "/api/v1/tips/recent",
			setupMocks: func(t *testing.T, store *ledgermocks.Store) {
				store.EXPECT().RecentTips(mock.Anything, uint64(ledger.DefaultRecentLimit)).
					Return([]*ledger.Tip{}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedCount:  0,
			expectedLimit:  ledger.DefaultRecentLimit,
		},
		{
			name:           "limit too large",
			path:           "/api/v1/tips/recent?limit=1001",
			setupMocks:     func(t *testing.T, store *ledgermocks.Store) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "limit zero",
			path:           "/api/v1/creators/" + creator + "/tips?limit=0",
			setupMocks:     func(t *testing.T, store *ledgermocks.Store) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "storage error",
			path: "/api/v1/tips/recent",
			setupMocks: func(t *testing.T, store *ledgermocks.Store) {
				store.EXPECT().RecentTips(mock.Anything, mock.Anything).
					Return(nil, errors.New("disk I/O error")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := ledgermocks.NewStore(t)
			tt.setupMocks(t, store)

			w := get(t, newTestHandler(t, store, nil), tt.path)
			require.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus != http.StatusOK {
				return
			}

			response := decode[TipsResponse](t, w)
			require.Equal(t, tt.expectedCount, response.Count)
			require.Len(t, response.Tips, tt.expectedCount)
			require.Equal(t, tt.expectedLimit, response.Limit)
		})
	}
}

func TestHandler_GetTip(t *testing.T) {
	t.Parallel()

	store := ledgermocks.NewStore(t)
	store.EXPECT().GetTip(mock.Anything, "42").Return(testTip(t, "42"), nil).Once()
	store.EXPECT().GetTip(mock.Anything, "7").Return(nil, ledger.ErrTipNotFound).Once()

	h := newTestHandler(t, store, nil)

	w := get(t, h, "/api/v1/tips/42")
	require.Equal(t, http.StatusOK, w.Code)

	tip := decode[TipResponse](t, w)
	require.Equal(t, "42", tip.TipID)
	require.Equal(t, "1500000000000000", tip.Amount)
	require.Equal(t, "15000000000000", tip.Fee)
	require.Equal(t, "gm", tip.Message)
	require.Equal(t, common.HexToHash("0xabc").Hex(), tip.TxHash)

	w = get(t, h, "/api/v1/tips/7")
	require.Equal(t, http.StatusNotFound, w.Code)

	w = get(t, h, "/api/v1/tips/-1")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_GetStatus(t *testing.T) {
	t.Parallel()

	lastPass := time.Unix(1700000000, 0).UTC()
	status := fixedStatus{
		State:       poller.StateCatchingUp,
		Checkpoint:  40500,
		ChainHead:   50000,
		Passes:      3,
		Failures:    1,
		TipsIndexed: 12,
		LastPassAt:  lastPass,
		LastError:   "chain unavailable",
	}

	w := get(t, newTestHandler(t, ledgermocks.NewStore(t), status), "/api/v1/status")
	require.Equal(t, http.StatusOK, w.Code)

	response := decode[StatusResponse](t, w)
	require.Equal(t, "CATCHING_UP", response.State)
	require.Equal(t, uint64(40500), response.Checkpoint)
	require.Equal(t, uint64(50000), response.ChainHead)
	require.Equal(t, uint64(1), response.Failures)
	require.Equal(t, "chain unavailable", response.LastError)
	require.NotNil(t, response.LastPassAt)
	require.True(t, lastPass.Equal(*response.LastPassAt))
}

func TestHandler_GetStatus_WithoutPoller(t *testing.T) {
	t.Parallel()

	store := ledgermocks.NewStore(t)
	store.EXPECT().GetCheckpoint(mock.Anything).Return(uint64(1234), nil).Once()

	w := get(t, newTestHandler(t, store, nil), "/api/v1/status")
	require.Equal(t, http.StatusOK, w.Code)

	response := decode[StatusResponse](t, w)
	require.Equal(t, "STOPPED", response.State)
	require.Equal(t, uint64(1234), response.Checkpoint)
	require.Nil(t, response.LastPassAt)
}

func TestParseLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		query   string
		want    uint64
		wantErr bool
	}{
		{query: "", want: 20},
		{query: "limit=1", want: 1},
		{query: "limit=1000", want: 1000},
		{query: "limit=0", wantErr: true},
		{query: "limit=-5", wantErr: true},
		{query: "limit=abc", wantErr: true},
		{query: "limit=1001", wantErr: true},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/tips/recent?"+tt.query, nil)

		got, err := parseLimit(req, 20)
		if tt.wantErr {
			require.Error(t, err, tt.query)
			continue
		}
		require.NoError(t, err, tt.query)
		require.Equal(t, tt.want, got, tt.query)
	}
}
