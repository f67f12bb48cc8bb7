package server

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/chargeplan/chargeplan/pkg/log"
	"github.com/chargeplan/chargeplan/pkg/metrics"
	"github.com/chargeplan/chargeplan/pkg/types"
	"github.com/patrickmn/go-cache"
)

// readChargingRequest reads and decodes a charging request body, writing
// the error response itself when it fails.
func readChargingRequest(w http.ResponseWriter, r *http.Request) ([]byte, types.ChargingRequest, bool) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodySize+1))
	if err != nil {
		writeJSONError(w, "failed to read request body", http.StatusBadRequest)
		return nil, types.ChargingRequest{}, false
	}
	if len(body) > maxRequestBodySize {
		writeJSONError(w, "request body too large", http.StatusRequestEntityTooLarge)
		return nil, types.ChargingRequest{}, false
	}
	var req types.ChargingRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return nil, types.ChargingRequest{}, false
	}
	return body, req, true
}

func calculateCacheKey(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	body, req, ok := readChargingRequest(w, r)
	if !ok {
		return
	}

	key := calculateCacheKey(body)
	if s.calcCache != nil {
		if v, found := s.calcCache.Get(key); found {
			metrics.CalculateCacheTotal.WithLabelValues("hit").Inc()
			writeJSON(w, v.(types.Projection), http.StatusOK)
			return
		}
		metrics.CalculateCacheTotal.WithLabelValues("miss").Inc()
	}

	projection, err := s.controller.Project(ctx, req)
	if err != nil {
		log.Ctx(ctx).WarnContext(ctx, "failed to calculate projection", slog.Any("error", err))
		writeJSONError(w, fmt.Sprintf("invalid charging request: %v", err), http.StatusBadRequest)
		return
	}
	if s.calcCache != nil {
		s.calcCache.Set(key, projection, cache.DefaultExpiration)
	}

	writeJSON(w, projection, http.StatusOK)
}
