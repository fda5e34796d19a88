package http

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"homeprice/ml"
	"homeprice/monitoring"
)

const (
	msgInvalidParams   = "Invalid input parameters"
	msgInvalidFormat   = "Invalid input format"
	msgUnknownLocation = "Unknown location"

	maxFormMemory = 1 << 20
)

type handlers struct {
	store           *ml.Artifacts
	logger          *zap.Logger
	metrics         *monitoring.Metrics
	strictLocations bool
}

func (h *handlers) register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/health", h.handleHealth)
	mux.HandleFunc("GET /api/get_location_names", h.handleLocationNames)
	mux.HandleFunc("GET /api/predict_home_price", h.handlePredict)
	mux.HandleFunc("POST /api/predict_home_price", h.handlePredict)
}

// inputError 请求参数错误，映射为400
type inputError struct {
	msg   string
	field string
}

func (e *inputError) Error() string {
	return e.msg
}

func (e *inputError) Unwrap() error {
	return ml.ErrInvalidInput
}

type predictRequest struct {
	Location  string
	TotalSqft float64
	BHK       int
	Bath      int
}

type predictResponse struct {
	EstimatedPrice float64 `json:"estimated_price"`
	Location       string  `json:"location"`
	TotalSqft      float64 `json:"total_sqft"`
	BHK            int     `json:"bhk"`
	Bath           int     `json:"bath"`
}

func (h *handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK
	if _, err := h.store.LocationNames(); err != nil {
		status = "uninitialized"
		code = http.StatusServiceUnavailable
	}
	respondJSONStatus(w, code, map[string]interface{}{
		"status":        status,
		"locations":     h.store.LocationCount(),
		"feature_width": h.store.FeatureWidth(),
	})
}

func (h *handlers) handleLocationNames(w http.ResponseWriter, r *http.Request) {
	names, err := h.store.LocationNames()
	if err != nil {
		h.logger.Error("list locations", zap.Error(err))
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, map[string][]string{"locations": names})
}

func (h *handlers) handlePredict(w http.ResponseWriter, r *http.Request) {
	req, err := parsePredictRequest(r)
	if err != nil {
		var inErr *inputError
		if errors.As(err, &inErr) {
			h.logger.Debug("rejected predict request", zap.String("field", inErr.field), zap.String("reason", inErr.msg))
			h.metrics.ObservePrediction(monitoring.OutcomeInvalidInput, 0)
			respondError(w, http.StatusBadRequest, inErr.msg)
			return
		}
		h.metrics.ObservePrediction(monitoring.OutcomeError, 0)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	known, err := h.store.HasLocation(req.Location)
	if err != nil {
		h.fail(w, r, req, err)
		return
	}
	if !known {
		h.metrics.ObserveUnknownLocation()
		if h.strictLocations {
			h.metrics.ObservePrediction(monitoring.OutcomeInvalidInput, 0)
			respondError(w, http.StatusBadRequest, msgUnknownLocation)
			return
		}
		h.logger.Debug("unknown location, scoring without location signal",
			zap.String("location", req.Location))
	}

	price, err := h.store.EstimatePrice(req.Location, req.TotalSqft, req.BHK, req.Bath)
	if err != nil {
		h.fail(w, r, req, err)
		return
	}

	h.metrics.ObservePrediction(monitoring.OutcomeOK, price)
	respondJSON(w, predictResponse{
		EstimatedPrice: price,
		Location:       req.Location,
		TotalSqft:      req.TotalSqft,
		BHK:            req.BHK,
		Bath:           req.Bath,
	})
}

func (h *handlers) fail(w http.ResponseWriter, r *http.Request, req predictRequest, err error) {
	h.metrics.ObservePrediction(monitoring.OutcomeError, 0)
	h.logger.Error("predict home price",
		zap.String("request_id", GetRequestID(r.Context())),
		zap.String("location", req.Location),
		zap.Float64("total_sqft", req.TotalSqft),
		zap.Int("bhk", req.BHK),
		zap.Int("bath", req.Bath),
		zap.Error(err),
	)
	respondError(w, http.StatusInternalServerError, err.Error())
}

// parsePredictRequest 解析表单（查询参数或请求体）。
// 缺失字段按0/空处理；格式错误优先于范围错误。
func parsePredictRequest(r *http.Request) (predictRequest, error) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return predictRequest{}, &inputError{msg: msgInvalidFormat, field: "body"}
	}

	var req predictRequest
	var err error
	if req.TotalSqft, err = formFloat(r.Form, "total_sqft"); err != nil {
		return req, err
	}
	if req.BHK, err = formInt(r.Form, "bhk"); err != nil {
		return req, err
	}
	if req.Bath, err = formInt(r.Form, "bath"); err != nil {
		return req, err
	}
	req.Location = r.Form.Get("location")

	switch {
	case req.TotalSqft <= 0:
		return req, &inputError{msg: msgInvalidParams, field: "total_sqft"}
	case req.BHK <= 0:
		return req, &inputError{msg: msgInvalidParams, field: "bhk"}
	case req.Bath <= 0:
		return req, &inputError{msg: msgInvalidParams, field: "bath"}
	case strings.TrimSpace(req.Location) == "":
		return req, &inputError{msg: msgInvalidParams, field: "location"}
	}
	return req, nil
}

func formFloat(form url.Values, key string) (float64, error) {
	values, ok := form[key]
	if !ok || len(values) == 0 {
		return 0, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(values[0]), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &inputError{msg: msgInvalidFormat, field: key}
	}
	return v, nil
}

func formInt(form url.Values, key string) (int, error) {
	values, ok := form[key]
	if !ok || len(values) == 0 {
		return 0, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(values[0]))
	if err != nil {
		return 0, &inputError{msg: msgInvalidFormat, field: key}
	}
	return v, nil
}

func respondJSON(w http.ResponseWriter, data interface{}) {
	respondJSONStatus(w, http.StatusOK, data)
}

func respondJSONStatus(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, code int, message string) {
	respondJSONStatus(w, code, map[string]string{"error": message})
}
