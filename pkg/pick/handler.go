package pick

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/outofforest/dayseed/pkg/candidates"
	"github.com/outofforest/dayseed/pkg/clock"
	"github.com/outofforest/dayseed/pkg/daily"
	"github.com/outofforest/logger"
)

const maxCount = 1000

// Config configures the handler.
type Config struct {
	Lists    *candidates.Registry
	Clock    clock.Clock
	Location *time.Location
	Digest   daily.Digest
}

type badRequestError struct {
	param string
	err   error
}

func (e badRequestError) Error() string {
	return "invalid parameter " + e.param + ": " + e.err.Error()
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewHandler returns handler serving:
//   - GET /pick: the pick of the day, see Request for the query parameters
//   - GET /lists: names of the candidate lists
//   - GET /healthz
func NewHandler(cfg Config) http.Handler {
	if cfg.Clock == nil {
		cfg.Clock = clock.System
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Digest.String() == "" {
		cfg.Digest = daily.SHA256
	}

	h := &handler{cfg: cfg}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /pick", h.pick)
	mux.HandleFunc("GET /lists", h.lists)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

type handler struct {
	cfg Config
}

func (h *handler) pick(w http.ResponseWriter, r *http.Request) {
	log := logger.Get(r.Context())

	// the clock is read once so the date and its expiration agree across midnight
	now := h.cfg.Clock.Now().In(h.cfg.Location)
	req, today, err := parseRequest(r, now)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	res, err := Draw(h.cfg.Lists, h.cfg.Digest, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	log.Debug("Pick drawn", zap.String("list", res.List), zap.String("date", res.Date),
		zap.String("namespace", res.Namespace), zap.String("pick", res.Pick))

	if today {
		w.Header().Set("Cache-Control", "public, max-age="+strconv.Itoa(secondsUntilMidnight(now)))
	} else {
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	}
	h.writeJSON(w, r, http.StatusOK, res)
}

// secondsUntilMidnight returns the number of whole seconds until the date of now changes in its location.
func secondsUntilMidnight(now time.Time) int {
	midnight := daily.DateKeyFromTime(now).AddDays(1).Time(now.Location())
	return int(midnight.Sub(now) / time.Second)
}

func (h *handler) lists(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, h.cfg.Lists.Names())
}

// parseRequest reads query parameters. It reports if the date was not given and the date of now is used.
func parseRequest(r *http.Request, now time.Time) (Request, bool, error) {
	q := r.URL.Query()
	req := Request{
		List:      q.Get("list"),
		Namespace: daily.Namespace(q.Get("namespace")),
	}
	if req.List == "" {
		return Request{}, false, badRequestError{param: "list", err: errors.New("missing")}
	}

	today := q.Get("date") == ""
	if today {
		req.Date = daily.DateKeyFromTime(now)
	} else {
		date, err := daily.ParseDateKey(q.Get("date"))
		if err != nil {
			return Request{}, false, err
		}
		req.Date = date
	}

	if v := q.Get("count"); v != "" {
		count, err := strconv.Atoi(v)
		if err != nil || count < 0 || count > maxCount {
			return Request{}, false, badRequestError{param: "count", err: errors.Errorf("%q out of range", v)}
		}
		req.Count = count
	}
	if v := q.Get("shuffle"); v != "" {
		shuffle, err := strconv.ParseBool(v)
		if err != nil {
			return Request{}, false, badRequestError{param: "shuffle", err: err}
		}
		req.Shuffle = shuffle
	}
	return req, today, nil
}

func (h *handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	switch {
	case errors.As(err, &badRequestError{}), errors.As(err, &daily.InvalidDateError{}),
		errors.As(err, &daily.InvalidNamespaceError{}):
		status = http.StatusBadRequest
	case errors.Is(err, candidates.ErrUnknownList):
		status = http.StatusNotFound
	case errors.Is(err, daily.ErrEmptyCandidates), errors.Is(err, daily.ErrInvalidCount):
		status = http.StatusUnprocessableEntity
	default:
		logger.Get(r.Context()).Error("Drawing pick failed", zap.Error(err))
		h.writeJSON(w, r, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	h.writeJSON(w, r, status, errorResponse{Error: err.Error()})
}

func (h *handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		logger.Get(r.Context()).Error("Encoding response failed", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if status == http.StatusOK {
		etag := `"` + strconv.FormatUint(xxhash.Sum64(body), 16) + `"`
		w.Header().Set("ETag", etag)
		if etagMatches(r.Header.Values("If-None-Match"), etag) {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		logger.Get(r.Context()).Debug("Writing response failed", zap.Error(err))
	}
}

// etagMatches reports whether any entity tag listed in If-None-Match headers matches etag
// using the weak comparison.
func etagMatches(headers []string, etag string) bool {
	for _, header := range headers {
		for _, candidate := range strings.Split(header, ",") {
			candidate = strings.TrimSpace(candidate)
			if candidate == "*" || strings.TrimPrefix(candidate, "W/") == strings.TrimPrefix(etag, "W/") {
				return true
			}
		}
	}
	return false
}
