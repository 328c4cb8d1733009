package rest

import (
	"errors"
	"net/http"
	"slices"

	"hoststatus/internal/logger"
	"hoststatus/internal/status"
	"hoststatus/internal/storage/snapshot"
)

type StatusHandler struct {
	collector *status.Collector
	store     *snapshot.StatusStore
	log       logger.Logger
}

func NewStatusHandler(collector *status.Collector, store *snapshot.StatusStore, log logger.Logger) *StatusHandler {
	return &StatusHandler{
		collector: collector,
		store:     store,
		log:       log,
	}
}

func (h *StatusHandler) Index(w http.ResponseWriter, r *http.Request) {
	snap := h.collector.All(r.Context())

	JSONSuccess(w, http.StatusOK, APIResponse{
		Data: snap,
		Meta: map[string]any{"failed": failedNames(snap)},
	})
}

func (h *StatusHandler) Latest(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.store.Get()
	if !ok {
		JSONError(w, http.StatusNotFound, "No snapshot collected yet")
		return
	}

	JSONSuccess(w, http.StatusOK, APIResponse{
		Data: snap,
		Meta: map[string]any{"updated_at": h.store.UpdatedAt().UTC()},
	})
}

func (h *StatusHandler) Show(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	data, err := h.collector.Collect(r.Context(), name)
	if err != nil {
		if errors.Is(err, status.ErrUnknownCollector) {
			JSONError(w, http.StatusNotFound, "Unknown collector: "+name)
			return
		}

		h.log.Error("collector", "name", name, "error", err)
		writeJSON(w, statusCode(err), APIResponse{
			Message: err.Error(),
			Errors:  status.SlotError{Kind: status.Kind(err), Message: err.Error()},
		})
		return
	}

	JSONSuccess(w, http.StatusOK, APIResponse{Data: data})
}

// statusClientClosedRequest is nginx's code for a request the client
// abandoned before the response was written.
const statusClientClosedRequest = 499

func statusCode(err error) int {
	switch status.Kind(err) {
	case status.KindSourceUnavailable:
		return http.StatusServiceUnavailable
	case status.KindTimeout:
		return http.StatusGatewayTimeout
	case status.KindCanceled:
		return statusClientClosedRequest
	default:
		return http.StatusInternalServerError
	}
}

func failedNames(snap status.Snapshot) []string {
	names := []string{}
	for name := range snap.Errors() {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
