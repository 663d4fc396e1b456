// internal/notify/notify.go
//
// Diagnostic notifications and user toasts.
//
// Context
//   When the reconciler hits a failure worth telling an operator about (the
//   products API is down, a cart had to be repaired), it pushes one event to
//   the configured endpoint.  Delivery is strictly fire-and-forget: Send
//   returns before the POST completes, a failed POST is logged at debug and
//   dropped, and no error ever reaches the caller.
//
//   Toasts are the user-facing half: plain value records collected during a
//   pass and surfaced by whatever UI ran it.  They carry no behavior.
//
// Style
//   Two-space sentence spacing, Oxford comma, concise inline notes.
//
//------------------------------------------------------------------------------

package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/oakmoor/storefront/internal/metrics"
)

// Toast levels.
const (
	LevelInfo  = "info"
	LevelError = "error"
)

// Toast is one non-blocking message shown to the user.
type Toast struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Info builds an informational toast.
func Info(message string) Toast { return Toast{Level: LevelInfo, Message: message} }

// Error builds an error toast.
func Error(message string) Toast { return Toast{Level: LevelError, Message: message} }

// Event is the JSON body pushed to the diagnostic endpoint.
type Event struct {
	ID      string    `json:"id"`
	Kind    string    `json:"kind"`
	Message string    `json:"message"`
	Detail  string    `json:"detail,omitempty"`
	At      time.Time `json:"at"`
}

// Notifier pushes events to one configured endpoint.  The zero-state
// Notifier (empty endpoint) is valid and drops everything, so callers never
// gate on configuration.
type Notifier struct {
	endpoint string
	http     *http.Client
	budget   time.Duration
	wg       sync.WaitGroup
}

// New builds a Notifier for endpoint.  An empty endpoint disables delivery.
func New(endpoint string) *Notifier {
	return &Notifier{
		endpoint: endpoint,
		http:     &http.Client{},
		budget:   2 * time.Second,
	}
}

// Send fires an event and returns immediately.  Failures never propagate.
func (n *Notifier) Send(kind, message, detail string) {
	if n == nil || n.endpoint == "" {
		return
	}
	ev := Event{
		ID:      uuid.NewString(),
		Kind:    kind,
		Message: message,
		Detail:  detail,
		At:      time.Now().UTC(),
	}
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		n.post(ev)
	}()
}

// Flush waits for in-flight deliveries.  Called on shutdown; tests use it
// to make Send observable.
func (n *Notifier) Flush() { n.wg.Wait() }

func (n *Notifier) post(ev Event) {
	ctx, cancel := context.WithTimeout(context.Background(), n.budget)
	defer cancel()

	raw, err := json.Marshal(ev)
	if err != nil {
		zap.L().Debug("notify: marshal failed", zap.Error(err))
		return
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(raw))
	if err != nil {
		zap.L().Debug("notify: request build failed", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.http.Do(req)
	if err != nil {
		metrics.NotifyErrorsTotal.Inc()
		zap.L().Debug("notify: delivery failed", zap.String("kind", ev.Kind), zap.Error(err))
		return
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	if resp.StatusCode >= 300 {
		metrics.NotifyErrorsTotal.Inc()
		zap.L().Debug("notify: endpoint refused event",
			zap.String("kind", ev.Kind), zap.Int("status", resp.StatusCode))
		return
	}
	metrics.NotifySentTotal.Inc()
}
