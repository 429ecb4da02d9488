package conversation

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/technosurge/leadflow/internal/leads"
	"github.com/technosurge/leadflow/internal/observability/metrics"
	"github.com/technosurge/leadflow/pkg/logging"
)

// Handler exposes per-session chat turns over HTTP.
type Handler struct {
	engine  *Engine
	store   SessionStore
	metrics *metrics.ConversationMetrics
	logger  *logging.Logger

	mu    sync.Mutex
	locks map[string]*sessionLock
}

// sessionLock is a reference-counted mutex. The handler drops the map entry
// when the last holder releases it, so the lock table stays bounded by the
// number of in-flight requests rather than growing with every session id.
type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// NewHandler creates the chat HTTP handler.
func NewHandler(engine *Engine, store SessionStore, m *metrics.ConversationMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		engine:  engine,
		store:   store,
		metrics: m,
		logger:  logger,
		locks:   make(map[string]*sessionLock),
	}
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Status            string     `json:"status"`
	AIReply           string     `json:"ai_reply"`
	Lead              leads.Lead `json:"lead"`
	LeadSaved         bool       `json:"lead_saved"`
	EmailsSent        bool       `json:"emails_sent"`
	ConversationEnded bool       `json:"conversation_ended"`
}

// Chat handles POST /chat/{sessionID}. The endpoint always answers 200 with
// a best-effort payload; failures inside the turn degrade rather than
// surface to the client.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	// An absent or malformed body is tolerated and treated as a no-op turn.
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug("chat request body not decodable, treating as empty turn",
			"session_id", sessionID, "error", err)
	}

	// Concurrent turns for the same session serialize; distinct sessions run
	// in parallel.
	lock := h.acquireSession(sessionID)
	defer h.releaseSession(sessionID, lock)

	ctx := r.Context()
	sess, err := h.store.Get(ctx, sessionID)
	if err != nil {
		h.logger.Error("failed to load session, starting fresh", "session_id", sessionID, "error", err)
	}
	if sess == nil {
		sess = NewSession()
	}

	reply := h.engine.Turn(ctx, sess, req.Message)

	if err := h.store.Put(ctx, sessionID, sess); err != nil {
		h.logger.Error("failed to persist session", "session_id", sessionID, "error", err)
	}

	h.metrics.ObserveTurnLatency(time.Since(start).Seconds())
	h.writeJSON(w, http.StatusOK, chatResponse{
		Status:            "ok",
		AIReply:           reply,
		Lead:              sess.Lead,
		LeadSaved:         sess.LeadSaved,
		EmailsSent:        sess.EmailSent,
		ConversationEnded: sess.Ended(),
	})
}

// Live handles GET / with a liveness message.
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"message": "Technosurge lead-qualification API is running",
	})
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) acquireSession(sessionID string) *sessionLock {
	h.mu.Lock()
	lock, ok := h.locks[sessionID]
	if !ok {
		lock = &sessionLock{}
		h.locks[sessionID] = lock
	}
	lock.refs++
	h.mu.Unlock()

	lock.mu.Lock()
	return lock
}

func (h *Handler) releaseSession(sessionID string, lock *sessionLock) {
	lock.mu.Unlock()

	h.mu.Lock()
	lock.refs--
	if lock.refs == 0 {
		delete(h.locks, sessionID)
	}
	h.mu.Unlock()
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", "error", err)
	}
}
