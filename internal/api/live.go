package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/talentflow/engine/internal/hiring"
	"github.com/talentflow/engine/internal/store"
)

var (
	errUnknownQuery       = errors.New("unknown query")
	errMissingCandidateID = errors.New("candidateId is required")
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// liveRequest is what a live client sends: a subscribe with a query name and
// parameters, or an unsubscribe for a previously issued subscription id.
type liveRequest struct {
	Type   string     `json:"type"`
	ID     string     `json:"id"`
	Query  string     `json:"query,omitempty"`
	Params liveParams `json:"params,omitempty"`
}

type liveParams struct {
	Search      string `json:"search,omitempty"`
	Status      string `json:"status,omitempty"`
	Stage       string `json:"stage,omitempty"`
	JobID       string `json:"jobId,omitempty"`
	CandidateID string `json:"candidateId,omitempty"`
	Page        int    `json:"page,omitempty"`
	PageSize    int    `json:"pageSize,omitempty"`
	Sort        string `json:"sort,omitempty"`
}

type liveResponse struct {
	Type  string `json:"type"`
	ID    string `json:"id,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// liveSub is one active subscription. tables lists the store tables whose
// change events invalidate its result.
type liveSub struct {
	id     string
	query  string
	params liveParams
	tables map[store.Table]bool
}

func (s *Server) handleLiveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("failed to upgrade to websocket", "error", err)
		return
	}
	defer conn.Close()

	slog.Info("live query client connected", "remote", r.RemoteAddr)

	events, cancel := s.bus.Subscribe()
	defer cancel()

	// The read loop runs in its own goroutine; the main loop below is the
	// connection's single writer.
	requests := make(chan liveRequest)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var req liveRequest
			if err := conn.ReadJSON(&req); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					slog.Warn("live query read error", "error", err)
				}
				return
			}
			select {
			case requests <- req:
			case <-done:
				return
			}
		}
	}()

	subs := make(map[string]*liveSub)

	for {
		select {
		case req, ok := <-requests:
			if !ok {
				return
			}
			switch req.Type {
			case "subscribe":
				sub, err := s.newLiveSub(req)
				if err != nil {
					s.writeLive(conn, liveResponse{Type: "error", ID: req.ID, Error: err.Error()})
					continue
				}
				subs[sub.id] = sub
				s.pushLiveResult(r, conn, sub)
			case "unsubscribe":
				delete(subs, req.ID)
				s.writeLive(conn, liveResponse{Type: "unsubscribed", ID: req.ID})
			default:
				s.writeLive(conn, liveResponse{Type: "error", ID: req.ID, Error: "unknown message type"})
			}
		case ev, ok := <-events:
			if !ok {
				return
			}
			for _, sub := range subs {
				if sub.tables[ev.Table] {
					s.pushLiveResult(r, conn, sub)
				}
			}
		case <-done:
			return
		}
	}
}

func (s *Server) newLiveSub(req liveRequest) (*liveSub, error) {
	sub := &liveSub{id: req.ID, query: req.Query, params: req.Params}

	switch req.Query {
	case "jobs":
		sub.tables = map[store.Table]bool{store.TableJobs: true}
	case "candidates":
		sub.tables = map[store.Table]bool{store.TableCandidates: true}
	case "timeline":
		if req.Params.CandidateID == "" {
			return nil, errMissingCandidateID
		}
		sub.tables = map[store.Table]bool{store.TableTimeline: true}
	case "notifications":
		sub.tables = map[store.Table]bool{store.TableNotifications: true}
	default:
		return nil, errUnknownQuery
	}
	return sub, nil
}

// pushLiveResult recomputes a subscription's query and writes the fresh
// result to the connection.
func (s *Server) pushLiveResult(r *http.Request, conn *websocket.Conn, sub *liveSub) {
	ctx := r.Context()

	var data any
	var err error
	switch sub.query {
	case "jobs":
		data, err = s.service.ListJobs(ctx, hiring.JobQuery{
			Search:   sub.params.Search,
			Status:   sub.params.Status,
			Sort:     sub.params.Sort,
			Page:     sub.params.Page,
			PageSize: sub.params.PageSize,
		})
	case "candidates":
		data, err = s.service.ListCandidates(ctx, hiring.CandidateQuery{
			Search:   sub.params.Search,
			Stage:    sub.params.Stage,
			JobID:    sub.params.JobID,
			Page:     sub.params.Page,
			PageSize: sub.params.PageSize,
		})
	case "timeline":
		data, err = s.service.Timeline(ctx, sub.params.CandidateID)
	case "notifications":
		data, err = s.service.Notifications(ctx)
	}
	if err != nil {
		slog.Error("live query failed", "query", sub.query, "sub_id", sub.id, "error", err)
		s.writeLive(conn, liveResponse{Type: "error", ID: sub.id, Error: "query failed"})
		return
	}

	s.writeLive(conn, liveResponse{Type: "result", ID: sub.id, Data: data})
}

func (s *Server) writeLive(conn *websocket.Conn, resp liveResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		slog.Warn("failed to write live response", "error", err)
	}
}
