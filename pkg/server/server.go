package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/modsearch/pkg/config"
	"github.com/bastiangx/modsearch/pkg/search"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Loader starts the one-shot load of the search data.
type Loader interface {
	Load()
}

// Server handles msgpack IPC for mod search.
type Server struct {
	index      search.Searcher
	loader     Loader
	config     *config.Config
	configPath string
	reader     io.Reader
	writer     *bufio.Writer
	activated  bool
}

// NewServer creates a new search server using stdin/stdout for IPC
func NewServer(index search.Searcher, loader Loader, cfg *config.Config, configPath string) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Server{
		index:      index,
		loader:     loader,
		config:     cfg,
		configPath: configPath,
		reader:     os.Stdin,
		writer:     bufio.NewWriter(os.Stdout),
	}
}

// Start announces readiness and serves requests until stdin closes.
func (s *Server) Start() error {
	log.Debug("Starting Server.")

	dec := msgpack.NewDecoder(bufio.NewReader(s.reader))
	enc := msgpack.NewEncoder(s.writer)

	if err := s.send(enc, StatusResponse{Status: "ready", State: s.index.State().String()}); err != nil {
		return err
	}

	for {
		var req Request
		if err := dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			return err
		}
		if err := s.send(enc, s.handle(req)); err != nil {
			return err
		}
	}
}

func (s *Server) send(enc *msgpack.Encoder, response any) error {
	if err := enc.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
		return err
	}
	return s.writer.Flush()
}

// activate loads the search data on the first request of the session.
func (s *Server) activate() {
	if s.activated {
		return
	}
	s.activated = true
	if s.loader != nil {
		s.loader.Load()
	}
}

func (s *Server) handle(req Request) any {
	s.activate()

	switch req.Action {
	case "", ActionSearch:
		return s.handleSearch(req)
	case ActionStatus, ActionLoad:
		return s.status(req.ID)
	case ActionConfig:
		return s.handleConfig(req)
	default:
		return SearchError{ID: req.ID, Error: fmt.Sprintf("Unknown action: %s", req.Action), Code: 400}
	}
}

func (s *Server) handleSearch(req Request) any {
	query := req.Query
	length := utf8.RuneCountInString(query)
	limits := s.config.Server

	if query != "" && length < limits.MinQuery {
		log.Debug("Query is too short in request")
		return SearchError{ID: req.ID, Error: fmt.Sprintf("Query must be at least %d characters", limits.MinQuery), Code: 400}
	}
	if limits.MaxQuery > 0 && length > limits.MaxQuery {
		log.Debug("Query is too long in request")
		return SearchError{ID: req.ID, Error: fmt.Sprintf("Query exceeds maximum length of %d characters", limits.MaxQuery), Code: 400}
	}

	limit := req.Limit
	if limit < 1 || (limits.MaxLimit > 0 && limit > limits.MaxLimit) {
		limit = limits.MaxLimit
	}

	start := time.Now()
	results := s.index.Search(query)
	elapsed := time.Since(start)

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	hits := make([]SearchHit, len(results))
	for i, r := range results {
		hits[i] = SearchHit{
			Name:        r.Mod.Name,
			Creator:     r.Mod.Creator,
			Description: r.Mod.Description,
			Word:        r.Word.Text,
			Rank:        r.Word.Rank,
		}
	}

	return SearchResponse{
		ID:        req.ID,
		Results:   hits,
		Count:     len(hits),
		TimeTaken: elapsed.Microseconds(),
		State:     s.index.State().String(),
	}
}

func (s *Server) status(id string) StatusResponse {
	stats := s.index.Stats()
	resp := StatusResponse{
		ID:     id,
		Status: "ok",
		State:  s.index.State().String(),
		Mods:   stats["mods"],
		Words:  stats["words"],
	}
	if err := s.index.Err(); err != nil {
		resp.Status = "error"
		resp.Error = err.Error()
	}
	return resp
}

func (s *Server) handleConfig(req Request) ConfigResponse {
	resp := ConfigResponse{ID: req.ID, Status: "ok"}
	if err := s.config.Update(s.configPath, req.MaxLimit, req.MinQuery, req.MaxQuery); err != nil {
		log.Errorf("Saving config: %v", err)
		resp.Status = "error"
		resp.Error = err.Error()
	}
	resp.MaxLimit = s.config.Server.MaxLimit
	resp.MinQuery = s.config.Server.MinQuery
	resp.MaxQuery = s.config.Server.MaxQuery
	return resp
}
