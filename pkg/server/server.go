package server

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/termdict/termserve/pkg/config"
	"github.com/termdict/termserve/pkg/dictionary"
	"github.com/termdict/termserve/pkg/search"
)

// Server handles the IPC for dictionary searches
type Server struct {
	searcher search.ISearcher
	dict     *dictionary.Dictionary
	config   *config.Config
	decoder  *msgpack.Decoder
	encoder  *msgpack.Encoder
	writer   *bufio.Writer
}

// NewServer creates a search server using stdin/stdout for IPC
func NewServer(searcher search.ISearcher, dict *dictionary.Dictionary, cfg *config.Config) *Server {
	return NewServerWithIO(searcher, dict, cfg, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a search server over the given streams
func NewServerWithIO(searcher search.ISearcher, dict *dictionary.Dictionary, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	bw := bufio.NewWriter(w)
	return &Server{
		searcher: searcher,
		dict:     dict,
		config:   cfg,
		decoder:  msgpack.NewDecoder(bufio.NewReader(r)),
		encoder:  msgpack.NewEncoder(bw),
		writer:   bw,
	}
}

// Start begins listening for IPC requests
func (s *Server) Start() error {
	log.Debug("Starting server.")

	// Signal that the server is ready
	s.send(map[string]string{"status": "ready"})

	for {
		var request Request
		if err := s.decoder.Decode(&request); err != nil {
			if err == io.EOF {
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			return err
		}
		s.handleRequest(request)
	}
}

// handleRequest routes one decoded request on its action field
func (s *Server) handleRequest(request Request) {
	switch request.Action {
	case "":
		s.handleSearch(request)
	case "random":
		s.handleRandom(request)
	case "sample":
		s.handleSample(request)
	case "stats":
		s.handleStats(request)
	case "ping":
		s.send(map[string]string{"id": request.ID, "status": "ok"})
	default:
		s.sendError(request.ID, fmt.Sprintf("Unknown action: %s", request.Action), 400)
	}
}

// handleSearch validates the envelope, resolves omitted parameters from the
// configured defaults and runs one query against the searcher.
func (s *Server) handleSearch(request Request) {
	query := request.Query
	if query == "" {
		s.sendError(request.ID, "Missing 'q' parameter", 400)
		log.Debug("Query is empty in request")
		return
	}
	if utf8.RuneCountInString(query) > s.config.Server.MaxQueryLength {
		s.sendError(request.ID, fmt.Sprintf("Query exceeds maximum length of %d characters", s.config.Server.MaxQueryLength), 400)
		log.Debug("Query is too long in request")
		return
	}

	params, err := s.resolveParams(request)
	if err != nil {
		s.sendError(request.ID, err.Error(), 400)
		return
	}

	start := time.Now()
	results, err := s.searcher.Search(query, params)
	if err != nil {
		s.sendError(request.ID, err.Error(), 500)
		log.Errorf("Search failed: %v", err)
		return
	}
	elapsed := time.Since(start)

	s.sendResults(request.ID, toEntries(results), elapsed)
}

// resolveParams merges request fields with the configured defaults.
func (s *Server) resolveParams(request Request) (search.Params, error) {
	params, err := s.config.Params()
	if err != nil {
		return search.Params{}, err
	}
	if request.Mode != "" {
		mode, err := search.ParseMode(request.Mode)
		if err != nil {
			return search.Params{}, err
		}
		params.Mode = mode
	}
	if request.Lang != "" {
		scope, err := search.ParseScope(request.Lang)
		if err != nil {
			return search.Params{}, err
		}
		params.Scope = scope
	}
	if request.Limit > 0 {
		params.Limit = s.config.ClampLimit(request.Limit)
	}
	if request.MinScore != nil {
		params.MinScore = *request.MinScore
	}
	return params, nil
}

// handleRandom returns one uniformly picked record
func (s *Server) handleRandom(request Request) {
	start := time.Now()
	term, ok := s.dict.Random()
	if !ok {
		s.sendError(request.ID, "Dictionary is empty", 500)
		return
	}
	entries := []ResultEntry{{English: term.English, Turkish: term.Turkish}}
	s.sendResults(request.ID, entries, time.Since(start))
}

// handleSample returns distinct random records, count defaulting from config
func (s *Server) handleSample(request Request) {
	n := request.N
	if n < 1 {
		n = s.config.Server.DefaultSample
	}
	start := time.Now()
	terms := s.dict.Sample(n)
	entries := make([]ResultEntry, len(terms))
	for i, t := range terms {
		entries[i] = ResultEntry{English: t.English, Turkish: t.Turkish}
	}
	s.sendResults(request.ID, entries, time.Since(start))
}

// handleStats reports dictionary metadata and the searchable record count
func (s *Server) handleStats(request Request) {
	meta := s.dict.Meta()
	s.send(StatsResponse{
		ID:         request.ID,
		Source:     meta.Source,
		Version:    meta.Version,
		TotalTerms: meta.TotalTerms,
		Count:      s.dict.Len(),
	})
}

// sendResults wraps entries in a SearchResponse, attaching timing when enabled.
func (s *Server) sendResults(id string, entries []ResultEntry, elapsed time.Duration) {
	response := SearchResponse{
		ID:      id,
		Results: entries,
		Count:   len(entries),
	}
	if s.config.Server.Timing {
		response.TimeTaken = elapsed.Microseconds()
	}
	s.send(response)
}

// send encodes one response frame and flushes it to the client.
// Encode failures are logged only: a writer that rejects one frame will
// reject the error frame too.
func (s *Server) send(response any) {
	if err := s.encoder.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
		return
	}
	if err := s.writer.Flush(); err != nil {
		log.Errorf("Flushing response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	s.send(SearchError{
		ID:    id,
		Error: message,
		Code:  code,
	})
}

// toEntries flattens engine results into wire entries
func toEntries(results []search.Result) []ResultEntry {
	entries := make([]ResultEntry, len(results))
	for i, r := range results {
		entries[i] = ResultEntry{
			English: r.Term.English,
			Turkish: r.Term.Turkish,
			Score:   r.Score,
		}
	}
	return entries
}
