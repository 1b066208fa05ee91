package server

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/termdict/termserve/pkg/config"
	"github.com/termdict/termserve/pkg/dictionary"
	"github.com/termdict/termserve/pkg/search"
)

var serverTerms = []dictionary.Term{
	{English: "cloud", Turkish: "bulut"},
	{English: "cloud computing", Turkish: "bulut bilişim"},
	{English: "database", Turkish: "veritabanı"},
	{English: "network", Turkish: "ağ"},
}

func serverDict() *dictionary.Dictionary {
	return dictionary.New(serverTerms, dictionary.Metadata{
		Source:     dictionary.DefaultSource,
		TotalTerms: len(serverTerms),
		Version:    "1.0",
	})
}

// runServer feeds the encoded requests through a fresh server and returns
// a decoder positioned just past the ready banner.
func runServer(t *testing.T, requests ...Request) *msgpack.Decoder {
	t.Helper()

	var input bytes.Buffer
	enc := msgpack.NewEncoder(&input)
	for _, req := range requests {
		if err := enc.Encode(req); err != nil {
			t.Fatalf("encoding request: %v", err)
		}
	}

	dict := serverDict()
	var output bytes.Buffer
	srv := NewServerWithIO(search.New(dict), dict, config.DefaultConfig(), &input, &output)
	if err := srv.Start(); err != nil {
		t.Fatalf("server returned error: %v", err)
	}

	dec := msgpack.NewDecoder(&output)
	var ready map[string]string
	if err := dec.Decode(&ready); err != nil {
		t.Fatalf("decoding ready banner: %v", err)
	}
	if ready["status"] != "ready" {
		t.Fatalf("expected ready banner, got %v", ready)
	}
	return dec
}

func decodeSearch(t *testing.T, dec *msgpack.Decoder) SearchResponse {
	t.Helper()
	var resp SearchResponse
	if err := dec.Decode(&resp); err != nil {
		t.Fatalf("decoding search response: %v", err)
	}
	return resp
}

func TestServerSearch(t *testing.T) {
	dec := runServer(t, Request{ID: "req_1", Query: "cloud", Mode: "exact", Lang: "en", Limit: 10})

	resp := decodeSearch(t, dec)
	if resp.ID != "req_1" {
		t.Errorf("expected id req_1, got %q", resp.ID)
	}
	if resp.Count != 1 || len(resp.Results) != 1 {
		t.Fatalf("expected one hit, got count=%d results=%d", resp.Count, len(resp.Results))
	}
	hit := resp.Results[0]
	if hit.English != "cloud" || hit.Turkish != "bulut" {
		t.Errorf("expected cloud/bulut, got %s/%s", hit.English, hit.Turkish)
	}
	if hit.Score == nil || *hit.Score != 100 {
		t.Errorf("expected score 100 on exact hit, got %v", hit.Score)
	}
}

func TestServerSearchDefaults(t *testing.T) {
	dec := runServer(t, Request{ID: "req_2", Query: "bulut"})

	resp := decodeSearch(t, dec)
	if resp.Count != 2 {
		t.Fatalf("expected fuzzy defaults to find 2 records, got %d", resp.Count)
	}
	if resp.Results[0].Turkish != "bulut" {
		t.Errorf("expected best hit bulut, got %q", resp.Results[0].Turkish)
	}
	if resp.Results[1].Turkish != "bulut bilişim" {
		t.Errorf("expected second hit bulut bilişim, got %q", resp.Results[1].Turkish)
	}
	for i, hit := range resp.Results {
		if hit.Score == nil {
			t.Errorf("fuzzy hit %d has no score", i)
		}
	}
}

func TestServerSearchClampsLimit(t *testing.T) {
	// DefaultConfig bounds limits to [5, 50], so l=1 is raised and both
	// substring matches come back.
	dec := runServer(t, Request{ID: "req_3", Query: "cloud", Mode: "partial", Lang: "en", Limit: 1})

	resp := decodeSearch(t, dec)
	if resp.Count != 2 {
		t.Fatalf("expected clamped limit to return 2 hits, got %d", resp.Count)
	}
	for i, hit := range resp.Results {
		if hit.Score != nil {
			t.Errorf("partial hit %d should carry no score, got %v", i, *hit.Score)
		}
	}
}

func TestServerSearchMinScoreOverride(t *testing.T) {
	zero := 0.0
	dec := runServer(t,
		Request{ID: "req_4", Query: "xqzw"},
		Request{ID: "req_5", Query: "xqzw", MinScore: &zero},
	)

	filtered := decodeSearch(t, dec)
	if filtered.Count != 0 {
		t.Fatalf("expected default threshold to reject junk query, got %d hits", filtered.Count)
	}
	open := decodeSearch(t, dec)
	if open.ID != "req_5" {
		t.Errorf("expected id req_5, got %q", open.ID)
	}
	if open.Count != len(serverTerms) {
		t.Errorf("expected zero threshold to pass all %d records, got %d", len(serverTerms), open.Count)
	}
}

func TestServerErrors(t *testing.T) {
	testCases := []struct {
		description string
		request     Request
		wantCode    int
		wantErr     string
	}{
		{
			description: "missing query",
			request:     Request{ID: "e1"},
			wantCode:    400,
			wantErr:     "Missing 'q' parameter",
		},
		{
			description: "oversized query",
			request:     Request{ID: "e2", Query: strings.Repeat("a", 201)},
			wantCode:    400,
			wantErr:     "maximum length",
		},
		{
			description: "unknown mode",
			request:     Request{ID: "e3", Query: "cloud", Mode: "soundex"},
			wantCode:    400,
			wantErr:     "unsupported search mode",
		},
		{
			description: "unknown scope",
			request:     Request{ID: "e4", Query: "cloud", Lang: "de"},
			wantCode:    400,
			wantErr:     "unsupported language scope",
		},
		{
			description: "unknown action",
			request:     Request{ID: "e5", Action: "reload"},
			wantCode:    400,
			wantErr:     "Unknown action",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			dec := runServer(t, tc.request)

			var errResp SearchError
			if err := dec.Decode(&errResp); err != nil {
				t.Fatalf("decoding error response: %v", err)
			}
			if errResp.ID != tc.request.ID {
				t.Errorf("expected id %q, got %q", tc.request.ID, errResp.ID)
			}
			if errResp.Code != tc.wantCode {
				t.Errorf("expected code %d, got %d", tc.wantCode, errResp.Code)
			}
			if !strings.Contains(errResp.Error, tc.wantErr) {
				t.Errorf("expected error containing %q, got %q", tc.wantErr, errResp.Error)
			}
		})
	}
}

func TestServerContinuesAfterError(t *testing.T) {
	dec := runServer(t,
		Request{ID: "bad", Query: "cloud", Mode: "soundex"},
		Request{ID: "good", Query: "cloud", Mode: "exact", Lang: "en"},
	)

	var errResp SearchError
	if err := dec.Decode(&errResp); err != nil {
		t.Fatalf("decoding error response: %v", err)
	}
	if errResp.Code != 400 {
		t.Fatalf("expected code 400, got %d", errResp.Code)
	}

	resp := decodeSearch(t, dec)
	if resp.ID != "good" || resp.Count != 1 {
		t.Errorf("expected follow-up request to succeed, got id=%q count=%d", resp.ID, resp.Count)
	}
}

func TestServerRandom(t *testing.T) {
	known := make(map[string]string, len(serverTerms))
	for _, term := range serverTerms {
		known[term.English] = term.Turkish
	}

	dec := runServer(t, Request{ID: "rnd_1", Action: "random"})

	resp := decodeSearch(t, dec)
	if resp.Count != 1 || len(resp.Results) != 1 {
		t.Fatalf("expected one record, got count=%d results=%d", resp.Count, len(resp.Results))
	}
	hit := resp.Results[0]
	if tr, ok := known[hit.English]; !ok || tr != hit.Turkish {
		t.Errorf("random returned unknown record %s/%s", hit.English, hit.Turkish)
	}
	if hit.Score != nil {
		t.Errorf("random record should carry no score, got %v", *hit.Score)
	}
}

func TestServerSample(t *testing.T) {
	dec := runServer(t,
		Request{ID: "smp_1", Action: "sample", N: 3},
		Request{ID: "smp_2", Action: "sample"},
	)

	resp := decodeSearch(t, dec)
	if resp.Count != 3 {
		t.Fatalf("expected 3 sampled records, got %d", resp.Count)
	}
	seen := make(map[string]bool)
	for _, hit := range resp.Results {
		if seen[hit.English] {
			t.Errorf("sample repeated record %q", hit.English)
		}
		seen[hit.English] = true
	}

	// Default sample size exceeds the fixture, so the whole set comes back.
	resp = decodeSearch(t, dec)
	if resp.Count != len(serverTerms) {
		t.Errorf("expected default sample clamped to %d, got %d", len(serverTerms), resp.Count)
	}
}

func TestServerStats(t *testing.T) {
	dec := runServer(t, Request{ID: "sts_1", Action: "stats"})

	var resp StatsResponse
	if err := dec.Decode(&resp); err != nil {
		t.Fatalf("decoding stats response: %v", err)
	}
	if resp.ID != "sts_1" {
		t.Errorf("expected id sts_1, got %q", resp.ID)
	}
	if resp.Source != dictionary.DefaultSource {
		t.Errorf("expected source %q, got %q", dictionary.DefaultSource, resp.Source)
	}
	if resp.TotalTerms != len(serverTerms) || resp.Count != len(serverTerms) {
		t.Errorf("expected both counts %d, got declared=%d loaded=%d", len(serverTerms), resp.TotalTerms, resp.Count)
	}
	if resp.Version != "1.0" {
		t.Errorf("expected version 1.0, got %q", resp.Version)
	}
}

func TestServerPing(t *testing.T) {
	dec := runServer(t, Request{ID: "png_1", Action: "ping"})

	var resp map[string]string
	if err := dec.Decode(&resp); err != nil {
		t.Fatalf("decoding ping response: %v", err)
	}
	if resp["id"] != "png_1" || resp["status"] != "ok" {
		t.Errorf("expected ok ping reply, got %v", resp)
	}
}

func TestServerMalformedStream(t *testing.T) {
	dict := serverDict()
	input := bytes.NewBufferString("this is not msgpack")
	var output bytes.Buffer

	srv := NewServerWithIO(search.New(dict), dict, config.DefaultConfig(), input, &output)
	if err := srv.Start(); err == nil {
		t.Fatal("expected decode error for malformed stream")
	}
}
