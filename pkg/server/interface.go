/*
Package server implements msgpack IPC for dictionary search services.

The server package runs request response search over stdin/stdout using
binary msgpack frames. One envelope covers every operation and the action
field routes it. Messages are processed synchronously with timing info
included in responses.

# IPC

Clients write one msgpack-encoded Request per operation and read one
response frame back. A search request leaves the action empty:

	{"id": "req_001", "q": "bulut", "m": "fuzzy", "lang": "both", "l": 10}

The server answers with matching records ranked by score:

	{"id": "req_001", "r": [{"en": "cloud", "tr": "bulut", "sc": 100}], "c": 1, "t": 145}

Record operations set an action instead of a query:

	{"id": "rnd_001", "action": "random"}
	{"id": "smp_001", "action": "sample", "n": 5}
	{"id": "sts_001", "action": "stats"}

Errors come back as {"id", "e", "c"} where the code follows HTTP
convention: 400 for a bad request, 500 for a server fault.

# Message Types

Request is the single envelope. Mode, lang, limit and min score are all
optional and omitted fields fall back to the configured defaults. Mode
and scope strings are parsed at this boundary so a typo fails the one
request instead of poisoning the session.

SearchResponse carries the hits for search, random and sample alike.
Scores only travel for modes that rank; substring hits come without one.

StatsResponse reports the loaded dictionary: its source label and
version plus the declared and the actually searchable record counts.

msgpack keeps frames a good deal smaller than JSON and parses faster,
which matters when a client round-trips on every keystroke.
*/
package server

// Request - single request envelope, routed on Action
type Request struct {
	ID       string   `msgpack:"id"`
	Action   string   `msgpack:"action,omitempty"` // "", "random", "sample", "stats", "ping"
	Query    string   `msgpack:"q,omitempty"`
	Mode     string   `msgpack:"m,omitempty"`
	Lang     string   `msgpack:"lang,omitempty"`
	Limit    int      `msgpack:"l,omitempty"`
	MinScore *float64 `msgpack:"ms,omitempty"`
	N        int      `msgpack:"n,omitempty"` // for "sample"
}

// ResultEntry - one matched record
type ResultEntry struct {
	English string   `msgpack:"en"`
	Turkish string   `msgpack:"tr"`
	Score   *float64 `msgpack:"sc,omitempty"`
}

// SearchResponse - response for search, random and sample
type SearchResponse struct {
	ID        string        `msgpack:"id"`
	Results   []ResultEntry `msgpack:"r"`
	Count     int           `msgpack:"c"`
	TimeTaken int64         `msgpack:"t,omitempty"`
}

// StatsResponse - dictionary metadata response
type StatsResponse struct {
	ID         string `msgpack:"id"`
	Source     string `msgpack:"source"`
	Version    string `msgpack:"version,omitempty"`
	TotalTerms int    `msgpack:"total_terms"`
	Count      int    `msgpack:"count"`
}

// SearchError holds basic error information for failed requests
type SearchError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
