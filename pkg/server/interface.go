/*
Package server implements msgpack IPC for mod search.

Clients write msgpack messages to stdin and read msgpack responses from
stdout, one response per request, in order. Every message carries an ID that
is echoed back.

Search requests look like this (shown as JSON for readability):

	{"id": "req_001", "q": "cav", "l": 10}

and are answered with the matching mods, best rank first, one entry per mod:

	{"id": "req_001", "r": [{"n": "Ancient Cave", "c": "Eli2", "d": "A dark cave", "w": "cave", "k": 1}], "c": 1, "t": 42, "s": "ready"}

The first request of a session triggers loading of the search data. Until it
finishes, searches return no results and report the index state in "s".

Other actions:

	{"id": "st_001", "action": "status"}
	{"id": "ld_001", "action": "load"}
	{"id": "cf_001", "action": "config", "max_limit": 32}
*/
package server

// Actions understood by the server. An empty action is a search.
const (
	ActionSearch = "search"
	ActionStatus = "status"
	ActionLoad   = "load"
	ActionConfig = "config"
)

// Request is the envelope of every client message.
type Request struct {
	ID       string `msgpack:"id"`
	Action   string `msgpack:"action,omitempty"`
	Query    string `msgpack:"q,omitempty"`
	Limit    int    `msgpack:"l,omitempty"`
	MaxLimit *int   `msgpack:"max_limit,omitempty"`
	MinQuery *int   `msgpack:"min_query,omitempty"`
	MaxQuery *int   `msgpack:"max_query,omitempty"`
}

// SearchHit is one rendered result.
type SearchHit struct {
	Name        string `msgpack:"n"`
	Creator     string `msgpack:"c"`
	Description string `msgpack:"d"`
	Word        string `msgpack:"w"`
	Rank        int    `msgpack:"k"`
}

// SearchResponse answers a search request. TimeTaken is in microseconds.
type SearchResponse struct {
	ID        string      `msgpack:"id"`
	Results   []SearchHit `msgpack:"r"`
	Count     int         `msgpack:"c"`
	TimeTaken int64       `msgpack:"t"`
	State     string      `msgpack:"s"`
}

// StatusResponse answers status and load requests.
type StatusResponse struct {
	ID     string `msgpack:"id"`
	Status string `msgpack:"status"`
	State  string `msgpack:"state,omitempty"`
	Mods   int    `msgpack:"mods,omitempty"`
	Words  int    `msgpack:"words,omitempty"`
	Error  string `msgpack:"error,omitempty"`
}

// ConfigResponse answers config updates.
type ConfigResponse struct {
	ID       string `msgpack:"id"`
	Status   string `msgpack:"status"`
	MaxLimit int    `msgpack:"max_limit"`
	MinQuery int    `msgpack:"min_query"`
	MaxQuery int    `msgpack:"max_query"`
	Error    string `msgpack:"error,omitempty"`
}

// SearchError holds basic error information for failed requests
type SearchError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
