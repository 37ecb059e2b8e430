// Package web serves the search data and a JSON search endpoint over HTTP.
package web

import (
	"net/http"
	"sync"
	"time"

	"github.com/bastiangx/modsearch/pkg/search"
	"github.com/gin-gonic/gin"
)

// Loader starts the one-shot load of the search data.
type Loader interface {
	Load()
}

// Options configure the routes.
type Options struct {
	// DataPath is the local search data file served at /search-data.json.
	// Leave empty when the data lives elsewhere.
	DataPath string
	// PublicDir is served for every other path, like a static site.
	PublicDir string
	// MaxLimit caps the number of results of /api/search. Zero means no cap.
	MaxLimit int
}

// API holds the handlers.
type API struct {
	index    search.Searcher
	loader   Loader
	opts     Options
	loadOnce sync.Once
}

// ModResult is the JSON shape of one search result.
type ModResult struct {
	Name        string `json:"name"`
	Creator     string `json:"creator"`
	Description string `json:"description"`
	Word        string `json:"word"`
	Rank        int    `json:"rank"`
}

// SearchResponse is returned by /api/search.
type SearchResponse struct {
	Query     string      `json:"query"`
	Results   []ModResult `json:"results"`
	Count     int         `json:"count"`
	State     string      `json:"state"`
	TimeTaken int64       `json:"time_us"`
}

// StatusResponse is returned by /api/status.
type StatusResponse struct {
	State string         `json:"state"`
	Stats map[string]int `json:"stats"`
	Error string         `json:"error,omitempty"`
}

// NewAPI creates the handlers.
func NewAPI(index search.Searcher, loader Loader, opts Options) *API {
	return &API{index: index, loader: loader, opts: opts}
}

// SetupRoutes registers all routes on the router.
func SetupRoutes(router *gin.Engine, api *API) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if api.opts.DataPath != "" {
		router.GET("/search-data.json", api.DataHandler)
	}

	apiRoutes := router.Group("/api")
	{
		apiRoutes.GET("/search", api.SearchHandler)
		apiRoutes.GET("/status", api.StatusHandler)
	}

	if api.opts.PublicDir != "" {
		files := http.FileServer(gin.Dir(api.opts.PublicDir, false))
		router.NoRoute(func(c *gin.Context) {
			if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
				return
			}
			files.ServeHTTP(c.Writer, c.Request)
		})
	}
}

// NewRouter builds a gin engine with logging and recovery.
func NewRouter(api *API) *gin.Engine {
	router := gin.New()
	router.Use(RequestLogger(), gin.Recovery(), CORSMiddleware())
	SetupRoutes(router, api)
	return router
}

// activate starts loading on the first search, like the page does on first focus.
func (api *API) activate() {
	api.loadOnce.Do(func() {
		if api.loader != nil {
			api.loader.Load()
		}
	})
}

// DataHandler serves the raw search data file.
func (api *API) DataHandler(c *gin.Context) {
	c.File(api.opts.DataPath)
}

// SearchHandler runs a prefix search for ?q=.
func (api *API) SearchHandler(c *gin.Context) {
	api.activate()

	query := c.Query("q")
	start := time.Now()
	results := api.index.Search(query)
	elapsed := time.Since(start)

	if api.opts.MaxLimit > 0 && len(results) > api.opts.MaxLimit {
		results = results[:api.opts.MaxLimit]
	}

	mods := make([]ModResult, len(results))
	for i, r := range results {
		mods[i] = ModResult{
			Name:        r.Mod.Name,
			Creator:     r.Mod.Creator,
			Description: r.Mod.Description,
			Word:        r.Word.Text,
			Rank:        r.Word.Rank,
		}
	}

	c.JSON(http.StatusOK, SearchResponse{
		Query:     query,
		Results:   mods,
		Count:     len(mods),
		State:     api.index.State().String(),
		TimeTaken: elapsed.Microseconds(),
	})
}

// StatusHandler reports the index state.
func (api *API) StatusHandler(c *gin.Context) {
	resp := StatusResponse{
		State: api.index.State().String(),
		Stats: api.index.Stats(),
	}
	if err := api.index.Err(); err != nil {
		resp.Error = err.Error()
	}
	c.JSON(http.StatusOK, resp)
}
