// Package cli handles the interactive search session for terminal use, DBG and testing ranking changes
package cli

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/termdict/termserve/pkg/complete"
	"github.com/termdict/termserve/pkg/config"
	"github.com/termdict/termserve/pkg/dictionary"
	"github.com/termdict/termserve/pkg/export"
	"github.com/termdict/termserve/pkg/search"
)

// completionHintLimit caps the "try:" hints shown after a zero-hit search.
const completionHintLimit = 5

var (
	styleEnglish = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	styleTurkish = lipgloss.NewStyle().Foreground(lipgloss.Color("217"))
)

// InputHandler runs the prompt loop. Plain input searches the dictionary
// with the session's current parameters; lines starting with ':' adjust
// those parameters or run record operations.
type InputHandler struct {
	searcher    search.ISearcher
	dict        *dictionary.Dictionary
	completer   *complete.Completer
	config      *config.Config
	configPath  string
	params      search.Params
	lastQuery   string
	lastResults []search.Result
}

// NewInputHandler handles initialization of the InputHandler with the session defaults
func NewInputHandler(searcher search.ISearcher, dict *dictionary.Dictionary, completer *complete.Completer, cfg *config.Config, configPath string, params search.Params) *InputHandler {
	return &InputHandler{
		searcher:   searcher,
		dict:       dict,
		completer:  completer,
		config:     cfg,
		configPath: configPath,
		params:     params,
	}
}

// Start begins the interface loop.
// It continuously prompts for input, reads a line from stdin and passes the
// trimmed input to the query or command handler. EOF ends the session.
func (h *InputHandler) Start() error {
	log.Print("TermServe CLI")
	reader := bufio.NewReader(os.Stdin)
	log.Print("type a term and press Enter to search, :help lists commands (Ctrl+C to exit):")

	for {
		log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			if h.handleCommand(line) {
				return nil
			}
			continue
		}
		h.handleQuery(line)
	}
}

// handleCommand dispatches one ':' line. Returns true when the session
// should end.
func (h *InputHandler) handleCommand(line string) bool {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case ":quit", ":q":
		return true
	case ":help", ":h":
		h.printHelp()
	case ":mode":
		h.setMode(args)
	case ":lang":
		h.setScope(args)
	case ":limit":
		h.setLimit(args)
	case ":score":
		h.setScore(args)
	case ":random":
		h.showRandom()
	case ":sample":
		h.showSample(args)
	case ":stats":
		h.showStats()
	case ":export":
		h.exportResults(args)
	case ":save":
		h.saveDefaults()
	default:
		log.Errorf("Unknown command: %s (try :help)", cmd)
	}
	return false
}

// handleQuery runs a single search and prints the ranked results.
// Zero-hit queries fall back to prefix completion hints.
func (h *InputHandler) handleQuery(query string) {
	if utf8.RuneCountInString(query) > h.config.Server.MaxQueryLength {
		log.Errorf("Query too long: %s", query)
		return
	}

	start := time.Now()
	results, err := h.searcher.Search(query, h.params)
	if err != nil {
		log.Errorf("Search failed: %v", err)
		return
	}
	elapsed := time.Since(start)
	log.Debugf("Took [ %v ] for query '%s'", elapsed, query)

	if len(results) == 0 {
		log.Warnf("No matches for '%s' in %s mode", query, h.params.Mode)
		h.suggestCompletions(query)
		return
	}

	h.lastQuery = query
	h.lastResults = results

	log.Printf("Found %d matches for '%s':", len(results), query)
	for i, r := range results {
		english := styleEnglish.Render(r.Term.English)
		turkish := styleTurkish.Render(r.Term.Turkish)
		if r.Score != nil {
			log.Printf("%2d. %-40s %-30s (score: %5.1f)", i+1, english, turkish, *r.Score)
		} else {
			log.Printf("%2d. %-40s %-30s", i+1, english, turkish)
		}
	}
}

// suggestCompletions prints headword hints sharing a prefix with the query.
func (h *InputHandler) suggestCompletions(query string) {
	if h.completer == nil {
		return
	}
	hints := h.completer.Complete(query, completionHintLimit)
	if len(hints) == 0 {
		return
	}
	log.Printf("try: %s", strings.Join(hints, ", "))
}

func (h *InputHandler) setMode(args []string) {
	if len(args) == 0 {
		log.Printf("mode: %s", h.params.Mode)
		return
	}
	mode, err := search.ParseMode(args[0])
	if err != nil {
		log.Errorf("%v", err)
		return
	}
	h.params.Mode = mode
	log.Printf("mode: %s", mode)
}

func (h *InputHandler) setScope(args []string) {
	if len(args) == 0 {
		log.Printf("lang: %s", h.params.Scope)
		return
	}
	scope, err := search.ParseScope(args[0])
	if err != nil {
		log.Errorf("%v", err)
		return
	}
	h.params.Scope = scope
	log.Printf("lang: %s", scope)
}

func (h *InputHandler) setLimit(args []string) {
	if len(args) == 0 {
		log.Printf("limit: %d", h.params.Limit)
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		log.Errorf("Not a number: %s", args[0])
		return
	}
	h.params.Limit = h.config.ClampLimit(n)
	if h.params.Limit != n {
		log.Warnf("limit clamped to %d", h.params.Limit)
		return
	}
	log.Printf("limit: %d", h.params.Limit)
}

func (h *InputHandler) setScore(args []string) {
	if len(args) == 0 {
		log.Printf("score: %.1f", h.params.MinScore)
		return
	}
	score, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		log.Errorf("Not a number: %s", args[0])
		return
	}
	if score < 0 || score > 100 {
		log.Errorf("Score threshold must be within 0..100")
		return
	}
	h.params.MinScore = score
	log.Printf("score: %.1f", score)
}

func (h *InputHandler) showRandom() {
	term, ok := h.dict.Random()
	if !ok {
		log.Warn("Dictionary is empty")
		return
	}
	log.Printf("%s -> %s", styleEnglish.Render(term.English), styleTurkish.Render(term.Turkish))
}

func (h *InputHandler) showSample(args []string) {
	n := h.config.Server.DefaultSample
	if len(args) > 0 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil {
			log.Errorf("Not a number: %s", args[0])
			return
		}
		n = parsed
	}
	terms := h.dict.Sample(n)
	if len(terms) == 0 {
		log.Warn("Dictionary is empty")
		return
	}
	for i, term := range terms {
		log.Printf("%2d. %-40s %s", i+1, styleEnglish.Render(term.English), styleTurkish.Render(term.Turkish))
	}
}

func (h *InputHandler) showStats() {
	meta := h.dict.Meta()
	log.Printf("source: %s", meta.Source)
	if meta.Version != "" {
		log.Printf("version: %s", meta.Version)
	}
	log.Printf("records: %d searchable, %d declared", h.searcher.Len(), meta.TotalTerms)
	log.Printf("session: mode=%s lang=%s limit=%d score=%.1f",
		h.params.Mode, h.params.Scope, h.params.Limit, h.params.MinScore)
}

// exportResults writes the last result set to disk. An explicit path wins
// over the timestamped default name.
func (h *InputHandler) exportResults(args []string) {
	if len(h.lastResults) == 0 {
		log.Warn("Nothing to export yet, run a search first")
		return
	}

	format := export.FormatJSON
	if len(args) > 0 {
		parsed, err := export.ParseFormat(args[0])
		if err != nil {
			log.Errorf("%v", err)
			return
		}
		format = parsed
	}
	path := export.DefaultFilename(format, time.Now())
	if len(args) > 1 {
		path = args[1]
	}

	if err := export.WriteFile(path, format, h.lastResults); err != nil {
		log.Errorf("Export failed: %v", err)
		return
	}
	log.Printf("Saved %d results for '%s' to %s", len(h.lastResults), h.lastQuery, path)
}

// saveDefaults persists the session parameters back to the config file.
func (h *InputHandler) saveDefaults() {
	if h.configPath == "" {
		log.Warn("No config file in use, nothing to save")
		return
	}
	mode := h.params.Mode.String()
	scope := h.params.Scope.String()
	limit := h.params.Limit
	minScore := h.params.MinScore
	if err := h.config.Update(h.configPath, &mode, &scope, &limit, &minScore); err != nil {
		log.Errorf("Failed to save defaults: %v", err)
		return
	}
	log.Printf("Saved session defaults to %s", h.configPath)
}

func (h *InputHandler) printHelp() {
	log.Print("Plain input searches the dictionary. Commands:")
	log.Print("  :mode [exact|partial|fuzzy]   show or set the match mode")
	log.Print("  :lang [en|tr|both]            show or set the language scope")
	log.Print("  :limit [n]                    cap the result count")
	log.Print("  :score [0..100]               fuzzy score threshold")
	log.Print("  :random                       show one random record")
	log.Print("  :sample [n]                   show random records")
	log.Print("  :stats                        dictionary and session info")
	log.Print("  :export [json|csv|txt] [path] save the last results")
	log.Print("  :save                         persist session settings")
	log.Print("  :quit                         exit")
}
