package cli

import (
	"bufio"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
)

// Commands understood by the input loop besides plain queries.
const (
	cmdBlur  = ":blur"
	cmdFocus = ":focus"
	cmdQuit  = ":q"
)

// InputHandler reads queries line by line and feeds them to a Widget.
type InputHandler struct {
	widget         *Widget
	in             io.Reader
	maxQueryLength int
	requestCount   int
}

// NewInputHandler creates an InputHandler reading from in.
// maxLength of 0 disables the query length check.
func NewInputHandler(widget *Widget, in io.Reader, maxLength int) *InputHandler {
	return &InputHandler{
		widget:         widget,
		in:             in,
		maxQueryLength: maxLength,
	}
}

// Start runs the loop until input ends or the quit command is read.
func (h *InputHandler) Start() error {
	log.Print("ModSearch CLI")
	log.Print("type part of a mod name, creator or description and press Enter (:q to exit):")

	reader := bufio.NewReader(h.in)
	for {
		line, err := reader.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if !h.handleInput(strings.TrimSpace(line)) {
			return nil
		}
	}
}

// handleInput processes one line and reports whether the loop should continue.
func (h *InputHandler) handleInput(line string) bool {
	switch line {
	case cmdQuit:
		return false
	case cmdBlur:
		h.widget.Blur()
		return true
	case cmdFocus:
		h.widget.Focus()
		return true
	case "":
		return true
	}

	if h.maxQueryLength > 0 && utf8.RuneCountInString(line) > h.maxQueryLength {
		log.Errorf("Query too long: %s", line)
		return true
	}

	h.requestCount++

	start := time.Now()
	if err := h.widget.Input(line); err != nil {
		log.Errorf("Rendering results: %v", err)
		return true
	}
	log.Debugf("Took [ %v ] for query '%s' (#%d)", time.Since(start), line, h.requestCount)
	return true
}
