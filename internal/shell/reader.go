package shell

import (
	"fmt"
	"io"

	"github.com/chzyer/readline"

	"smallsh/internal/config"
	"smallsh/internal/history"
)

// LineReader supplies input lines. *readline.Instance satisfies it.
type LineReader interface {
	Readline() (string, error)
	Close() error
}

type historySaver interface {
	SaveHistory(content string) error
}

type noticeWriter interface {
	Stdout() io.Writer
}

// NewLineEditor returns an interactive line editor seeded with hist. A
// Ctrl-Z typed at the prompt is turned into a stop request for the shell
// instead of suspending it.
func NewLineEditor(cfg *config.Config, hist *history.History) (*readline.Instance, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:                 cfg.Prompt,
		HistoryLimit:           cfg.HistorySize,
		DisableAutoSaveHistory: true,
		FuncFilterInputRune:    filterInputRune,
	})
	if err != nil {
		return nil, fmt.Errorf("error initializing readline: %w", err)
	}

	for _, line := range hist.GetAll() {
		if err := rl.SaveHistory(line); err != nil {
			rl.Close()
			return nil, fmt.Errorf("error loading history: %w", err)
		}
	}
	return rl, nil
}

func filterInputRune(r rune) (rune, bool) {
	if r == readline.CharCtrlZ {
		_ = RaiseStopRequest()
		return r, false
	}
	return r, true
}
