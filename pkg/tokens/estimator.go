package tokens

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

var (
	tk     *tiktoken.Tiktoken
	tkErr  error
	tkOnce sync.Once
)

func getTokenizer() (*tiktoken.Tiktoken, error) {
	tkOnce.Do(func() {
		tk, tkErr = tiktoken.GetEncoding("cl100k_base")
	})
	return tk, tkErr
}

// Estimate returns an approximate token count for text. It uses the
// cl100k_base encoding when available and falls back to a rune/4
// heuristic when the encoding cannot be loaded. The result is only
// used for logging and diagnostics, never for truncation.
func Estimate(text string) int {
	if text == "" {
		return 0
	}
	enc, err := getTokenizer()
	if err != nil {
		return len([]rune(text))/4 + 1
	}
	return len(enc.Encode(text, nil, nil))
}
