package prompt

import (
	"os"
	"strings"

	"github.com/astralab/astrax/internal/config"
	"github.com/astralab/astrax/internal/core"
)

// Instructions produces the fixed system-role entries injected ahead of
// all dynamic content: static identity text, structural/format text and
// an optional runtime override, in that order. Each non-empty source
// becomes its own prompt entry; they are never merged.
type Instructions struct {
	cfg *config.PromptConfig
}

func NewInstructions(cfg *config.PromptConfig) *Instructions {
	return &Instructions{cfg: cfg}
}

func (i *Instructions) Build() []core.PromptMessage {
	messages := make([]core.PromptMessage, 0)
	readFile := func(path string) string {
		content, err := os.ReadFile(path)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(string(content))
	}

	if content := readFile(i.cfg.StaticPath); content != "" {
		messages = append(messages, core.PromptMessage{Role: core.RoleSystem, Content: content})
	}
	if content := readFile(i.cfg.StructurePath); content != "" {
		messages = append(messages, core.PromptMessage{Role: core.RoleSystem, Content: content})
	}
	if i.cfg.Override != "" {
		messages = append(messages, core.PromptMessage{Role: core.RoleSystem, Content: i.cfg.Override})
	}
	return messages
}
