package notebooks

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/reusee/tairlm/sandboxes"
)

type document struct {
	Prompt string `json:"prompt"`
	Steps  []Step `json:"steps"`
}

// legacyDocument accepts files written with the older "entries" key.
type legacyDocument struct {
	Prompt  string `json:"prompt"`
	Steps   []Step `json:"steps"`
	Entries []Step `json:"entries"`
}

var _ json.Marshaler = new(Ledger)

func (l *Ledger) MarshalJSON() ([]byte, error) {
	doc := document{
		Prompt: l.prompt,
		Steps:  l.Steps(),
	}
	if doc.Steps == nil {
		doc.Steps = []Step{}
	}
	return json.Marshal(doc)
}

var _ json.Unmarshaler = new(Ledger)

// UnmarshalJSON replaces the prompt and steps and starts a fresh environment with empty context.
// Bridge and tokenizer of the current environment are kept if present.
func (l *Ledger) UnmarshalJSON(data []byte) error {
	var doc legacyDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	steps := doc.Steps
	if steps == nil {
		steps = doc.Entries
	}

	var config sandboxes.Config
	var bridge sandboxes.Asker
	if l.env != nil {
		config.Tokenizer = l.env.Tokenizer()
		bridge = l.env.Bridge()
	}
	env, err := sandboxes.New("", bridge, config)
	if err != nil {
		return fmt.Errorf("new environment: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.prompt = doc.Prompt
	l.steps = steps
	l.env = env
	l.snapshot = false
	if l.outputTokens <= 0 {
		l.outputTokens = DefaultOutputTokens
	}
	return nil
}

// Decode rebuilds a ledger from its JSON form on a fresh environment built with config.
func Decode(data []byte, bridge sandboxes.Asker, config Config) (*Ledger, error) {
	ret, err := New("", "", bridge, config)
	if err != nil {
		return nil, err
	}
	if err := ret.UnmarshalJSON(data); err != nil {
		return nil, fmt.Errorf("decode ledger: %w", err)
	}
	return ret, nil
}

// Save writes the ledger to path through a temporary file in the same directory.
func (l *Ledger) Save(path string) (err error) {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(path), ".ledger-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(f.Name())
		}
	}()
	if _, err = f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

// Load reads a ledger saved by Save.
func Load(path string, bridge sandboxes.Asker, config Config) (*Ledger, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data, bridge, config)
}
