package openai_tools

import (
	"fmt"
	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
	"sync"
)

const fallbackEncoding = "cl100k_base"

func init() {
	// encodings are embedded, counting never reaches the network
	tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
}

type encodingEntry struct {
	tke *tiktoken.Tiktoken
	err error
}

// encodings caches lookups per model, failures included.
var encodings sync.Map

// CountToken returns the number of tokens text occupies for the given model.
// Models tiktoken does not know are counted with cl100k_base.
func CountToken(text, model string) (int, error) {
	if text == "" {
		return 0, nil
	}
	tke, err := encodingForModel(model)
	if err != nil {
		return 0, err
	}
	return len(tke.Encode(text, nil, nil)), nil
}

func encodingForModel(model string) (*tiktoken.Tiktoken, error) {
	if cached, ok := encodings.Load(model); ok {
		entry := cached.(encodingEntry)
		return entry.tke, entry.err
	}
	entry := loadEncoding(model)
	actual, _ := encodings.LoadOrStore(model, entry)
	entry = actual.(encodingEntry)
	return entry.tke, entry.err
}

func loadEncoding(model string) encodingEntry {
	tke, err := tiktoken.EncodingForModel(model)
	if err == nil {
		return encodingEntry{tke: tke}
	}
	tke, err = tiktoken.GetEncoding(fallbackEncoding)
	if err != nil {
		return encodingEntry{err: fmt.Errorf("failed to get encoding for model %s: %w", model, err)}
	}
	return encodingEntry{tke: tke}
}
