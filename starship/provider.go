package starship

import (
	"github.com/grovetools/prompts/pkg/prompts"
)

// StatusProvider generates a status string from the editor state.
// Providers should return an empty string if they have nothing to display.
type StatusProvider func(s prompts.State) (string, error)

// providers holds all registered status providers.
var providers = []StatusProvider{CurrentDocument}

// RegisterProvider adds a provider whose output is appended to the status line.
func RegisterProvider(p StatusProvider) {
	providers = append(providers, p)
}

// GetProviders returns all registered status providers.
func GetProviders() []StatusProvider {
	return providers
}

// ClearProviders removes all registered providers.
func ClearProviders() {
	providers = nil
}

// CurrentDocument shows the name of the current document.
func CurrentDocument(s prompts.State) (string, error) {
	doc, ok := s.Current()
	if !ok {
		return "", nil
	}
	return "✎ " + doc.Name, nil
}
