// Package agents implements keyword routing over the static catalog.
package agents

import (
	"log/slog"
	"strings"

	"github.com/aurra-labs/AuraCore/internal/models"
)

// IdentifyRelevantAgents maps free-text user input to 1..3 agent ids.
//
// Matching is an unanchored, case-insensitive substring test against each
// agent's keyword list, evaluated in catalog declaration order. There is no
// stemming or word-boundary handling ("task" matches inside "multitasking");
// ties break positionally, not semantically. Messages matching nothing fall
// to the default agent, so the result is never empty.
func (c *Catalog) IdentifyRelevantAgents(message string) []models.AgentID {
	lowered := strings.ToLower(message)

	var matched []models.AgentID
	for _, def := range c.defs {
		for _, kw := range def.Keywords {
			if strings.Contains(lowered, kw) {
				matched = append(matched, def.ID)
				break
			}
		}
		if len(matched) == models.MaxRoutedAgents {
			break
		}
	}

	if len(matched) == 0 {
		slog.Debug("Catalog.IdentifyRelevantAgents: no keyword match, using default agent", "default", DefaultAgentID)
		return []models.AgentID{DefaultAgentID}
	}

	slog.Debug("Catalog.IdentifyRelevantAgents: matched agents", "count", len(matched))
	return matched
}
