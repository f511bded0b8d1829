// Package agents implements conflict resolution between candidate responses.
package agents

import (
	"sort"

	"github.com/aurra-labs/AuraCore/internal/models"
)

// unknownPriority sorts agents missing from the priority table last.
const unknownPriority = 99

// conflictPriority is the fixed display ordering. Health and safety surface
// first regardless of router match order.
var conflictPriority = []models.AgentID{
	models.AgentHealth,
	models.AgentMemory,
	models.AgentFocus,
	models.AgentEducation,
	models.AgentFitness,
	models.AgentAutomation,
	models.AgentCulture,
	models.AgentVision,
	models.AgentStrategy,
}

var priorityIndex = buildPriorityIndex()

func buildPriorityIndex() map[models.AgentID]int {
	idx := make(map[models.AgentID]int, len(conflictPriority))
	for i, id := range conflictPriority {
		idx[id] = i
	}
	return idx
}

// priorityOf returns the fixed priority rank for an agent id.
func priorityOf(id models.AgentID) int {
	if p, ok := priorityIndex[id]; ok {
		return p
	}
	return unknownPriority
}

// ResolveConflicts orders candidate responses by the fixed priority table.
// The sort is stable, so equally ranked (unknown) responses keep their
// incoming order. Inputs of length 0 or 1 pass through unchanged.
func ResolveConflicts(responses []models.AgentResponse) []models.AgentResponse {
	if len(responses) < 2 {
		return responses
	}
	sorted := make([]models.AgentResponse, len(responses))
	copy(sorted, responses)
	sort.SliceStable(sorted, func(i, j int) bool {
		return priorityOf(sorted[i].AgentID) < priorityOf(sorted[j].AgentID)
	})
	return sorted
}
