package service

import (
	"sort"
	"time"

	"github.com/rabermudezg13/coffee-cupping-app/internal/models"
)

// AggregateKeys are the evaluation score keys averaged across
// participants. Other keys in an evaluation ride along in the individual
// results but are not aggregated.
var AggregateKeys = []string{"overall_score", "aroma", "flavor", "acidity", "body"}

// IndividualResult is one participant's evaluation within the session
// results, ordered by submission time
type IndividualResult struct {
	UserName    string                   `json:"userName"`
	Evaluation  models.EvaluationPayload `json:"evaluation"`
	SubmittedAt time.Time                `json:"submittedAt"`
}

// SessionResults is the aggregated outcome of a collaborative cupping
type SessionResults struct {
	InvitationID      string                 `json:"invitationId"`
	CoffeeName        string                 `json:"coffeeName"`
	SessionType       string                 `json:"sessionType"`
	SessionData       map[string]interface{} `json:"sessionData"`
	Participants      int                    `json:"participants"`
	Averages          map[string]float64     `json:"average_scores"`
	IndividualResults []IndividualResult     `json:"individual_results"`
}

// AggregateResults computes per-attribute averages over all submitted
// evaluations. Each attribute is averaged over the participants whose
// evaluation supplied it; an attribute nobody supplied averages to zero.
func AggregateResults(inv *models.Invitation) *SessionResults {
	results := &SessionResults{
		InvitationID:      inv.InvitationID,
		CoffeeName:        inv.CoffeeName(),
		SessionType:       inv.SessionType(),
		SessionData:       inv.SessionData,
		Participants:      len(inv.ParticipantEvaluations),
		Averages:          map[string]float64{},
		IndividualResults: []IndividualResult{},
	}

	for _, eval := range inv.ParticipantEvaluations {
		results.IndividualResults = append(results.IndividualResults, IndividualResult{
			UserName:    eval.UserName,
			Evaluation:  eval.Evaluation,
			SubmittedAt: eval.SubmittedAt,
		})
	}
	sort.Slice(results.IndividualResults, func(i, j int) bool {
		return results.IndividualResults[i].SubmittedAt.Before(results.IndividualResults[j].SubmittedAt)
	})

	for _, key := range AggregateKeys {
		var sum float64
		var count int
		for _, eval := range inv.ParticipantEvaluations {
			if v, ok := eval.Evaluation.Number(key); ok {
				sum += v
				count++
			}
		}
		if count == 0 {
			results.Averages[key] = 0
			continue
		}
		results.Averages[key] = sum / float64(count)
	}

	return results
}
