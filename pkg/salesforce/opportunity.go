package salesforce

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// Opportunity represents the deal record behind a memo. Amount is the
// deal value in dollars.
type Opportunity struct {
	ID          string  `json:"Id" salesforce:"Id"`
	Name        string  `json:"Name" salesforce:"Name"`
	StageName   string  `json:"StageName" salesforce:"StageName"`
	Amount      float64 `json:"Amount" salesforce:"Amount"`
	CloseDate   string  `json:"CloseDate" salesforce:"CloseDate"`
	Description string  `json:"Description" salesforce:"Description"`
	AccountName string  `json:"AccountName" salesforce:"Account.Name"`
	Industry    string  `json:"Industry" salesforce:"Account.Industry"`
}

// opportunityFields are the SOQL fields selected for Opportunity queries.
var opportunityFields = []string{
	"Id", "Name", "StageName", "Amount", "CloseDate", "Description",
	"Account.Name", "Account.Industry",
}

// FindOpportunityByID queries Salesforce for an Opportunity by its ID.
// Returns nil if no opportunity is found.
func FindOpportunityByID(ctx context.Context, c Client, id string) (*Opportunity, error) {
	soql := fmt.Sprintf(
		"SELECT %s FROM Opportunity WHERE Id = '%s' LIMIT 1",
		strings.Join(opportunityFields, ", "),
		escapeSoql(id),
	)

	var opps []Opportunity
	if err := c.Query(ctx, soql, &opps); err != nil {
		return nil, eris.Wrap(err, fmt.Sprintf("sf: find opportunity %s", id))
	}
	if len(opps) == 0 {
		return nil, nil
	}
	return &opps[0], nil
}

// RecordMemoGenerated stamps the opportunity with the time a memo was
// last produced for it.
func RecordMemoGenerated(ctx context.Context, c Client, id string, timestamp string) error {
	err := c.UpdateOne(ctx, "Opportunity", id, map[string]any{
		"Last_Memo_Generated__c": timestamp,
	})
	if err != nil {
		return eris.Wrap(err, fmt.Sprintf("sf: record memo generated %s", id))
	}
	return nil
}

// escapeSoql escapes single quotes in SOQL string literals to prevent injection.
func escapeSoql(s string) string {
	return strings.ReplaceAll(s, "'", "\\'")
}
