package salesforce

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	lastSOQL   string
	queryOut   []Opportunity
	queryErr   error
	updated    map[string]any
	updatedID  string
	updatedObj string
}

func (f *fakeClient) Query(_ context.Context, soql string, out any) error {
	f.lastSOQL = soql
	if f.queryErr != nil {
		return f.queryErr
	}
	*(out.(*[]Opportunity)) = f.queryOut
	return nil
}

func (f *fakeClient) UpdateOne(_ context.Context, obj string, id string, fields map[string]any) error {
	f.updatedObj = obj
	f.updatedID = id
	f.updated = fields
	return nil
}

func TestFindOpportunityByID(t *testing.T) {
	fake := &fakeClient{queryOut: []Opportunity{{
		ID:       "006abc",
		Name:     "Project Atlas",
		Amount:   50_000_000,
		Industry: "Technology",
	}}}

	opp, err := FindOpportunityByID(context.Background(), fake, "006abc")
	require.NoError(t, err)
	require.NotNil(t, opp)
	assert.Equal(t, "Project Atlas", opp.Name)
	assert.Contains(t, fake.lastSOQL, "FROM Opportunity WHERE Id = '006abc'")
	assert.Contains(t, fake.lastSOQL, "Account.Industry")
}

func TestFindOpportunityByID_NotFound(t *testing.T) {
	fake := &fakeClient{}

	opp, err := FindOpportunityByID(context.Background(), fake, "missing")
	require.NoError(t, err)
	assert.Nil(t, opp)
}

func TestFindOpportunityByID_EscapesQuotes(t *testing.T) {
	fake := &fakeClient{}

	_, err := FindOpportunityByID(context.Background(), fake, "o'brien")
	require.NoError(t, err)
	assert.Contains(t, fake.lastSOQL, `o\'brien`)
}

func TestRecordMemoGenerated(t *testing.T) {
	fake := &fakeClient{}

	err := RecordMemoGenerated(context.Background(), fake, "006abc", "2026-08-29T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, "Opportunity", fake.updatedObj)
	assert.Equal(t, "006abc", fake.updatedID)
	assert.Equal(t, "2026-08-29T10:00:00Z", fake.updated["Last_Memo_Generated__c"])
}
