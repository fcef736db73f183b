package dynamo

import (
	"context"
	"testing"

	"jobboard/internal/domain/jobpost"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	pages   []*dynamodb.ScanOutput
	scans   []*dynamodb.ScanInput
	items   map[string]map[string]types.AttributeValue
	scanErr error
}

func (f *fakeAPI) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.scans = append(f.scans, in)
	if f.scanErr != nil {
		return nil, f.scanErr
	}
	out := f.pages[0]
	f.pages = f.pages[1:]
	return out, nil
}

func (f *fakeAPI) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	url := in.Key["url"].(*types.AttributeValueMemberS).Value
	return &dynamodb.GetItemOutput{Item: f.items[url]}, nil
}

func (f *fakeAPI) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if f.items == nil {
		f.items = map[string]map[string]types.AttributeValue{}
	}
	url := in.Item["url"].(*types.AttributeValueMemberS).Value
	f.items[url] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func mustItem(t *testing.T, p jobpost.ExternalPosting) map[string]types.AttributeValue {
	t.Helper()
	item, err := attributevalue.MarshalMap(p)
	require.NoError(t, err)
	return item
}

func TestSource_ScanDecodesAndCarriesCursor(t *testing.T) {
	salary := 60000
	api := &fakeAPI{pages: []*dynamodb.ScanOutput{
		{
			Items: []map[string]types.AttributeValue{
				mustItem(t, jobpost.ExternalPosting{URL: " https://a ", Title: "A", MinSalary: &salary, RoleIDs: []string{"r1"}}),
				{"url": &types.AttributeValueMemberS{Value: "https://b"}, "expirationDays": &types.AttributeValueMemberBOOL{Value: true}},
			},
			LastEvaluatedKey: map[string]types.AttributeValue{"url": &types.AttributeValueMemberS{Value: "https://a"}},
		},
		{Items: nil},
	}}
	src := NewSource(api)

	first, err := src.Scan(context.Background(), "postings", 25, "")
	require.NoError(t, err)
	require.Len(t, first.Items, 2)
	assert.NoError(t, first.Items[0].Err)
	assert.Equal(t, "https://a", first.Items[0].Posting.URL)
	require.NotNil(t, first.Items[0].Posting.MinSalary)
	assert.Equal(t, 60000, *first.Items[0].Posting.MinSalary)
	assert.Error(t, first.Items[1].Err)
	assert.Equal(t, "https://b", first.Items[1].Posting.URL)
	require.NotEmpty(t, first.Next)

	second, err := src.Scan(context.Background(), "postings", 25, first.Next)
	require.NoError(t, err)
	assert.Empty(t, second.Next)

	require.Len(t, api.scans, 2)
	assert.Equal(t, "postings", aws.ToString(api.scans[0].TableName))
	assert.Equal(t, int32(25), aws.ToInt32(api.scans[0].Limit))
	assert.Nil(t, api.scans[0].ExclusiveStartKey)
	start := api.scans[1].ExclusiveStartKey["url"].(*types.AttributeValueMemberS)
	assert.Equal(t, "https://a", start.Value)
}

func TestSource_ScanError(t *testing.T) {
	src := NewSource(&fakeAPI{scanErr: errors.New("throttled")})

	_, err := src.Scan(context.Background(), "postings", 10, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
}

func TestSource_PutThenGet(t *testing.T) {
	api := &fakeAPI{}
	src := NewSource(api)

	require.NoError(t, src.PutItem(context.Background(), "postings", jobpost.ExternalPosting{URL: "https://c", Title: "C"}))

	got, err := src.GetItem(context.Background(), "postings", "https://c")
	require.NoError(t, err)
	assert.Equal(t, "C", got.Title)

	_, err = src.GetItem(context.Background(), "postings", "https://missing")
	assert.ErrorIs(t, err, ErrItemNotFound)
}
