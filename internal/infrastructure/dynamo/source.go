// Package dynamo reads and writes job postings in the external DynamoDB table
// the synchronizer pulls from.
package dynamo

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"

	"jobboard/internal/config"
	"jobboard/internal/domain/jobpost"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/cockroachdb/errors"
)

var ErrItemNotFound = errors.New("external item not found")

// API is the subset of the DynamoDB client used here.
type API interface {
	Scan(ctx context.Context, in *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

type Source struct {
	api API
}

func NewSource(api API) *Source {
	return &Source{api: api}
}

// LoadAWSConfig builds the shared SDK config. Static credentials and a custom
// endpoint are only used when set, which is how local stacks are targeted.
func LoadAWSConfig(ctx context.Context, cfg config.AWSConfig) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, errors.Wrap(err, "load aws config")
	}
	return awsCfg, nil
}

func NewClient(awsCfg aws.Config, endpoint string) *dynamodb.Client {
	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
}

// Scan reads one page of at most limit items starting at cursor ("" for the
// first page). Items that fail to decode are returned with their error.
func (s *Source) Scan(ctx context.Context, table string, limit int32, cursor string) (jobpost.ExternalPage, error) {
	in := &dynamodb.ScanInput{
		TableName: aws.String(table),
		Limit:     aws.Int32(limit),
	}
	if cursor != "" {
		key, err := decodeCursor(cursor)
		if err != nil {
			return jobpost.ExternalPage{}, err
		}
		in.ExclusiveStartKey = key
	}

	out, err := s.api.Scan(ctx, in)
	if err != nil {
		return jobpost.ExternalPage{}, errors.Wrapf(err, "scan %s", table)
	}

	page := jobpost.ExternalPage{Items: make([]jobpost.ExternalItem, 0, len(out.Items))}
	for _, raw := range out.Items {
		var p jobpost.ExternalPosting
		if err := attributevalue.UnmarshalMap(raw, &p); err != nil {
			page.Items = append(page.Items, jobpost.ExternalItem{
				Posting: jobpost.ExternalPosting{URL: urlOf(raw)},
				Err:     errors.Wrap(err, "decode item"),
			})
			continue
		}
		p.URL = strings.TrimSpace(p.URL)
		page.Items = append(page.Items, jobpost.ExternalItem{Posting: p})
	}

	if len(out.LastEvaluatedKey) > 0 {
		next, err := encodeCursor(out.LastEvaluatedKey)
		if err != nil {
			return jobpost.ExternalPage{}, err
		}
		page.Next = next
	}
	return page, nil
}

// urlOf extracts the natural key of an item that failed to decode, so the
// synchronizer still counts it as present in the source.
func urlOf(raw map[string]types.AttributeValue) string {
	if v, ok := raw["url"].(*types.AttributeValueMemberS); ok {
		return strings.TrimSpace(v.Value)
	}
	return ""
}

func (s *Source) GetItem(ctx context.Context, table, url string) (jobpost.ExternalPosting, error) {
	out, err := s.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key:       map[string]types.AttributeValue{"url": &types.AttributeValueMemberS{Value: url}},
	})
	if err != nil {
		return jobpost.ExternalPosting{}, errors.Wrapf(err, "get item %s", url)
	}
	if len(out.Item) == 0 {
		return jobpost.ExternalPosting{}, ErrItemNotFound
	}
	var p jobpost.ExternalPosting
	if err := attributevalue.UnmarshalMap(out.Item, &p); err != nil {
		return jobpost.ExternalPosting{}, errors.Wrap(err, "decode item")
	}
	return p, nil
}

func (s *Source) PutItem(ctx context.Context, table string, p jobpost.ExternalPosting) error {
	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return errors.Wrap(err, "encode item")
	}
	if _, err := s.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      item,
	}); err != nil {
		return errors.Wrapf(err, "put item %s", p.URL)
	}
	return nil
}

// Cursors are the LastEvaluatedKey rendered as base64 JSON. Key attributes
// must be strings or numbers, which holds for the url-keyed table.
func encodeCursor(key map[string]types.AttributeValue) (string, error) {
	var plain map[string]any
	if err := attributevalue.UnmarshalMap(key, &plain); err != nil {
		return "", errors.Wrap(err, "encode cursor")
	}
	b, err := json.Marshal(plain)
	if err != nil {
		return "", errors.Wrap(err, "encode cursor")
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func decodeCursor(cursor string) (map[string]types.AttributeValue, error) {
	b, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return nil, errors.Wrap(err, "decode cursor")
	}
	var plain map[string]any
	if err := json.Unmarshal(b, &plain); err != nil {
		return nil, errors.Wrap(err, "decode cursor")
	}
	key, err := attributevalue.MarshalMap(plain)
	if err != nil {
		return nil, errors.Wrap(err, "decode cursor")
	}
	return key, nil
}
