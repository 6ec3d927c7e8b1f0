package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

// VectorIndexService maintains the vector index of analyzed resumes used by
// the similar-resume lookup.
type VectorIndexService interface {
	InitCollection() error
	UpsertResumeChunk(ctx context.Context, resumeID string, chunkIndex int, text string, embedding []float32) error
	SearchSimilar(ctx context.Context, queryEmbedding []float32, excludeResumeID string, limit int) ([]SearchResult, error)
	DeleteResume(ctx context.Context, resumeID string) error
}

type SearchResult struct {
	ResumeID string
	Score    float32
	Text     string
}

type vectorIndexService struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewVectorIndexService(urlStr, apiKey, collectionName string) (VectorIndexService, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC client defaults to the gRPC port.
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &vectorIndexService{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004 size
	}, nil
}

// InitCollection implements VectorIndexService.
func (q *vectorIndexService) InitCollection() error {
	ctx := context.Background()

	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Println("✅ Qdrant collection already exists")
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", q.collectionName)
	return nil
}

// UpsertResumeChunk implements VectorIndexService.
func (q *vectorIndexService) UpsertResumeChunk(ctx context.Context, resumeID string, chunkIndex int, text string, embedding []float32) error {
	pointID := uuid.New()

	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDNum(uint64(pointID.ID())),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"resume_id":   resumeID,
			"chunk_index": int64(chunkIndex),
			"text":        text,
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// SearchSimilar implements VectorIndexService. The querying resume's own
// chunks are excluded so results are always other candidates.
func (q *vectorIndexService) SearchSimilar(ctx context.Context, queryEmbedding []float32, excludeResumeID string, limit int) ([]SearchResult, error) {
	var filter *qdrant.Filter
	if excludeResumeID != "" {
		filter = &qdrant.Filter{
			MustNot: []*qdrant.Condition{
				qdrant.NewMatch("resume_id", excludeResumeID),
			},
		}
	}

	searchResult, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	var results []SearchResult
	for _, point := range searchResult {
		payload := point.Payload

		result := SearchResult{
			Score: point.Score,
		}

		if resumeID, ok := payload["resume_id"]; ok {
			if val, ok := resumeID.GetKind().(*qdrant.Value_StringValue); ok {
				result.ResumeID = val.StringValue
			}
		}
		if text, ok := payload["text"]; ok {
			if val, ok := text.GetKind().(*qdrant.Value_StringValue); ok {
				result.Text = val.StringValue
			}
		}

		results = append(results, result)
	}

	return results, nil
}

// DeleteResume implements VectorIndexService.
func (q *vectorIndexService) DeleteResume(ctx context.Context, resumeID string) error {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("resume_id", resumeID),
		},
	}

	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: filter,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete resume vectors: %w", err)
	}

	return nil
}
