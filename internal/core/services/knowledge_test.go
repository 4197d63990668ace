package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/bumpbook/internal/core/domain"
)

func TestKnowledgeService_Load(t *testing.T) {
	s := NewKnowledgeService(&mockKnowledgeSource{doc: fixtureDocument()})

	result := s.Load(context.Background())

	assert.True(t, result.Outcome.OK())
	assert.Equal(t, "mock://knowledge", result.Source)
	assert.Empty(t, result.Problems)
	assert.Same(t, result.Document, s.Document())
	assert.Len(t, s.Document().Medications, 2)
}

func TestKnowledgeService_FetchFailureLeavesEmptyDocument(t *testing.T) {
	s := NewKnowledgeService(&mockKnowledgeSource{err: errTransient})

	result := s.Load(context.Background())

	assert.Equal(t, domain.OutcomeFailed, result.Outcome.Kind)
	assert.NotNil(t, result.Document)
	assert.True(t, result.Document.IsEmpty())
	assert.True(t, s.Document().IsEmpty())
}

func TestKnowledgeService_MalformedSlicesDegrade(t *testing.T) {
	doc := fixtureDocument()
	doc.Timeline = append(doc.Timeline, domain.TimelineEntry{Weeks: "?"})
	s := NewKnowledgeService(&mockKnowledgeSource{doc: doc})

	result := s.Load(context.Background())

	assert.Equal(t, domain.OutcomeDegraded, result.Outcome.Kind)
	assert.Len(t, result.Problems, 1)
	assert.Len(t, s.Document().Timeline, 3)
}

func TestKnowledgeService_NoSource(t *testing.T) {
	s := NewKnowledgeService(nil)

	result := s.Load(context.Background())

	assert.Equal(t, domain.OutcomeDegraded, result.Outcome.Kind)
	assert.True(t, s.Document().IsEmpty())
}

func TestKnowledgeService_NilDocumentFromSource(t *testing.T) {
	s := NewKnowledgeService(&mockKnowledgeSource{})

	result := s.Load(context.Background())

	assert.True(t, result.Outcome.OK())
	assert.NotNil(t, s.Document())
}

func TestKnowledgeService_Result(t *testing.T) {
	s := NewKnowledgeService(&mockKnowledgeSource{err: errTransient})

	before := s.Result()
	assert.Equal(t, domain.OutcomeDegraded, before.Outcome.Kind)
	assert.Equal(t, "not loaded", before.Outcome.Reason)
	assert.NotNil(t, before.Document)

	loaded := s.Load(context.Background())
	assert.Equal(t, loaded, s.Result())
	assert.Equal(t, domain.OutcomeFailed, s.Result().Outcome.Kind)
}

func TestKnowledgeService_DecodeProblemsAreReported(t *testing.T) {
	doc := fixtureDocument()
	doc.DecodeProblems = []domain.SliceError{{Slice: "nutrition.dailyNeeds[0]", Err: domain.ErrMalformedSlice}}
	s := NewKnowledgeService(&mockKnowledgeSource{doc: doc})

	result := s.Load(context.Background())

	assert.Equal(t, domain.OutcomeDegraded, result.Outcome.Kind)
	assert.Equal(t, doc.DecodeProblems, result.Problems)
	assert.Len(t, s.Document().Medications, 2)
}
