package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"search-service/domain"
)

func TestGroupSynonyms(t *testing.T) {
	pairs := []domain.SynonymPair{
		{Word: "crane", Synonym: "hoist"},
		{Word: "crane", Synonym: "lift"},
		{Word: "tractor", Synonym: "mtz"},
		{Word: "crane", Synonym: "hoist"}, // duplicate row
	}

	groups := GroupSynonyms(pairs)

	want := map[string][]string{
		"crane":   {"crane", "hoist", "lift"},
		"tractor": {"mtz", "tractor"},
	}
	if !reflect.DeepEqual(groups, want) {
		t.Errorf("GroupSynonyms() = %v, want %v", groups, want)
	}
}

func TestExpandGroupsSymmetric(t *testing.T) {
	groups := map[string][]string{
		"crane": {"crane", "hoist", "lift"},
	}

	synonyms := ExpandGroups(groups)

	want := map[string][]string{
		"crane": {"hoist", "lift"},
		"hoist": {"crane", "lift"},
		"lift":  {"crane", "hoist"},
	}
	if !reflect.DeepEqual(synonyms, want) {
		t.Errorf("ExpandGroups() = %v, want %v", synonyms, want)
	}
}

func TestSyncSynonymsUsecase_Execute(t *testing.T) {
	pairs := []domain.SynonymPair{
		{Word: "crane", Synonym: "hoist"},
		{Word: "tractor", Synonym: "mtz"},
	}

	t.Run("pairs are grouped and pushed as one overwrite", func(t *testing.T) {
		repo := &mockServiceRepository{pairs: pairs}
		engine := &mockSearchEngine{}
		u := NewSyncSynonymsUsecase(repo, engine)

		result, err := u.Execute(context.Background())
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}

		if result.PairCount != 2 || result.GroupCount != 2 {
			t.Errorf("result = %+v, want 2 pairs in 2 groups", result)
		}
		if len(engine.synonymMaps) != 1 {
			t.Fatalf("RegisterSynonyms called %d times, want 1", len(engine.synonymMaps))
		}
	})

	t.Run("replaying produces identical engine state", func(t *testing.T) {
		repo := &mockServiceRepository{pairs: pairs}
		engine := &mockSearchEngine{}
		u := NewSyncSynonymsUsecase(repo, engine)

		if _, err := u.Execute(context.Background()); err != nil {
			t.Fatalf("first Execute() error = %v", err)
		}
		if _, err := u.Execute(context.Background()); err != nil {
			t.Fatalf("second Execute() error = %v", err)
		}

		if !reflect.DeepEqual(engine.synonymMaps[0], engine.synonymMaps[1]) {
			t.Errorf("sync is not idempotent: %v vs %v", engine.synonymMaps[0], engine.synonymMaps[1])
		}
	})

	t.Run("empty table skips the engine call", func(t *testing.T) {
		engine := &mockSearchEngine{}
		u := NewSyncSynonymsUsecase(&mockServiceRepository{}, engine)

		if _, err := u.Execute(context.Background()); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if len(engine.synonymMaps) != 0 {
			t.Error("RegisterSynonyms should not run with no pairs")
		}
	})

	t.Run("repository failure propagates to the caller", func(t *testing.T) {
		repo := &mockServiceRepository{pairsErr: errors.New("connection refused")}
		u := NewSyncSynonymsUsecase(repo, &mockSearchEngine{})

		if _, err := u.Execute(context.Background()); err == nil {
			t.Error("Execute() should surface repository failures; the caller decides they are non-fatal")
		}
	})
}
