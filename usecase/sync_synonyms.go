package usecase

import (
	"context"
	"sort"

	"search-service/domain"
	"search-service/logger"
	"search-service/port"
)

// SyncSynonymsUsecase mirrors the synonym table into the engine. The whole
// map is rebuilt from the database and pushed as one overwrite, so replaying
// the sync yields identical engine state. A failed sync leaves search usable
// without expansion, which is why callers treat the error as non-fatal.
type SyncSynonymsUsecase struct {
	serviceRepo  port.ServiceRepository
	searchEngine port.SearchEngine
}

type SyncResult struct {
	PairCount  int
	GroupCount int
}

func NewSyncSynonymsUsecase(serviceRepo port.ServiceRepository, searchEngine port.SearchEngine) *SyncSynonymsUsecase {
	return &SyncSynonymsUsecase{
		serviceRepo:  serviceRepo,
		searchEngine: searchEngine,
	}
}

func (u *SyncSynonymsUsecase) Execute(ctx context.Context) (*SyncResult, error) {
	pairs, err := u.serviceRepo.GetAllSynonyms(ctx)
	if err != nil {
		return nil, err
	}
	if len(pairs) == 0 {
		logger.Logger.Info("no synonyms in database, skipping sync")
		return &SyncResult{}, nil
	}

	groups := GroupSynonyms(pairs)
	synonyms := ExpandGroups(groups)

	if err := u.searchEngine.RegisterSynonyms(ctx, synonyms); err != nil {
		return nil, err
	}

	logger.Logger.Info("synonyms synchronized",
		"pairs", len(pairs),
		"groups", len(groups),
	)
	return &SyncResult{PairCount: len(pairs), GroupCount: len(groups)}, nil
}

// GroupSynonyms collects all synonyms sharing a root word into one sorted,
// de-duplicated group that includes the root itself.
func GroupSynonyms(pairs []domain.SynonymPair) map[string][]string {
	members := make(map[string]map[string]struct{})
	for _, pair := range pairs {
		if pair.Word == "" || pair.Synonym == "" {
			continue
		}
		if members[pair.Word] == nil {
			members[pair.Word] = map[string]struct{}{pair.Word: {}}
		}
		members[pair.Word][pair.Synonym] = struct{}{}
	}

	groups := make(map[string][]string, len(members))
	for root, set := range members {
		group := make([]string, 0, len(set))
		for member := range set {
			group = append(group, member)
		}
		sort.Strings(group)
		groups[root] = group
	}
	return groups
}

// ExpandGroups builds the engine synonym map: every member of a group maps
// to the other members, so expansion is symmetric regardless of which word
// the user types. Output is deterministic for unchanged input.
func ExpandGroups(groups map[string][]string) map[string][]string {
	synonyms := make(map[string][]string)
	for _, group := range groups {
		for _, member := range group {
			others := make([]string, 0, len(group)-1)
			for _, other := range group {
				if other != member {
					others = append(others, other)
				}
			}
			if len(others) == 0 {
				continue
			}
			synonyms[member] = mergeSorted(synonyms[member], others)
		}
	}
	return synonyms
}

func mergeSorted(existing, extra []string) []string {
	set := make(map[string]struct{}, len(existing)+len(extra))
	for _, v := range existing {
		set[v] = struct{}{}
	}
	for _, v := range extra {
		set[v] = struct{}{}
	}
	merged := make([]string, 0, len(set))
	for v := range set {
		merged = append(merged, v)
	}
	sort.Strings(merged)
	return merged
}
