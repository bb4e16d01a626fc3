package service

import (
	"context"
	"sort"
	"strings"

	"agrisense-be/internal/dto"
	"agrisense-be/internal/entity"
)

type ISchemeService interface {
	List(ctx context.Context, query dto.SchemeQuery) []entity.Scheme
}

type schemeService struct {
	schemes []entity.Scheme
}

// NewSchemeService keeps the dataset read-only for the life of the process.
func NewSchemeService(schemes []entity.Scheme) ISchemeService {
	return &schemeService{schemes: schemes}
}

// List filters by state (substring, case-insensitive, national schemes always match),
// puts region-specific schemes first and then truncates to Limit.
func (s *schemeService) List(ctx context.Context, query dto.SchemeQuery) []entity.Scheme {
	state := strings.ToLower(strings.TrimSpace(query.State))

	result := make([]entity.Scheme, 0, len(s.schemes))
	for _, scheme := range s.schemes {
		if state == "" || matchesState(scheme, state) {
			result = append(result, scheme)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return isRegional(result[i]) && !isRegional(result[j])
	})

	if query.Limit > 0 && len(result) > query.Limit {
		result = result[:query.Limit]
	}
	return result
}

func matchesState(scheme entity.Scheme, state string) bool {
	if scheme.AvailableEverywhere() {
		return true
	}
	for _, st := range scheme.States {
		if strings.Contains(strings.ToLower(st), state) {
			return true
		}
	}
	return false
}

func isRegional(scheme entity.Scheme) bool {
	return len(scheme.States) > 0 && !scheme.AvailableEverywhere()
}
