package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/caloriehawk/backend/internal/domain"
)

// stubProvider is a scripted fallback-chain step.
type stubProvider struct {
	name       string
	configured bool
	record     *domain.NutrientRecord
	err        error
	calls      int
}

func (p *stubProvider) Name() string     { return p.name }
func (p *stubProvider) Configured() bool { return p.configured }

func (p *stubProvider) Lookup(ctx context.Context, query string) (*domain.NutrientRecord, error) {
	p.calls++
	return p.record, p.err
}

func providerWith(name string, record *domain.NutrientRecord) *stubProvider {
	return &stubProvider{name: name, configured: true, record: record}
}

func TestResolve_FirstProviderWins(t *testing.T) {
	first := providerWith("calorieninjas", &domain.NutrientRecord{Kcal: domain.Float(89)})
	second := providerWith("fdc", &domain.NutrientRecord{Kcal: domain.Float(105)})
	svc := NewNutritionService(first, second)

	result, err := svc.Resolve(context.Background(), "Banana")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if result.Source != "calorieninjas" {
		t.Errorf("Source = %s, want calorieninjas", result.Source)
	}
	if *result.Calories != 89 {
		t.Errorf("Calories = %v, want 89", *result.Calories)
	}
	if second.calls != 0 {
		t.Errorf("second provider called %d times, want 0", second.calls)
	}
}

func TestResolve_SkipsUnconfiguredProvider(t *testing.T) {
	unconfigured := &stubProvider{name: "calorieninjas", configured: false}
	second := providerWith("fdc", &domain.NutrientRecord{Kcal: domain.Float(105)})
	svc := NewNutritionService(unconfigured, second)

	result, err := svc.Resolve(context.Background(), "banana")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if unconfigured.calls != 0 {
		t.Errorf("unconfigured provider called %d times, want 0", unconfigured.calls)
	}
	if result.Source != "fdc" {
		t.Errorf("Source = %s, want fdc", result.Source)
	}
}

func TestResolve_ProviderErrorAdvancesChain(t *testing.T) {
	failing := &stubProvider{name: "calorieninjas", configured: true, err: errors.New("boom")}
	second := providerWith("fdc", &domain.NutrientRecord{Kcal: domain.Float(105)})
	svc := NewNutritionService(failing, second)

	result, err := svc.Resolve(context.Background(), "banana")
	if err != nil {
		t.Fatalf("provider failure must not abort the chain, got error %v", err)
	}

	if result.Source != "fdc" {
		t.Errorf("Source = %s, want fdc", result.Source)
	}
}

func TestResolve_EmptyRecordAdvancesChain(t *testing.T) {
	empty := providerWith("calorieninjas", &domain.NutrientRecord{})
	second := providerWith("fdc", &domain.NutrientRecord{Protein: domain.Float(1)})
	svc := NewNutritionService(empty, second)

	result, err := svc.Resolve(context.Background(), "banana")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	// An all-absent record is not a provider success.
	if result.Source != "fdc" {
		t.Errorf("Source = %s, want fdc", result.Source)
	}
}

func TestResolve_FallbackTable(t *testing.T) {
	failing := &stubProvider{name: "calorieninjas", configured: true, err: errors.New("down")}
	svc := NewNutritionService(failing)

	result, err := svc.Resolve(context.Background(), "  BANANA  ")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if result.Source != SourceFallback {
		t.Errorf("Source = %s, want %s", result.Source, SourceFallback)
	}
	if *result.Calories != 105 || *result.Protein != 1 || *result.Fat != 0 || *result.Carbs != 27 {
		t.Errorf("macros = %v/%v/%v/%v, want 105/1/0/27",
			*result.Calories, *result.Protein, *result.Fat, *result.Carbs)
	}
}

func TestResolve_NoneResult(t *testing.T) {
	svc := NewNutritionService()

	result, err := svc.Resolve(context.Background(), "plutonium sandwich")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if result.Source != SourceNone {
		t.Errorf("Source = %s, want %s", result.Source, SourceNone)
	}
	// source "none" implies every numeric field is absent
	if result.Calories != nil || result.Protein != nil || result.Fat != nil || result.Carbs != nil {
		t.Errorf("none result must carry no values, got %+v", result)
	}
}

func TestResolve_EmptyQuery(t *testing.T) {
	provider := providerWith("calorieninjas", &domain.NutrientRecord{Kcal: domain.Float(1)})
	svc := NewNutritionService(provider)

	for _, query := range []string{"", "   "} {
		result, err := svc.Resolve(context.Background(), query)

		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("Resolve(%q) error = %v, want ErrInvalidRequest", query, err)
		}
		if result != nil {
			t.Errorf("Resolve(%q) result = %+v, want nil", query, result)
		}
	}
	if provider.calls != 0 {
		t.Errorf("provider called %d times for invalid input, want 0", provider.calls)
	}
}

func TestResolve_SourceInvariant(t *testing.T) {
	// Whatever the chain does, a provider source implies at least one value.
	providers := []*stubProvider{
		{name: "a", configured: true, record: &domain.NutrientRecord{}},
		{name: "b", configured: true, err: errors.New("down")},
		{name: "c", configured: true, record: &domain.NutrientRecord{Fat: domain.Float(0)}},
	}
	svc := NewNutritionService(providers[0], providers[1], providers[2])

	result, err := svc.Resolve(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if result.Source != "c" {
		t.Fatalf("Source = %s, want c", result.Source)
	}
	if result.Fat == nil || *result.Fat != 0 {
		t.Errorf("Fat = %v, want explicit 0", result.Fat)
	}
}
