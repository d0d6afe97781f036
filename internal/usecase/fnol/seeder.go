package fnol

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"fnoldesk/internal/bootstrap/logging"
	"fnoldesk/internal/domain/claims"
	"fnoldesk/internal/errs"
)

const (
	seedClaimCount  = 60
	seedWindowDays  = 30
	autoRoutedAbove = 0.15
)

type weightedStatus struct {
	status claims.Status
	weight int
}

var seedStatusWeights = []weightedStatus{
	{claims.StatusOpen, 30},
	{claims.StatusClosed, 45},
	{claims.StatusEscalated, 15},
	{claims.StatusInReview, 10},
}

var seedAdjusters = []string{"John Smith", "Maria Garcia", "David Kim", "Sarah Johnson", "Michael Brown"}

var seedFirstNames = []string{
	"James", "Mary", "Robert", "Patricia", "Michael", "Jennifer", "William", "Linda",
	"David", "Elizabeth", "Richard", "Barbara", "Joseph", "Susan", "Thomas", "Jessica",
	"Charles", "Sarah", "Christopher", "Karen", "Daniel", "Nancy", "Matthew", "Lisa",
}

var seedLastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
	"Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson",
	"Thomas", "Taylor", "Moore", "Jackson", "Martin", "Lee", "Perez", "Thompson", "White",
}

// EnsureSeeded fills every collection with mock data when no claim exists yet.
// The count check and the insert are not atomic; concurrent first calls may
// both seed.
func (s *Service) EnsureSeeded(ctx context.Context) error {
	_, err := s.seedIfEmpty(ctx)
	return err
}

// Seed runs the same guarded seeding and reports the resulting collection sizes.
func (s *Service) Seed(ctx context.Context) (CollectionCounts, bool, error) {
	seeded, err := s.seedIfEmpty(ctx)
	if err != nil {
		return CollectionCounts{}, false, err
	}
	counts, err := s.Counts(ctx)
	return counts, seeded, err
}

func (s *Service) seedIfEmpty(ctx context.Context) (bool, error) {
	if err := checkContext(ctx); err != nil {
		return false, err
	}
	if s.claims == nil || s.quality == nil {
		return false, errors.New("claim and quality repositories are required")
	}
	if s.uow == nil {
		return false, errors.New("unit of work is required")
	}

	count, err := s.claims.CountClaims(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	now := s.now()
	var generated []claims.Claim
	s.withRand(func(r *rand.Rand) {
		generated = generateClaims(r, now, s.newID)
	})
	today := claims.FormatDate(now)
	scripts := seedTestScripts(today, s.newID)
	defects := seedDefects(today, s.newID)
	risks := seedRisks(s.newID)

	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.claims.CreateClaims(txCtx, generated); err != nil {
			return err
		}
		if err := s.quality.CreateTestScripts(txCtx, scripts); err != nil {
			return err
		}
		if err := s.quality.CreateDefects(txCtx, defects); err != nil {
			return err
		}
		return s.quality.CreateRisks(txCtx, risks)
	}); err != nil {
		return false, errs.Wrap(err, "seed mock data")
	}

	logging.Info(
		logging.WithAttrs(ctx, slog.String("component", "fnol.seeder")),
		"seeded mock data",
		slog.Int("claims", len(generated)),
		slog.Int("test_scripts", len(scripts)),
		slog.Int("defects", len(defects)),
		slog.Int("risks", len(risks)),
	)
	return true, nil
}

// Counts reports the size of each collection without seeding.
func (s *Service) Counts(ctx context.Context) (CollectionCounts, error) {
	if err := checkContext(ctx); err != nil {
		return CollectionCounts{}, err
	}
	if s.claims == nil || s.quality == nil {
		return CollectionCounts{}, errors.New("claim and quality repositories are required")
	}

	var out CollectionCounts
	var err error
	if out.Claims, err = s.claims.CountClaims(ctx); err != nil {
		return CollectionCounts{}, err
	}
	if out.TestScripts, err = s.quality.CountTestScripts(ctx); err != nil {
		return CollectionCounts{}, err
	}
	if out.Defects, err = s.quality.CountDefects(ctx); err != nil {
		return CollectionCounts{}, err
	}
	if out.Risks, err = s.quality.CountRisks(ctx); err != nil {
		return CollectionCounts{}, err
	}
	return out, nil
}

// generateClaims builds the synthetic claim set. Region is drawn independently
// of the zip code, unlike submitted claims.
func generateClaims(r *rand.Rand, now time.Time, newID func() string) []claims.Claim {
	base := now.UTC().AddDate(0, 0, -seedWindowDays)
	out := make([]claims.Claim, 0, seedClaimCount)

	for i := 0; i < seedClaimCount; i++ {
		filed := base.AddDate(0, 0, r.IntN(seedWindowDays+1))
		status := pickStatus(r)
		autoRouted := r.Float64() > autoRoutedAbove

		var resolution *float64
		if status == claims.StatusClosed {
			hours := uniform(r, 24, 168)
			if autoRouted {
				hours = uniform(r, 2, 72)
			}
			hours = claims.Round(hours, 1)
			resolution = &hours
		}

		claimType := claims.Types[r.IntN(len(claims.Types))]
		amount := uniform(r, 500, 25000)
		if claimType == claims.TypeWindshield {
			amount = uniform(r, 200, 800)
		}
		amount = claims.Round(amount, 2)

		policyholder := seedFirstNames[r.IntN(len(seedFirstNames))] + " " + seedLastNames[r.IntN(len(seedLastNames))]
		policyNumber := fmt.Sprintf("POL-%d", 100000+r.IntN(900000))
		zip := fmt.Sprintf("%d", 10000+r.IntN(90000))
		region := claims.Regions[r.IntN(len(claims.Regions))]

		var adjuster *string
		if status != claims.StatusOpen {
			name := seedAdjusters[r.IntN(len(seedAdjusters))]
			adjuster = &name
		}

		out = append(out, claims.Claim{
			ID:                  newID(),
			ClaimNumber:         claims.SeedClaimNumber(i),
			Policyholder:        policyholder,
			PolicyNumber:        policyNumber,
			DateFiled:           claims.FormatDate(filed),
			ClaimType:           claimType,
			Status:              status,
			Amount:              amount,
			AutoRouted:          autoRouted,
			ZipCode:             zip,
			Region:              region,
			AdjusterAssigned:    adjuster,
			ResolutionTimeHours: resolution,
			DayOfWeek:           claims.DayOfWeek(filed),
			RiskLevel:           claims.RiskLevelFor(amount),
		})
	}
	return out
}

func pickStatus(r *rand.Rand) claims.Status {
	total := 0
	for _, entry := range seedStatusWeights {
		total += entry.weight
	}
	n := r.IntN(total)
	for _, entry := range seedStatusWeights {
		if n < entry.weight {
			return entry.status
		}
		n -= entry.weight
	}
	return seedStatusWeights[len(seedStatusWeights)-1].status
}

// uniform draws from [lo, hi].
func uniform(r *rand.Rand, lo float64, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}
