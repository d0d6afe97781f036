package fnol

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"fnoldesk/internal/bootstrap/logging"
	"fnoldesk/internal/errs"
	"fnoldesk/internal/ports"
)

// Clock returns the current time. Dates derived from it are taken in UTC.
type Clock func() time.Time

func SystemClock() time.Time {
	return time.Now().UTC()
}

type Service struct {
	claims  ports.ClaimRepository
	quality ports.QualityRepository
	uow     ports.UnitOfWork
	events  ports.EventPublisher
	docs    ports.DocumentCatalog
	clock   Clock

	// rng is not safe for concurrent use; rngMu guards it.
	rngMu sync.Mutex
	rng   *rand.Rand

	newID func() string
}

// NewService wires the FNOL usecases. events and clock may be nil.
func NewService(
	claimRepo ports.ClaimRepository,
	qualityRepo ports.QualityRepository,
	uow ports.UnitOfWork,
	events ports.EventPublisher,
	docs ports.DocumentCatalog,
	clock Clock,
	rng *rand.Rand,
) *Service {
	if clock == nil {
		clock = SystemClock
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	return &Service{
		claims:  claimRepo,
		quality: qualityRepo,
		uow:     uow,
		events:  events,
		docs:    docs,
		clock:   clock,
		rng:     rng,
		newID:   uuid.NewString,
	}
}

type CreateClaimInput struct {
	Policyholder string
	PolicyNumber string
	ClaimType    string
	Amount       float64
	ZipCode      string
}

type UpdateTestScriptInput struct {
	ScriptID string
	Status   string
	TestedBy string
	Notes    string
}

type CreateDefectInput struct {
	Title        string
	Description  string
	Severity     string
	ReportedBy   string
	TestScriptID string
}

type CollectionCounts struct {
	Claims      int64 `json:"claims"`
	TestScripts int64 `json:"test_scripts"`
	Defects     int64 `json:"defects"`
	Risks       int64 `json:"risks"`
}

func checkContext(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return errs.Wrap(err, "check context")
	}
	return nil
}

func (s *Service) now() time.Time {
	return s.clock().UTC()
}

func (s *Service) withRand(fn func(r *rand.Rand)) {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	fn(s.rng)
}

// publishBestEffort never fails the caller; the committed write is authoritative.
func (s *Service) publishBestEffort(ctx context.Context, name string, payload any) {
	if s.events == nil {
		return
	}
	err := s.events.Publish(ctx, ports.Event{
		Name:       name,
		OccurredAt: s.now(),
		Payload:    payload,
	})
	if err != nil {
		logging.Warn(
			logging.WithAttrs(ctx, slog.String("component", "fnol.events")),
			"publish event failed",
			slog.String("event", name),
			slog.Any("err", errs.Loggable(err)),
		)
	}
}
