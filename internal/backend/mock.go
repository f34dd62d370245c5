package backend

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/partscout/partscout/internal/normalize"
	"github.com/partscout/partscout/internal/rules"
	"github.com/partscout/partscout/pkg/models"
	"github.com/rs/zerolog/log"
)

// Mock confidence floor sits above the heuristic backends: a generated
// record stands in for a well-formed response, not a quality signal.
const (
	mockConfidenceFloor = 0.70
	mockConfidenceSpan  = 0.30
)

// sampler produces one plausible value for a canonical field name.
type sampler func(g *generator, index int) string

// mockSamplers is the field registry for generated data. Adding a field is
// a data change, not a new switch arm.
var mockSamplers = map[string]sampler{
	"product_name": func(g *generator, i int) string {
		return fmt.Sprintf("%s - Model %d", g.searchTerm, i)
	},
	"price": func(g *generator, _ int) string {
		return fmt.Sprintf("$%.2f", g.rng.Float64()*100+10)
	},
	"seller": func(g *generator, _ int) string {
		return g.pick("TechWorld Store", "ElectroHub", "ComponentsPro", "DigitalSupply")
	},
	"condition": func(g *generator, _ int) string {
		if g.rng.Float64() > 0.5 {
			return "New"
		}
		return "Used"
	},
	"availability": func(g *generator, _ int) string {
		if g.rng.Float64() > 0.3 {
			return "In Stock"
		}
		return "Limited"
	},
	"part_number": func(g *generator, _ int) string {
		return "PN-" + g.alphanumeric(8)
	},
	"manufacturer": func(g *generator, _ int) string {
		return g.pick("Arduino", "Raspberry Pi", "Adafruit", "SparkFun", "Texas Instruments")
	},
	"country": func(g *generator, _ int) string {
		return g.pick("USA", "Germany", "China", "Japan")
	},
	"datasheet_url": func(_ *generator, i int) string {
		return fmt.Sprintf("https://example.com/datasheet-%d.pdf", i)
	},
	"specifications": func(_ *generator, _ int) string {
		return "Voltage: 5V; Current: 100mA; Temp: -40°C to 85°C"
	},
	"price_breaks": func(_ *generator, _ int) string {
		return "1: $10.00; 10: $9.50; 100: $9.00"
	},
}

type generator struct {
	rng        *rand.Rand
	searchTerm string
}

func (g *generator) pick(options ...string) string {
	return options[g.rng.Intn(len(options))]
}

func (g *generator) alphanumeric(n int) string {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	var sb strings.Builder
	for i := 0; i < n; i++ {
		sb.WriteByte(alphabet[g.rng.Intn(len(alphabet))])
	}
	return sb.String()
}

// MockBackend synthesizes plausible product records without any network
// access. It stands in for real scraping during development and demos and
// never fails on network grounds.
type MockBackend struct {
	delay time.Duration
	seed  int64 // 0 means time-seeded
}

// NewMockBackend creates a mock generator. The delay imitates real backend
// latency so the caller's progress handling is exercised.
func NewMockBackend(delay time.Duration) *MockBackend {
	return &MockBackend{delay: delay}
}

// NewSeededMockBackend creates a deterministic mock for tests.
func NewSeededMockBackend(delay time.Duration, seed int64) *MockBackend {
	return &MockBackend{delay: delay, seed: seed}
}

func (m *MockBackend) Name() string {
	return "MockBackend"
}

// Scrape generates min(req.MaxResults, ceiling) records from the sampler
// registry. Fields without a sampler get a templated placeholder so the
// key-set contract holds for arbitrary user-entered names.
func (m *MockBackend) Scrape(ctx context.Context, req models.ScrapeRequest) *models.ScrapeResponse {
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return models.Failure("scrape cancelled: " + ctx.Err().Error())
		}
	}

	seed := m.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g := &generator{rng: rand.New(rand.NewSource(seed)), searchTerm: req.SearchTerm}

	count := normalize.Cap(req.MaxResults)
	raw := make([]map[string]string, 0, count)
	for i := 1; i <= count; i++ {
		row := make(map[string]string, len(req.ExtractFields)+1)
		for _, field := range req.ExtractFields {
			if sample, ok := mockSamplers[rules.Canonical(field)]; ok {
				row[field] = sample(g, i)
			} else {
				row[field] = fmt.Sprintf("Sample %s %d", field, i)
			}
		}
		score := mockConfidenceFloor + g.rng.Float64()*mockConfidenceSpan
		row[models.ConfidenceKey] = normalize.FormatConfidence(score)
		raw = append(raw, row)
	}

	log.Debug().
		Int("records", len(raw)).
		Str("search_term", req.SearchTerm).
		Msg("Mock records generated")

	return normalize.Response(raw, req, mockConfidenceFloor)
}
