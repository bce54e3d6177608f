package rule

import (
	"context"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/wichananm65/online-supermarket/internal/category"
	"github.com/wichananm65/online-supermarket/internal/metrics"
)

// record is one entry of the rule artifact.
type record struct {
	Antecedents []string `json:"antecedents" validate:"required,min=1,dive,required"`
	Consequents []string `json:"consequents" validate:"required,min=1,dive,required"`
	Confidence  float64  `json:"confidence"`
	Lift        *float64 `json:"lift" validate:"required"`
}

// FileStore reads rules from a JSON artifact on every load, so replacing the
// file takes effect on the next request.
type FileStore struct {
	path     string
	aliases  *category.AliasTable
	validate *validator.Validate
	logger   zerolog.Logger
}

func NewFileStore(path string, aliases *category.AliasTable) *FileStore {
	if aliases == nil {
		aliases = category.DefaultAliasTable()
	}
	return &FileStore{
		path:     path,
		aliases:  aliases,
		validate: validator.New(),
		logger:   log.With().Str("component", "rule_store").Logger(),
	}
}

// LoadRules returns the usable rules, or none when the artifact cannot be read.
func (s *FileStore) LoadRules(ctx context.Context) []Rule {
	rules, skipped, err := s.read(ctx)
	if err != nil {
		s.logger.Error().Err(err).Str("path", s.path).Msg("error reading rules, continuing without rules")
		metrics.RecordRuleLoad(0, err)
		return []Rule{}
	}
	if skipped > 0 {
		s.logger.Warn().Int("skipped", skipped).Str("path", s.path).Msg("skipped invalid rule records")
	}
	usable := Usable(rules)
	metrics.RecordRuleLoad(len(usable), nil)
	return usable
}

func (s *FileStore) read(ctx context.Context) ([]Rule, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, 0, fmt.Errorf("read rules: %w", err)
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, 0, fmt.Errorf("decode rules: %w", err)
	}

	rules := make([]Rule, 0, len(records))
	skipped := 0
	for _, rec := range records {
		if err := s.validate.Struct(rec); err != nil {
			skipped++
			continue
		}
		rules = append(rules, Rule{
			Antecedents: s.canonical(rec.Antecedents),
			Consequents: s.canonical(rec.Consequents),
			Confidence:  rec.Confidence,
			Lift:        *rec.Lift,
		})
	}
	return rules, skipped, nil
}

func (s *FileStore) canonical(labels []string) []category.Key {
	out := make([]category.Key, 0, len(labels))
	seen := make(map[category.Key]bool, len(labels))
	for _, l := range labels {
		k := s.aliases.Canonical(l)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}
