package services

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/yungbote/neurobridge-disguise/internal/data/db"
	"github.com/yungbote/neurobridge-disguise/internal/data/repos"
	types "github.com/yungbote/neurobridge-disguise/internal/domain"
	"github.com/yungbote/neurobridge-disguise/internal/domain/disguise"
	"github.com/yungbote/neurobridge-disguise/internal/platform/dbctx"
	"github.com/yungbote/neurobridge-disguise/internal/platform/logger"
)

type NamingService interface {
	RandomNameProvider

	CreateKeyword(ctx context.Context, keyword string) (*types.NamingKeyword, error)
	CreateKeywordWithItems(ctx context.Context, keyword string, items []string) (*types.NamingKeyword, error)
	ListKeywords(ctx context.Context) ([]repos.KeywordCount, error)
	ListItems(ctx context.Context, keyword string) ([]*types.NamingItem, error)
	CountItems(ctx context.Context, keyword string) (int64, error)
	AddItem(ctx context.Context, keyword, name string) (*types.NamingItem, error)

	SetNamingSetForContext(ctx context.Context, contextID uuid.UUID, naming string) (*types.NamingSet, error)
	NamingSetForContext(ctx context.Context, contextID uuid.UUID) (*types.NamingSet, error)
	// KeywordsForContexts returns the keywords of the first context that has
	// a naming set, falling back to the configured default.
	KeywordsForContexts(ctx context.Context, contextIDs ...uuid.UUID) ([]string, error)

	SeedStock(ctx context.Context) (int, error)
	SeedFromYAML(ctx context.Context, r io.Reader) (int, error)
}

type namingService struct {
	db            *gorm.DB
	log           *logger.Logger
	keywords      repos.NamingKeywordRepo
	items         repos.NamingItemRepo
	sets          repos.NamingSetRepo
	setContexts   repos.NamingContextRepo
	defaultNaming string
}

func NewNamingService(
	db *gorm.DB,
	log *logger.Logger,
	keywords repos.NamingKeywordRepo,
	items repos.NamingItemRepo,
	sets repos.NamingSetRepo,
	setContexts repos.NamingContextRepo,
	defaultNaming string,
) NamingService {
	return &namingService{
		db:            db,
		log:           log.With("service", "NamingService"),
		keywords:      keywords,
		items:         items,
		sets:          sets,
		setContexts:   setContexts,
		defaultNaming: defaultNaming,
	}
}

func normalizeKeyword(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}

func (s *namingService) CreateKeyword(ctx context.Context, keyword string) (*types.NamingKeyword, error) {
	keyword = normalizeKeyword(keyword)
	if keyword == "" {
		return nil, fmt.Errorf("keyword required: %w", ErrInvalidArgument)
	}
	existing, err := s.keywords.GetByKeyword(dbctx.Context{Ctx: ctx}, keyword)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("keyword %q already exists: %w", keyword, ErrInvalidArgument)
	}
	kw, err := s.keywords.Create(dbctx.Context{Ctx: ctx}, keyword)
	if db.IsUniqueViolation(err) {
		return nil, fmt.Errorf("keyword %q already exists: %w", keyword, ErrInvalidArgument)
	}
	return kw, err
}

func (s *namingService) CreateKeywordWithItems(ctx context.Context, keyword string, items []string) (*types.NamingKeyword, error) {
	keyword = normalizeKeyword(keyword)
	if keyword == "" {
		return nil, fmt.Errorf("keyword required: %w", ErrInvalidArgument)
	}
	clean := lo.Uniq(lo.Compact(lo.Map(items, func(it string, _ int) string {
		return strings.TrimSpace(it)
	})))

	var out *types.NamingKeyword
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inner := dbctx.Context{Ctx: ctx, Tx: tx}
		existing, err := s.keywords.GetByKeyword(inner, keyword)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("keyword %q already exists: %w", keyword, ErrInvalidArgument)
		}
		kw, err := s.keywords.Create(inner, keyword)
		if db.IsUniqueViolation(err) {
			return fmt.Errorf("keyword %q already exists: %w", keyword, ErrInvalidArgument)
		}
		if err != nil {
			return err
		}
		if _, err := s.items.Create(inner, kw.ID, clean); err != nil {
			return err
		}
		out = kw
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("naming keyword created", "keyword", keyword, "items", len(clean))
	return out, nil
}

func (s *namingService) ListKeywords(ctx context.Context) ([]repos.KeywordCount, error) {
	return s.keywords.ListWithCounts(dbctx.Context{Ctx: ctx})
}

func (s *namingService) keywordOrNotFound(ctx context.Context, keyword string) (*types.NamingKeyword, error) {
	kw, err := s.keywords.GetByKeyword(dbctx.Context{Ctx: ctx}, normalizeKeyword(keyword))
	if err != nil {
		return nil, err
	}
	if kw == nil {
		return nil, fmt.Errorf("keyword %q: %w", keyword, ErrNotFound)
	}
	return kw, nil
}

func (s *namingService) ListItems(ctx context.Context, keyword string) ([]*types.NamingItem, error) {
	kw, err := s.keywordOrNotFound(ctx, keyword)
	if err != nil {
		return nil, err
	}
	return s.items.ListByKeywordID(dbctx.Context{Ctx: ctx}, kw.ID)
}

func (s *namingService) CountItems(ctx context.Context, keyword string) (int64, error) {
	kw, err := s.keywordOrNotFound(ctx, keyword)
	if err != nil {
		return 0, err
	}
	return s.items.CountByKeywordID(dbctx.Context{Ctx: ctx}, kw.ID)
}

func (s *namingService) AddItem(ctx context.Context, keyword, name string) (*types.NamingItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("item name required: %w", ErrInvalidArgument)
	}
	kw, err := s.keywordOrNotFound(ctx, keyword)
	if err != nil {
		return nil, err
	}
	rows, err := s.items.Create(dbctx.Context{Ctx: ctx}, kw.ID, []string{name})
	if err != nil {
		return nil, err
	}
	return rows[0], nil
}

// BuildName picks one random item per keyword, in order. Unknown keywords
// and keywords without items are skipped.
func (s *namingService) BuildName(ctx context.Context, keywords []string) (string, error) {
	parts, err := s.NameParts(ctx, keywords)
	if err != nil {
		return "", err
	}
	return strings.Join(parts, " "), nil
}

func (s *namingService) NameParts(ctx context.Context, keywords []string) ([]string, error) {
	if len(keywords) == 0 {
		return nil, nil
	}
	dbc := dbctx.Context{Ctx: ctx}
	normalized := lo.Map(keywords, func(k string, _ int) string { return normalizeKeyword(k) })
	rows, err := s.keywords.GetByKeywords(dbc, lo.Uniq(normalized))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	byKeyword := lo.KeyBy(rows, func(k *types.NamingKeyword) string { return k.Keyword })
	items, err := s.items.ListByKeywordIDs(dbc, lo.Map(rows, func(k *types.NamingKeyword, _ int) uuid.UUID { return k.ID }))
	if err != nil {
		return nil, err
	}
	itemsByKeyword := lo.GroupBy(items, func(it *types.NamingItem) uuid.UUID { return it.KeywordID })

	parts := make([]string, 0, len(normalized))
	for _, k := range normalized {
		kw, ok := byKeyword[k]
		if !ok {
			continue
		}
		pool := itemsByKeyword[kw.ID]
		if len(pool) == 0 {
			continue
		}
		parts = append(parts, lo.Sample(pool).Name)
	}
	return parts, nil
}

func (s *namingService) SetNamingSetForContext(ctx context.Context, contextID uuid.UUID, naming string) (*types.NamingSet, error) {
	keywords := lo.Map(disguise.SplitKeywords(naming), func(k string, _ int) string { return normalizeKeyword(k) })
	if len(keywords) == 0 {
		return nil, fmt.Errorf("naming set needs at least one keyword: %w", ErrInvalidArgument)
	}
	canonical := strings.Join(keywords, " ")

	var out *types.NamingSet
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inner := dbctx.Context{Ctx: ctx, Tx: tx}
		set, err := s.sets.Ensure(inner, canonical)
		if err != nil {
			return err
		}
		if set == nil {
			return fmt.Errorf("naming set %q: %w", canonical, ErrInvalidState)
		}
		if err := s.setContexts.Upsert(inner, contextID, set.ID); err != nil {
			return err
		}
		out = set
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *namingService) NamingSetForContext(ctx context.Context, contextID uuid.UUID) (*types.NamingSet, error) {
	dbc := dbctx.Context{Ctx: ctx}
	nc, err := s.setContexts.GetByContextID(dbc, contextID)
	if err != nil {
		return nil, err
	}
	if nc == nil {
		return nil, nil
	}
	set, err := s.sets.GetByID(dbc, nc.NamingSetID)
	if err != nil {
		return nil, err
	}
	if set == nil {
		return nil, fmt.Errorf("naming set %s for context %s: %w", nc.NamingSetID, contextID, ErrInvalidState)
	}
	return set, nil
}

func (s *namingService) KeywordsForContexts(ctx context.Context, contextIDs ...uuid.UUID) ([]string, error) {
	for _, id := range contextIDs {
		if id == uuid.Nil {
			continue
		}
		set, err := s.NamingSetForContext(ctx, id)
		if err != nil {
			return nil, err
		}
		if set != nil {
			return set.Keywords(), nil
		}
	}
	return disguise.SplitKeywords(s.defaultNaming), nil
}

// StockVocabulary is seeded by the seed-naming command.
var StockVocabulary = map[string][]string{
	"color": {
		"red", "blue", "green", "yellow", "orange", "purple", "pink", "brown", "black", "white", "grey", "gray",
	},
	"animal": {
		"tiger", "lion", "leopard", "jaguar", "cheetah", "cougar",
		"panther", "lynx", "bobcat", "ocelot", "caracal",
		"serval", "puma", "snow leopard", "clouded leopard",
	},
	"fruit": {
		"apple", "banana", "orange", "grape", "strawberry", "blueberry",
		"raspberry", "blackberry", "mango", "pineapple", "watermelon",
		"kiwi", "papaya", "pear", "peach", "plum", "cherry", "coconut",
		"lime", "lemon", "grapefruit", "apricot", "avocado", "fig",
		"guava", "lychee", "nectarine", "olive", "pomegranate", "tangerine",
	},
	"country": {
		"Australia", "Canada", "China", "France", "Germany", "India", "Indonesia", "Italy", "Japan", "Mexico",
		"Russia", "South Korea", "Spain", "Turkey", "United Kingdom", "United States",
	},
}

func (s *namingService) SeedStock(ctx context.Context) (int, error) {
	return s.seed(ctx, StockVocabulary)
}

type namingSeedFile struct {
	Keywords map[string][]string `yaml:"keywords"`
}

func (s *namingService) SeedFromYAML(ctx context.Context, r io.Reader) (int, error) {
	var f namingSeedFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return 0, fmt.Errorf("decode naming seed: %w", err)
	}
	return s.seed(ctx, f.Keywords)
}

// seed creates each missing keyword with its items and returns how many
// keywords were created. Existing keywords are left untouched.
func (s *namingService) seed(ctx context.Context, vocab map[string][]string) (int, error) {
	names := lo.Keys(vocab)
	slices.Sort(names)
	created := 0
	for _, k := range names {
		existing, err := s.keywords.GetByKeyword(dbctx.Context{Ctx: ctx}, normalizeKeyword(k))
		if err != nil {
			return created, err
		}
		if existing != nil {
			continue
		}
		if _, err := s.CreateKeywordWithItems(ctx, k, vocab[k]); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
