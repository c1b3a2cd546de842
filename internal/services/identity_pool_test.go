package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"

	types "github.com/yungbote/neurobridge-disguise/internal/domain"
	"github.com/yungbote/neurobridge-disguise/internal/platform/dbctx"
)

func TestGetOrCreateMappingIsStable(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	f := h.course(t, types.ModeCourseEverywhere)
	u := h.student(t, f.Course.ID)

	first, err := h.pool.GetOrCreateMapping(ctx, f.ModuleCtx.ID, u.ID)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	if !first.IsDisguise() {
		t.Fatalf("disguise account must carry the disguise auth marker, got %q", first.Auth)
	}
	if !strings.HasSuffix(first.Email, "@"+disguiseEmailDomain) {
		t.Fatalf("unexpected email %q", first.Email)
	}
	if first.LastName != disguiseLastName {
		t.Fatalf("fallback last name: got %q", first.LastName)
	}

	for i := 0; i < 3; i++ {
		again, err := h.pool.GetOrCreateMapping(ctx, f.ModuleCtx.ID, u.ID)
		if err != nil {
			t.Fatalf("again: %v", err)
		}
		if again.ID != first.ID {
			t.Fatalf("mapping changed: %s -> %s", first.ID, again.ID)
		}
	}

	other, err := h.pool.GetOrCreateMapping(ctx, f.CourseCtx.ID, u.ID)
	if err != nil {
		t.Fatalf("other context: %v", err)
	}
	if other.ID == first.ID {
		t.Fatalf("distinct contexts must get distinct disguises")
	}
}

func TestGetOrCreateMappingClaimsFromPool(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	f := h.course(t, types.ModeCourseEverywhere)
	u := h.student(t, f.Course.ID)

	n, err := h.pool.Provision(ctx, f.ModuleCtx.ID, 3)
	if err != nil {
		t.Fatalf("Provision: %v", err)
	}
	if n != 3 {
		t.Fatalf("want 3 provisioned, got %d", n)
	}
	dbc := dbctx.Context{Ctx: ctx}
	pooled, err := h.unmapped.CountByContextID(dbc, f.ModuleCtx.ID)
	if err != nil || pooled != 3 {
		t.Fatalf("pool rows: %d (%v)", pooled, err)
	}

	got, err := h.pool.GetOrCreateMapping(ctx, f.ModuleCtx.ID, u.ID)
	if err != nil {
		t.Fatalf("GetOrCreateMapping: %v", err)
	}
	if got.Auth != types.AuthDisguise || !strings.HasSuffix(got.Email, "@example.invalid") {
		t.Fatalf("pooled account is not a disguise: %+v", got)
	}
	left, err := h.unmapped.CountByContextID(dbc, f.ModuleCtx.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if left != 2 {
		t.Fatalf("claimed entry must leave the pool, %d left", left)
	}

	again, err := h.pool.GetOrCreateMapping(ctx, f.ModuleCtx.ID, u.ID)
	if err != nil {
		t.Fatalf("GetOrCreateMapping (mapped): %v", err)
	}
	if again.ID != got.ID {
		t.Fatalf("mapped user must keep the claimed disguise")
	}
	if left, _ := h.unmapped.CountByContextID(dbc, f.ModuleCtx.ID); left != 2 {
		t.Fatalf("existing mapping must not claim again, %d left", left)
	}
}

func TestProvisionRejectsBadInput(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	f := h.course(t, types.ModeCourseEverywhere)

	for _, count := range []int{0, -1, 1001} {
		if _, err := h.pool.Provision(ctx, f.ModuleCtx.ID, count); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("count %d: want ErrInvalidArgument, got %v", count, err)
		}
	}
	if _, err := h.pool.Provision(ctx, uuid.New(), 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown context: want ErrNotFound, got %v", err)
	}
	if _, err := h.pool.Provision(ctx, h.contextOf(t, types.LevelSystem), 1); !errors.Is(err, ErrOutsideCourse) {
		t.Fatalf("system context: want ErrOutsideCourse, got %v", err)
	}
}

func TestGetOrCreateMappingConcurrentConverges(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	f := h.course(t, types.ModeCourseEverywhere)
	u := h.student(t, f.Course.ID)

	// Two pools model two app instances that do not share singleflight state.
	pools := []IdentityPool{h.pool, h.newPool()}

	const n = 16
	ids := make([]uuid.UUID, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			d, err := pools[i%len(pools)].GetOrCreateMapping(ctx, f.ModuleCtx.ID, u.ID)
			errs[i] = err
			if d != nil {
				ids[i] = d.ID
			}
		}(i)
	}
	close(start)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("goroutine %d: %v", i, err)
		}
		if ids[i] != ids[0] {
			t.Fatalf("goroutine %d got %s, goroutine 0 got %s", i, ids[i], ids[0])
		}
	}
	rows, err := h.userMap.CountByContextAndUser(dbctx.Context{Ctx: ctx}, f.ModuleCtx.ID, u.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if rows != 1 {
		t.Fatalf("want exactly one mapping row, got %d", rows)
	}
}

// failingUsers writes the account inside the caller's transaction and then
// reports failure, so a missing rollback would leave the row behind.
type failingUsers struct {
	UserStore
	mu      sync.Mutex
	created []string
}

func (f *failingUsers) CreateUser(dbc dbctx.Context, u *types.User) (*types.User, error) {
	if _, err := f.UserStore.CreateUser(dbc, u); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.created = append(f.created, u.Username)
	f.mu.Unlock()
	return nil, errors.New("host rejected account")
}

func TestGetOrCreateMappingCreationFailedLeavesNoRows(t *testing.T) {
	h := newHarness(t)
	fail := &failingUsers{UserStore: h.users}
	h.users = fail
	h.pool = h.newPool()

	ctx := context.Background()
	f := h.course(t, types.ModeCourseEverywhere)
	u := h.student(t, f.Course.ID)

	_, err := h.pool.GetOrCreateMapping(ctx, f.ModuleCtx.ID, u.ID)
	if !errors.Is(err, ErrCreationFailed) {
		t.Fatalf("want ErrCreationFailed, got %v", err)
	}

	dbc := dbctx.Context{Ctx: ctx}
	rows, err := h.userMap.CountByContextAndUser(dbc, f.ModuleCtx.ID, u.ID)
	if err != nil || rows != 0 {
		t.Fatalf("mapping rows: %d (%v)", rows, err)
	}
	pooled, err := h.unmapped.CountByContextID(dbc, f.ModuleCtx.ID)
	if err != nil || pooled != 0 {
		t.Fatalf("pool rows: %d (%v)", pooled, err)
	}
	if len(fail.created) != 1 {
		t.Fatalf("expected one attempted account, got %d", len(fail.created))
	}
	leaked, err := h.userRepo.GetByUsername(dbc, fail.created[0])
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if leaked != nil {
		t.Fatalf("account %s survived a failed mapping", leaked.Username)
	}
}

func TestDisplayNameFromCourseNamingSet(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	f := h.course(t, types.ModeCourseEverywhere)
	u := h.student(t, f.Course.ID)

	suffix := uuid.NewString()[:8]
	color, animal := "color-"+suffix, "animal-"+suffix
	if _, err := h.naming.CreateKeywordWithItems(ctx, color, []string{"light blue"}); err != nil {
		t.Fatalf("color: %v", err)
	}
	if _, err := h.naming.CreateKeywordWithItems(ctx, animal, []string{"snow leopard"}); err != nil {
		t.Fatalf("animal: %v", err)
	}
	if _, err := h.naming.SetNamingSetForContext(ctx, f.CourseCtx.ID, color+" "+animal); err != nil {
		t.Fatalf("naming set: %v", err)
	}

	d, err := h.pool.GetOrCreateMapping(ctx, f.ModuleCtx.ID, u.ID)
	if err != nil {
		t.Fatalf("GetOrCreateMapping: %v", err)
	}
	// Items are kept whole: each keyword contributes exactly one name part.
	if d.FirstName != "light blue" || d.LastName != "snow leopard" {
		t.Fatalf("got %q %q", d.FirstName, d.LastName)
	}
}

func TestUnmapNotImplemented(t *testing.T) {
	h := newHarness(t)
	err := h.pool.Unmap(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, ErrNotImplemented) {
		t.Fatalf("want ErrNotImplemented, got %v", err)
	}
}
