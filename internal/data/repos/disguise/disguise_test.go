package disguise

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/neurobridge-disguise/internal/data/repos/testutil"
	types "github.com/yungbote/neurobridge-disguise/internal/domain"
	"github.com/yungbote/neurobridge-disguise/internal/platform/dbctx"
)

func TestContextModeRepoWriteThenRead(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	repo := NewContextModeRepo(db, testutil.Logger(t))
	ctxID := uuid.New()

	row, err := repo.GetByContextID(dbc, ctxID)
	if err != nil {
		t.Fatalf("GetByContextID (absent): %v", err)
	}
	if row != nil {
		t.Fatalf("expected no row, got %+v", row)
	}

	for _, mode := range []types.Mode{
		types.ModeCourseOptional,
		types.ModeCourseEverywhere,
		types.ModeDisabled,
		types.ModeCourseModulesOnly,
	} {
		if err := repo.Upsert(dbc, ctxID, mode); err != nil {
			t.Fatalf("Upsert(%s): %v", mode, err)
		}
		row, err := repo.GetByContextID(dbc, ctxID)
		if err != nil {
			t.Fatalf("GetByContextID: %v", err)
		}
		if row == nil || row.Mode != mode {
			t.Fatalf("want %s, got %+v", mode, row)
		}
	}

	var n int64
	if err := tx.Model(&types.ContextMode{}).Where("context_id = ?", ctxID).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("upsert should keep one row, got %d", n)
	}
}

func TestUserMapInsertConflict(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	repo := NewUserMapRepo(db, testutil.Logger(t))
	ctxID, userID, disguiseID := uuid.New(), uuid.New(), uuid.New()

	ok, err := repo.Insert(dbc, &types.UserMap{ContextID: ctxID, UserID: userID, DisguiseID: disguiseID})
	if err != nil || !ok {
		t.Fatalf("Insert: ok=%v err=%v", ok, err)
	}
	ok, err = repo.Insert(dbc, &types.UserMap{ContextID: ctxID, UserID: userID, DisguiseID: uuid.New()})
	if err != nil {
		t.Fatalf("Insert (dup user): %v", err)
	}
	if ok {
		t.Fatalf("second mapping for the same (context, user) must be rejected")
	}
	ok, err = repo.Insert(dbc, &types.UserMap{ContextID: ctxID, UserID: uuid.New(), DisguiseID: disguiseID})
	if err != nil {
		t.Fatalf("Insert (dup disguise): %v", err)
	}
	if ok {
		t.Fatalf("a disguise may only be mapped once per context")
	}

	got, err := repo.GetByContextAndUser(dbc, ctxID, userID)
	if err != nil || got == nil || got.DisguiseID != disguiseID {
		t.Fatalf("GetByContextAndUser: %+v %v", got, err)
	}
	byDisguise, err := repo.GetByContextAndDisguise(dbc, ctxID, disguiseID)
	if err != nil || byDisguise == nil || byDisguise.UserID != userID {
		t.Fatalf("GetByContextAndDisguise: %+v %v", byDisguise, err)
	}
	n, err := repo.CountByContextAndUser(dbc, ctxID, userID)
	if err != nil || n != 1 {
		t.Fatalf("CountByContextAndUser: %d %v", n, err)
	}

	ctxIDs, err := repo.ContextIDsForUser(dbc, userID)
	if err != nil || len(ctxIDs) != 1 || ctxIDs[0] != ctxID {
		t.Fatalf("ContextIDsForUser: %v %v", ctxIDs, err)
	}
	userIDs, err := repo.UserIDsForContext(dbc, ctxID)
	if err != nil || len(userIDs) != 1 || userIDs[0] != userID {
		t.Fatalf("UserIDsForContext: %v %v", userIDs, err)
	}
}

func TestUnmappedPoolClaim(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	repo := NewUnmappedPoolRepo(db, testutil.Logger(t))
	ctxID := uuid.New()
	otherCtx := uuid.New()

	claimed, err := repo.Claim(dbc, ctxID)
	if err != nil {
		t.Fatalf("Claim (empty): %v", err)
	}
	if claimed != nil {
		t.Fatalf("empty pool should yield nil, got %+v", claimed)
	}

	a, b := uuid.New(), uuid.New()
	for _, id := range []uuid.UUID{a, b} {
		if _, err := repo.Add(dbc, ctxID, id); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	if _, err := repo.Add(dbc, otherCtx, uuid.New()); err != nil {
		t.Fatalf("Add other: %v", err)
	}

	seen := map[uuid.UUID]bool{}
	for i := 0; i < 2; i++ {
		c, err := repo.Claim(dbc, ctxID)
		if err != nil {
			t.Fatalf("Claim #%d: %v", i, err)
		}
		if c == nil || c.ContextID != ctxID {
			t.Fatalf("Claim #%d: unexpected %+v", i, c)
		}
		if seen[c.DisguiseID] {
			t.Fatalf("claimed %s twice", c.DisguiseID)
		}
		seen[c.DisguiseID] = true
		left, err := repo.CountByContextID(dbc, ctxID)
		if err != nil || left != int64(1-i) {
			t.Fatalf("after claim #%d: want %d pooled, got %d %v", i, 1-i, left, err)
		}
	}

	n, err := repo.CountByContextID(dbc, ctxID)
	if err != nil || n != 0 {
		t.Fatalf("pool should be drained: %d %v", n, err)
	}
	n, err = repo.CountByContextID(dbc, otherCtx)
	if err != nil || n != 1 {
		t.Fatalf("other context untouched: %d %v", n, err)
	}
}

func TestNamingRepos(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	log := testutil.Logger(t)

	keywords := NewNamingKeywordRepo(db, log)
	items := NewNamingItemRepo(db, log)
	sets := NewNamingSetRepo(db, log)
	contexts := NewNamingContextRepo(db, log)

	suffix := uuid.NewString()[:8]
	colorKw, emptyKw := "color-"+suffix, "empty-"+suffix

	color, err := keywords.Create(dbc, colorKw)
	if err != nil {
		t.Fatalf("Create keyword: %v", err)
	}
	if _, err := keywords.Create(dbc, emptyKw); err != nil {
		t.Fatalf("Create keyword: %v", err)
	}
	if _, err := items.Create(dbc, color.ID, []string{"Red", "Green", "Blue"}); err != nil {
		t.Fatalf("Create items: %v", err)
	}

	got, err := keywords.GetByKeyword(dbc, colorKw)
	if err != nil || got == nil || got.ID != color.ID {
		t.Fatalf("GetByKeyword: %+v %v", got, err)
	}
	many, err := keywords.GetByKeywords(dbc, []string{colorKw, "nope-" + suffix})
	if err != nil || len(many) != 1 {
		t.Fatalf("GetByKeywords: %+v %v", many, err)
	}

	counts, err := keywords.ListWithCounts(dbc)
	if err != nil {
		t.Fatalf("ListWithCounts: %v", err)
	}
	want := map[string]int64{colorKw: 3, emptyKw: 0}
	found := 0
	for _, c := range counts {
		n, ok := want[c.Keyword]
		if !ok {
			continue
		}
		found++
		if n != c.Items {
			t.Fatalf("ListWithCounts: %s want %d got %d", c.Keyword, n, c.Items)
		}
	}
	if found != len(want) {
		t.Fatalf("ListWithCounts: missing keywords in %+v", counts)
	}

	list, err := items.ListByKeywordID(dbc, color.ID)
	if err != nil || len(list) != 3 || list[0].Name != "Blue" {
		t.Fatalf("ListByKeywordID: %+v %v", list, err)
	}
	n, err := items.CountByKeywordID(dbc, color.ID)
	if err != nil || n != 3 {
		t.Fatalf("CountByKeywordID: %d %v", n, err)
	}

	set, err := sets.Ensure(dbc, colorKw+" animal")
	if err != nil {
		t.Fatalf("Ensure set: %v", err)
	}
	again, err := sets.Ensure(dbc, colorKw+" animal")
	if err != nil || again.ID != set.ID {
		t.Fatalf("Ensure set again: %+v %v", again, err)
	}
	byID, err := sets.GetByID(dbc, set.ID)
	if err != nil || byID == nil || len(byID.Keywords()) != 2 {
		t.Fatalf("GetByID set: %+v %v", byID, err)
	}

	ctxID := uuid.New()
	if err := contexts.Upsert(dbc, ctxID, set.ID); err != nil {
		t.Fatalf("Upsert naming context: %v", err)
	}
	other, err := sets.Ensure(dbc, "fruit-"+suffix)
	if err != nil {
		t.Fatalf("Ensure fruit: %v", err)
	}
	if err := contexts.Upsert(dbc, ctxID, other.ID); err != nil {
		t.Fatalf("Upsert naming context again: %v", err)
	}
	nc, err := contexts.GetByContextID(dbc, ctxID)
	if err != nil || nc == nil || nc.NamingSetID != other.ID {
		t.Fatalf("GetByContextID: %+v %v", nc, err)
	}
}
